package get_grid

import (
	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

// EngineService интерфейс оркестратора бронирования
type EngineService interface {
	GridFor(userID int64, date, slotLabel string) (*domain.GridCell, error)
	WeekGrid(userID int64) ([]domain.GridCell, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
