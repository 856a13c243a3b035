package toggle_slot

import (
	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	"github.com/m04kA/SMC-SlotEngine/internal/service/engine"
)

// EngineService интерфейс оркестратора бронирования
type EngineService interface {
	Toggle(userID int64, date, slotLabel string, price float64) (*domain.ToggleResult, error)
	Session(userID int64) (*engine.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
