package get_connection

import (
	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

// EngineService интерфейс оркестратора бронирования
type EngineService interface {
	ConnectionState() domain.ConnectionState
	LastBookingResult(branchID int64) *bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
