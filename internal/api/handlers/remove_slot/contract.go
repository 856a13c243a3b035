package remove_slot

import (
	"github.com/m04kA/SMC-SlotEngine/internal/service/engine"
)

// EngineService интерфейс оркестратора бронирования
type EngineService interface {
	Remove(userID int64, slotID string) error
	Session(userID int64) (*engine.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
