package get_handoffs

import (
	"context"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

// HandoffRepository интерфейс журнала передач резерваций в оплату
type HandoffRepository interface {
	GetByUserID(ctx context.Context, userID int64, limit uint64) ([]*domain.ReservationHandoff, error)
	GetByReservationID(ctx context.Context, reservationID string) (*domain.ReservationHandoff, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
