package submit_booking

import (
	"context"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	"github.com/m04kA/SMC-SlotEngine/internal/integrations/reservationservice"
	"github.com/m04kA/SMC-SlotEngine/internal/service/engine"
)

// Engine интерфейс оркестратора бронирования
type Engine interface {
	Session(userID int64) (*engine.Session, error)
	ClearSelection(userID int64)
}

// ReservationServiceClient интерфейс клиента ReservationService
type ReservationServiceClient interface {
	Reserve(ctx context.Context, req *reservationservice.ReserveRequest) (string, error)
}

// HandoffRepository интерфейс журнала передач резерваций в оплату
type HandoffRepository interface {
	Create(ctx context.Context, record *domain.ReservationHandoff) (*domain.ReservationHandoff, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
