package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	reservationClient "github.com/m04kA/SMC-SlotEngine/internal/integrations/reservationservice"
	engineService "github.com/m04kA/SMC-SlotEngine/internal/service/engine"
)

// UseCase use case передачи выбранных слотов в оплату
type UseCase struct {
	engine            Engine
	reservationClient ReservationServiceClient
	handoffRepo       HandoffRepository
	txManager         TransactionManager
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine Engine,
	reservationClient ReservationServiceClient,
	handoffRepo HandoffRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:            engine,
		reservationClient: reservationClient,
		handoffRepo:       handoffRepo,
		txManager:         txManager,
		logger:            logger,
	}
}

// Execute выполняет use case передачи резервации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: user=%d", req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем сессию оператора; её отсутствие означает, что филиал не выбран
	sess, err := uc.engine.Session(req.UserID)
	if err != nil {
		if errors.Is(err, engineService.ErrSessionNotFound) {
			uc.logger.Warn("SubmitBooking: no active session for user=%d", req.UserID)
			return nil, ErrBranchNotSet
		}
		uc.logger.Error("SubmitBooking: failed to get session for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	// 3. Проверяем, что выбор не пуст
	entries := sess.Selection.Entries()
	if len(entries) == 0 {
		uc.logger.Warn("SubmitBooking: empty selection for user=%d", req.UserID)
		return nil, ErrNothingSelected
	}

	// 4. Собираем строки резервации: по одной на каждый выбранный слот
	lines := make([]domain.BookingLine, 0, len(entries))
	totalPrice := 0.0
	for _, entry := range entries {
		start, end, err := domain.ParseSlotLabel(entry.SlotLabel)
		if err != nil {
			uc.logger.Error("SubmitBooking: malformed slot label %q in selection of user=%d: %v",
				entry.SlotLabel, req.UserID, err)
			return nil, fmt.Errorf("%w: malformed slot label in selection: %v", ErrInternal, err)
		}

		lines = append(lines, domain.BookingLine{
			Date:      entry.Date,
			StartTime: start,
			EndTime:   end,
			Price:     entry.Price,
		})
		totalPrice += entry.Price
	}

	// 5. Передаем резервацию во внешний сервис
	reservationID, err := uc.reservationClient.Reserve(ctx, &reservationClient.ReserveRequest{
		BranchID:   sess.BranchID,
		UserID:     req.UserID,
		Lines:      toClientLines(lines),
		TotalPrice: totalPrice,
	})
	if err != nil {
		if errors.Is(err, reservationClient.ErrRejected) {
			uc.logger.Warn("SubmitBooking: reservation rejected for user=%d, branch=%d",
				req.UserID, sess.BranchID)
			return nil, ErrReservationRejected
		}
		uc.logger.Error("SubmitBooking: reserve failed for user=%d, branch=%d: %v",
			req.UserID, sess.BranchID, err)
		return nil, fmt.Errorf("%w: failed to reserve: %v", ErrInternal, err)
	}

	// 6. Записываем передачу в журнал
	// Резервация уже создана, поэтому ошибка журнала не отменяет операцию:
	// логируем и продолжаем
	record := &domain.ReservationHandoff{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		BranchID:      sess.BranchID,
		Lines:         lines,
		TotalPrice:    totalPrice,
		ReservationID: reservationID,
	}
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		_, err := uc.handoffRepo.Create(txCtx, record)
		return err
	})
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to journal handoff reservation=%s for user=%d: %v",
			reservationID, req.UserID, err)
	}

	// 7. Очищаем выбор: корзина передана в оплату
	uc.engine.ClearSelection(req.UserID)

	uc.logger.Info("SubmitBooking: handed off reservation=%s for user=%d, branch=%d, lines=%d, total=%.2f",
		reservationID, req.UserID, sess.BranchID, len(lines), totalPrice)

	return &Response{
		ReservationID: reservationID,
		BranchID:      sess.BranchID,
		Lines:         lines,
		TotalPrice:    totalPrice,
	}, nil
}

// toClientLines конвертирует строки резервации в модель клиента
func toClientLines(lines []domain.BookingLine) []reservationClient.ReservationLine {
	out := make([]reservationClient.ReservationLine, len(lines))
	for i, line := range lines {
		out[i] = reservationClient.ReservationLine{
			Date:      line.Date,
			StartTime: line.StartTime,
			EndTime:   line.EndTime,
			Price:     line.Price,
		}
	}
	return out
}
