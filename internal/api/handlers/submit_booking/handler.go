package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotEngine/internal/api/handlers"
	"github.com/m04kA/SMC-SlotEngine/internal/api/middleware"
	submitBooking "github.com/m04kA/SMC-SlotEngine/internal/usecase/submit_booking"
)

const (
	msgBranchNotSet        = "филиал не выбран, сначала загрузите неделю"
	msgNothingSelected     = "не выбран ни один слот"
	msgReservationRejected = "резервация отклонена, слоты успели занять"
	msgInvalidInput        = "некорректные входные данные"
	msgUnauthorized        = "пользователь не аутентифицирован"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/engine/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitBooking.Request{UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrBranchNotSet):
			h.logger.Warn("POST /engine/submit - Branch not set: user_id=%d", userID)
			handlers.RespondNotFound(w, msgBranchNotSet)

		case errors.Is(err, submitBooking.ErrNothingSelected):
			h.logger.Warn("POST /engine/submit - Nothing selected: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgNothingSelected)

		case errors.Is(err, submitBooking.ErrReservationRejected):
			h.logger.Warn("POST /engine/submit - Reservation rejected: user_id=%d", userID)
			handlers.RespondConflict(w, msgReservationRejected)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /engine/submit - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /engine/submit - Failed to submit booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
