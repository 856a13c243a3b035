package load_week

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotEngine/internal/api/handlers"
	"github.com/m04kA/SMC-SlotEngine/internal/api/middleware"
	loadWeek "github.com/m04kA/SMC-SlotEngine/internal/usecase/load_week"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWeekStart   = "некорректный формат даты начала недели, ожидается YYYY-MM-DD"
	msgBranchNotFound     = "филиал не найден"
	msgInvalidSchedule    = "некорректная конфигурация расписания филиала"
	msgInvalidInput       = "некорректные входные данные"
	msgUnauthorized       = "пользователь не аутентифицирован"
)

type Handler struct {
	useCase LoadWeekUseCase
	logger  Logger
}

func NewHandler(useCase LoadWeekUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/engine/week
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req LoadWeekRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /engine/week - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("PUT /engine/week - Failed to parse week start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, loadWeek.ErrBranchNotFound):
			h.logger.Warn("PUT /engine/week - Branch not found: branch_id=%d, user_id=%d", req.BranchID, userID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, loadWeek.ErrInvalidSchedule):
			h.logger.Error("PUT /engine/week - Invalid branch schedule: branch_id=%d, error=%v", req.BranchID, err)
			handlers.RespondUnprocessable(w, msgInvalidSchedule)

		case errors.Is(err, loadWeek.ErrInvalidInput):
			h.logger.Warn("PUT /engine/week - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /engine/week - Failed to load week: branch_id=%d, user_id=%d, error=%v",
				req.BranchID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
