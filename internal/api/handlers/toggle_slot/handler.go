package toggle_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotEngine/internal/api/handlers"
	"github.com/m04kA/SMC-SlotEngine/internal/api/middleware"
	"github.com/m04kA/SMC-SlotEngine/internal/service/engine"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgWeekNotLoaded      = "неделя не загружена, сначала выберите филиал и неделю"
	msgUnknownCell        = "ячейка не входит в загруженную сетку недели"
	msgSelectionLimit     = "достигнут лимит выбранных слотов"
	msgUnauthorized       = "пользователь не аутентифицирован"
)

type Handler struct {
	engine EngineService
	logger Logger
}

func NewHandler(engineSvc EngineService, logger Logger) *Handler {
	return &Handler{
		engine: engineSvc,
		logger: logger,
	}
}

// Handle POST /api/v1/engine/selection/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /engine/selection/toggle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.engine.Toggle(userID, req.Date, req.SlotLabel, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrSessionNotFound):
			h.logger.Warn("POST /engine/selection/toggle - Week not loaded: user_id=%d", userID)
			handlers.RespondNotFound(w, msgWeekNotLoaded)

		case errors.Is(err, engine.ErrUnknownCell):
			h.logger.Warn("POST /engine/selection/toggle - Unknown cell: user_id=%d, date=%s, slot=%q",
				userID, req.Date, req.SlotLabel)
			handlers.RespondBadRequest(w, msgUnknownCell)

		case errors.Is(err, engine.ErrSelectionLimit):
			h.logger.Info("POST /engine/selection/toggle - Selection limit reached: user_id=%d", userID)
			handlers.RespondConflict(w, msgSelectionLimit)

		default:
			h.logger.Error("POST /engine/selection/toggle - Failed to toggle slot: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	sess, err := h.engine.Session(userID)
	if err != nil {
		h.logger.Error("POST /engine/selection/toggle - Session lost after toggle: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromToggleResult(result, sess.Selection))
}
