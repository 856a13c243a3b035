package remove_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotEngine/internal/api/handlers"
	"github.com/m04kA/SMC-SlotEngine/internal/api/middleware"
	"github.com/m04kA/SMC-SlotEngine/internal/service/engine"
)

const (
	msgMissingSlotID   = "не указан идентификатор слота"
	msgWeekNotLoaded   = "неделя не загружена, сначала выберите филиал и неделю"
	msgSlotNotSelected = "слот отсутствует в текущем выборе"
	msgUnauthorized    = "пользователь не аутентифицирован"
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

// Handle DELETE /api/v1/engine/selection/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	slotID := mux.Vars(r)["slotId"]
	if slotID == "" {
		handlers.RespondBadRequest(w, msgMissingSlotID)
		return
	}

	if err := h.engine.Remove(userID, slotID); err != nil {
		switch {
		case errors.Is(err, engine.ErrSessionNotFound):
			h.logger.Warn("DELETE /engine/selection/{slotId} - Week not loaded: user_id=%d", userID)
			handlers.RespondNotFound(w, msgWeekNotLoaded)

		case errors.Is(err, engine.ErrSlotNotSelected):
			h.logger.Warn("DELETE /engine/selection/{slotId} - Slot not selected: user_id=%d, slot_id=%s",
				userID, slotID)
			handlers.RespondNotFound(w, msgSlotNotSelected)

		default:
			h.logger.Error("DELETE /engine/selection/{slotId} - Failed to remove slot: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	sess, err := h.engine.Session(userID)
	if err != nil {
		h.logger.Error("DELETE /engine/selection/{slotId} - Session lost after remove: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSelection(sess.Selection))
}
