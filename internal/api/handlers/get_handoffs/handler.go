package get_handoffs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotEngine/internal/api/handlers"
	"github.com/m04kA/SMC-SlotEngine/internal/api/middleware"
	handoffRepo "github.com/m04kA/SMC-SlotEngine/internal/infra/storage/handoff"
)

// defaultLimit ограничение размера списка по умолчанию
const defaultLimit = 50

const (
	msgInvalidLimit    = "некорректный параметр limit"
	msgHandoffNotFound = "запись журнала не найдена"
	msgForbidden       = "запись журнала принадлежит другому пользователю"
	msgUnauthorized    = "пользователь не аутентифицирован"
)

type Handler struct {
	repo   HandoffRepository
	logger Logger
}

func NewHandler(repo HandoffRepository, logger Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// HandleList GET /api/v1/engine/handoffs?limit=N
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	limit := uint64(defaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			h.logger.Warn("GET /engine/handoffs - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	records, err := h.repo.GetByUserID(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("GET /engine/handoffs - Failed to list handoffs: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(records))
}

// HandleGet GET /api/v1/engine/handoffs/{reservationId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	reservationID := mux.Vars(r)["reservationId"]

	record, err := h.repo.GetByReservationID(r.Context(), reservationID)
	if err != nil {
		if errors.Is(err, handoffRepo.ErrHandoffNotFound) {
			h.logger.Warn("GET /engine/handoffs/{reservationId} - Not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgHandoffNotFound)
			return
		}
		h.logger.Error("GET /engine/handoffs/{reservationId} - Failed to get handoff: reservation_id=%s, error=%v",
			reservationID, err)
		handlers.RespondInternalError(w)
		return
	}

	// Журнал личный: чужие записи не возвращаются
	if record.UserID != userID {
		h.logger.Warn("GET /engine/handoffs/{reservationId} - Access denied: reservation_id=%s, user_id=%d",
			reservationID, userID)
		handlers.RespondError(w, http.StatusForbidden, msgForbidden)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(record))
}
