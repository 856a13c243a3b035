package get_connection

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlotEngine/internal/api/handlers"
	"github.com/m04kA/SMC-SlotEngine/internal/api/middleware"
)

const (
	msgInvalidBranchID = "некорректный параметр branchId"
	msgUnauthorized    = "пользователь не аутентифицирован"
)

// ConnectionResponse HTTP response model: состояние live-канала
type ConnectionResponse struct {
	State             string `json:"state"`
	LiveUpdatesPaused bool   `json:"liveUpdatesPaused"`
	LastBookingResult *bool  `json:"lastBookingResult,omitempty"`
}

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

// Handle GET /api/v1/engine/connection?branchId=N
//
// branchId опционален: без него возвращается только состояние канала,
// с ним - еще и последний результат бронирования по филиалу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	state := h.engine.ConnectionState()
	resp := &ConnectionResponse{
		State:             string(state),
		LiveUpdatesPaused: !state.IsConnected(),
	}

	if raw := r.URL.Query().Get("branchId"); raw != "" {
		branchID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || branchID <= 0 {
			h.logger.Warn("GET /engine/connection - Invalid branchId: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidBranchID)
			return
		}
		resp.LastBookingResult = h.engine.LastBookingResult(branchID)
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
