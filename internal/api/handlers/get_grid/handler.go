package get_grid

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotEngine/internal/api/handlers"
	"github.com/m04kA/SMC-SlotEngine/internal/api/middleware"
	"github.com/m04kA/SMC-SlotEngine/internal/service/engine"
)

const (
	msgWeekNotLoaded = "неделя не загружена, сначала выберите филиал и неделю"
	msgUnknownCell   = "ячейка не входит в загруженную сетку недели"
	msgUnauthorized  = "пользователь не аутентифицирован"
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

// Handle GET /api/v1/engine/grid?date=YYYY-MM-DD&slot=HH:MM - HH:MM
//
// Без query параметров возвращает снимок всей сетки; с парой (date, slot)
// возвращает одну ячейку
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	date := r.URL.Query().Get("date")
	slot := r.URL.Query().Get("slot")

	// Снимок всей сетки
	if date == "" && slot == "" {
		cells, err := h.engine.WeekGrid(userID)
		if err != nil {
			h.respondError(w, userID, date, slot, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, FromDomainCells(cells))
		return
	}

	// Одна ячейка
	cell, err := h.engine.GridFor(userID, date, slot)
	if err != nil {
		h.respondError(w, userID, date, slot, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainCell(cell))
}

func (h *Handler) respondError(w http.ResponseWriter, userID int64, date, slot string, err error) {
	switch {
	case errors.Is(err, engine.ErrSessionNotFound):
		h.logger.Warn("GET /engine/grid - Week not loaded: user_id=%d", userID)
		handlers.RespondNotFound(w, msgWeekNotLoaded)

	case errors.Is(err, engine.ErrUnknownCell):
		h.logger.Warn("GET /engine/grid - Unknown cell: user_id=%d, date=%s, slot=%q", userID, date, slot)
		handlers.RespondBadRequest(w, msgUnknownCell)

	default:
		h.logger.Error("GET /engine/grid - Failed to build grid: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
	}
}
