package engine

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	"github.com/m04kA/SMC-SlotEngine/internal/infra/livechannel"
	"github.com/m04kA/SMC-SlotEngine/pkg/types"
)

// WeekCache интерфейс недельного кэша занятых слотов
type WeekCache interface {
	Get(ctx context.Context, branchID int64, weekStart time.Time) ([]domain.UnavailableSlot, error)
	IsUnavailable(branchID int64, date string, startTime types.TimeString) bool
	Apply(branchID int64, date string, startTime types.TimeString, reserved bool) bool
}

// LiveChannel интерфейс live-канала обновлений слотов
type LiveChannel interface {
	State() domain.ConnectionState
	Subscribe(handler func(livechannel.Event)) func()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
