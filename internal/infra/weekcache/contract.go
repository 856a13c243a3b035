package weekcache

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotEngine/internal/integrations/branchservice"
)

// UnavailabilityClient интерфейс источника занятых слотов (BranchService)
type UnavailabilityClient interface {
	GetUnavailableSlots(ctx context.Context, branchID int64, weekStart time.Time) ([]branchservice.UnavailableSlotDTO, error)
}

// MetricsRecorder интерфейс записи метрик кэша
type MetricsRecorder interface {
	RecordWeekCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
