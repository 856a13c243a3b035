package load_week

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	"github.com/m04kA/SMC-SlotEngine/internal/integrations/branchservice"
)

// BranchServiceClient интерфейс клиента BranchService
type BranchServiceClient interface {
	GetBranch(ctx context.Context, branchID int64) (*branchservice.Branch, error)
	GetPrices(ctx context.Context, branchID int64) (*branchservice.Prices, error)
}

// WeekCache интерфейс недельного кэша занятых слотов
type WeekCache interface {
	Get(ctx context.Context, branchID int64, weekStart time.Time) ([]domain.UnavailableSlot, error)
}

// Engine интерфейс оркестратора бронирования
type Engine interface {
	SetWeek(userID int64, schedule domain.BranchSchedule, weekStart time.Time,
		days []time.Time, morningSlots, afternoonSlots []string)
	WeekGrid(userID int64) ([]domain.GridCell, error)
	ConnectionState() domain.ConnectionState
	LastBookingResult(branchID int64) *bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
