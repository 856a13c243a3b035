package load_week

import (
	"context"

	loadWeek "github.com/m04kA/SMC-SlotEngine/internal/usecase/load_week"
)

type LoadWeekUseCase interface {
	Execute(ctx context.Context, req *loadWeek.Request) (*loadWeek.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
