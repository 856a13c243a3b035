package load_week

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	"github.com/m04kA/SMC-SlotEngine/internal/infra/weekcache"
	"github.com/m04kA/SMC-SlotEngine/internal/integrations/branchservice"
)

type fakeBranchClient struct {
	branch    *branchservice.Branch
	branchErr error
	prices    *branchservice.Prices
	pricesErr error
}

func (f *fakeBranchClient) GetBranch(_ context.Context, _ int64) (*branchservice.Branch, error) {
	return f.branch, f.branchErr
}

func (f *fakeBranchClient) GetPrices(_ context.Context, _ int64) (*branchservice.Prices, error) {
	return f.prices, f.pricesErr
}

type fakeWeekCache struct {
	slots []domain.UnavailableSlot
	err   error
	calls int
}

func (f *fakeWeekCache) Get(_ context.Context, _ int64, _ time.Time) ([]domain.UnavailableSlot, error) {
	f.calls++
	return f.slots, f.err
}

type fakeEngine struct {
	setWeekCalls int
	lastSchedule domain.BranchSchedule
	cells        []domain.GridCell
	state        domain.ConnectionState
}

func (f *fakeEngine) SetWeek(_ int64, schedule domain.BranchSchedule, _ time.Time,
	_ []time.Time, _, _ []string) {
	f.setWeekCalls++
	f.lastSchedule = schedule
}

func (f *fakeEngine) WeekGrid(_ int64) ([]domain.GridCell, error) {
	return f.cells, nil
}

func (f *fakeEngine) ConnectionState() domain.ConnectionState {
	return f.state
}

func (f *fakeEngine) LastBookingResult(_ int64) *bool {
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func validBranch() *branchservice.Branch {
	return &branchservice.Branch{
		ID:             1,
		Name:           "Центральный",
		OpenTime:       6,
		CloseTime:      22,
		ActiveDayRange: "Monday to Friday",
	}
}

func validPrices() *branchservice.Prices {
	return &branchservice.Prices{WeekdayPrice: 100, WeekendPrice: 200}
}

func TestLoadWeekSuccess(t *testing.T) {
	engine := &fakeEngine{state: domain.StateConnected}
	uc := NewUseCase(
		&fakeBranchClient{branch: validBranch(), prices: validPrices()},
		&fakeWeekCache{},
		engine,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		BranchID:  1,
		WeekStart: time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-06", resp.WeekStart.Format(domain.DateFormat))
	assert.Equal(t, []string{"2026-09-07", "2026-09-08", "2026-09-09", "2026-09-10", "2026-09-11"}, resp.Days)
	assert.Len(t, resp.MorningSlots, 8)
	assert.Len(t, resp.AfternoonSlots, 8)
	assert.Empty(t, resp.AvailabilityNotice)
	assert.Equal(t, "connected", resp.ConnectionState)
	assert.False(t, resp.LiveUpdatesPaused)

	assert.Equal(t, 1, engine.setWeekCalls)
	assert.Equal(t, 100.0, engine.lastSchedule.WeekdayPrice)
}

func TestLoadWeekBranchNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBranchClient{branchErr: branchservice.ErrBranchNotFound},
		&fakeWeekCache{},
		&fakeEngine{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		BranchID:  99,
		WeekStart: time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestLoadWeekMalformedDayRange(t *testing.T) {
	branch := validBranch()
	branch.ActiveDayRange = "Monday till Friday"

	engine := &fakeEngine{}
	uc := NewUseCase(
		&fakeBranchClient{branch: branch, prices: validPrices()},
		&fakeWeekCache{},
		engine,
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		BranchID:  1,
		WeekStart: time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
	// Сессия не создается при ошибке конфигурации
	assert.Equal(t, 0, engine.setWeekCalls)
}

func TestLoadWeekAvailabilityFailOpen(t *testing.T) {
	// Неудачный fetch занятых слотов не блокирует загрузку недели:
	// возвращается уведомление, сетка строится без занятых слотов
	cache := &fakeWeekCache{err: fmt.Errorf("%w: network down", weekcache.ErrFetchFailed)}
	engine := &fakeEngine{state: domain.StateConnected}

	uc := NewUseCase(
		&fakeBranchClient{branch: validBranch(), prices: validPrices()},
		cache,
		engine,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		BranchID:  1,
		WeekStart: time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AvailabilityNotice)
	assert.Equal(t, 1, engine.setWeekCalls)
}

func TestLoadWeekUnexpectedCacheError(t *testing.T) {
	cache := &fakeWeekCache{err: errors.New("boom")}

	uc := NewUseCase(
		&fakeBranchClient{branch: validBranch(), prices: validPrices()},
		cache,
		&fakeEngine{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		BranchID:  1,
		WeekStart: time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestLoadWeekDisconnectedChannel(t *testing.T) {
	engine := &fakeEngine{state: domain.StateDisconnected}
	uc := NewUseCase(
		&fakeBranchClient{branch: validBranch(), prices: validPrices()},
		&fakeWeekCache{},
		engine,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		BranchID:  1,
		WeekStart: time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, resp.LiveUpdatesPaused)
	assert.Equal(t, "disconnected", resp.ConnectionState)
}

func TestLoadWeekValidation(t *testing.T) {
	uc := NewUseCase(&fakeBranchClient{}, &fakeWeekCache{}, &fakeEngine{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 0, BranchID: 1,
		WeekStart: time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 1, BranchID: -5,
		WeekStart: time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 1, BranchID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
