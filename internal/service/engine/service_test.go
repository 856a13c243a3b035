package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	"github.com/m04kA/SMC-SlotEngine/internal/infra/livechannel"
	"github.com/m04kA/SMC-SlotEngine/pkg/types"
)

type fakeCache struct {
	unavailable map[string]bool // "branchID|date|start"
	applied     []string
}

func cacheSlotKey(branchID int64, date string, start types.TimeString) string {
	return fmt.Sprintf("%d|%s|%s", branchID, date, start)
}

func (f *fakeCache) Get(_ context.Context, _ int64, _ time.Time) ([]domain.UnavailableSlot, error) {
	return nil, nil
}

func (f *fakeCache) IsUnavailable(branchID int64, date string, start types.TimeString) bool {
	return f.unavailable[cacheSlotKey(branchID, date, start)]
}

func (f *fakeCache) Apply(branchID int64, date string, start types.TimeString, reserved bool) bool {
	if f.unavailable == nil {
		f.unavailable = make(map[string]bool)
	}
	key := cacheSlotKey(branchID, date, start)
	f.unavailable[key] = reserved
	f.applied = append(f.applied, key)
	return true
}

type fakeChannel struct {
	state   domain.ConnectionState
	handler func(livechannel.Event)
}

func (f *fakeChannel) State() domain.ConnectionState {
	return f.state
}

func (f *fakeChannel) Subscribe(handler func(livechannel.Event)) func() {
	f.handler = handler
	return func() { f.handler = nil }
}

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testSchedule(branchID int64) domain.BranchSchedule {
	return domain.BranchSchedule{
		BranchID:       branchID,
		OpenTime:       6,
		CloseTime:      22,
		ActiveDayRange: "Monday to Friday",
		WeekdayPrice:   100,
		WeekendPrice:   200,
	}
}

// loadTestWeek загружает в сессию неделю 2026-09-06 (Вс) с днями Пн-Пт
// и двумя слотами
func loadTestWeek(s *Service, userID, branchID int64) {
	weekStart := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, 0, 5)
	for i := 1; i <= 5; i++ {
		days = append(days, weekStart.AddDate(0, 0, i))
	}
	s.SetWeek(userID, testSchedule(branchID), weekStart, days,
		[]string{"06:00 - 07:00"}, []string{"14:00 - 15:00"})
}

func newTestService(cache *fakeCache, channel *fakeChannel) *Service {
	s := NewService(cache, channel, nopLogger{})
	// Фиксированное "сейчас" задолго до тестовой недели
	s.timeProvider = &fakeTime{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	return s
}

func TestSessionNotFound(t *testing.T) {
	s := newTestService(&fakeCache{}, &fakeChannel{state: domain.StateConnected})

	_, err := s.Session(42)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = s.WeekGrid(42)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = s.Toggle(42, "2026-09-07", "06:00 - 07:00", 100)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWeekGridShape(t *testing.T) {
	s := newTestService(&fakeCache{}, &fakeChannel{state: domain.StateConnected})
	loadTestWeek(s, 7, 1)

	cells, err := s.WeekGrid(7)
	require.NoError(t, err)
	// 5 дней x 2 слота
	require.Len(t, cells, 10)

	assert.Equal(t, "2026-09-07", cells[0].Date)
	assert.Equal(t, "06:00 - 07:00", cells[0].SlotLabel)
	assert.Equal(t, 100.0, cells[0].Price)
	assert.False(t, cells[0].IsPast)
	assert.False(t, cells[0].IsUnavailable)
	assert.False(t, cells[0].IsSelected)
}

func TestGridForUnknownCell(t *testing.T) {
	s := newTestService(&fakeCache{}, &fakeChannel{state: domain.StateConnected})
	loadTestWeek(s, 7, 1)

	// Суббота не входит в диапазон Пн-Пт
	_, err := s.GridFor(7, "2026-09-12", "06:00 - 07:00")
	assert.ErrorIs(t, err, ErrUnknownCell)

	// Слот вне сетки
	_, err = s.GridFor(7, "2026-09-07", "23:00 - 00:00")
	assert.ErrorIs(t, err, ErrUnknownCell)
}

func TestGridReflectsLiveEventWithoutRefetch(t *testing.T) {
	cache := &fakeCache{}
	channel := &fakeChannel{state: domain.StateConnected}
	s := newTestService(cache, channel)
	loadTestWeek(s, 7, 1)

	cell, err := s.GridFor(7, "2026-09-07", "06:00 - 07:00")
	require.NoError(t, err)
	require.False(t, cell.IsUnavailable)

	// Событие live-канала занимает слот
	require.NotNil(t, channel.handler)
	channel.handler(livechannel.Event{
		Stream:    livechannel.StreamSlotStatus,
		BranchID:  1,
		Date:      "2026-09-07",
		StartTime: types.TimeString("06:00"),
		Reserved:  true,
	})

	cell, err = s.GridFor(7, "2026-09-07", "06:00 - 07:00")
	require.NoError(t, err)
	assert.True(t, cell.IsUnavailable)
	assert.True(t, cell.IsDisabled())
}

func TestBookingResultFromLiveEvent(t *testing.T) {
	channel := &fakeChannel{state: domain.StateConnected}
	s := newTestService(&fakeCache{}, channel)

	assert.Nil(t, s.LastBookingResult(1))

	channel.handler(livechannel.Event{
		Stream:   livechannel.StreamBookingResult,
		BranchID: 1,
		Booked:   true,
	})

	result := s.LastBookingResult(1)
	require.NotNil(t, result)
	assert.True(t, *result)
	assert.Nil(t, s.LastBookingResult(2))
}

func TestTogglePersistsInGrid(t *testing.T) {
	s := newTestService(&fakeCache{}, &fakeChannel{state: domain.StateConnected})
	loadTestWeek(s, 7, 1)

	result, err := s.Toggle(7, "2026-09-07", "06:00 - 07:00", 100)
	require.NoError(t, err)
	assert.True(t, result.Added)

	cell, err := s.GridFor(7, "2026-09-07", "06:00 - 07:00")
	require.NoError(t, err)
	assert.True(t, cell.IsSelected)
	assert.Equal(t, 1, cell.OccupancyCount)
}

func TestToggleUnknownCell(t *testing.T) {
	s := newTestService(&fakeCache{}, &fakeChannel{state: domain.StateConnected})
	loadTestWeek(s, 7, 1)

	_, err := s.Toggle(7, "2026-09-13", "06:00 - 07:00", 100)
	assert.ErrorIs(t, err, ErrUnknownCell)
}

func TestToggleSelectionLimit(t *testing.T) {
	s := newTestService(&fakeCache{}, &fakeChannel{state: domain.StateConnected})
	loadTestWeek(s, 7, 1)

	_, err := s.Toggle(7, "2026-09-07", "06:00 - 07:00", 100)
	require.NoError(t, err)
	_, err = s.Toggle(7, "2026-09-08", "06:00 - 07:00", 100)
	require.NoError(t, err)
	_, err = s.Toggle(7, "2026-09-09", "06:00 - 07:00", 100)
	require.NoError(t, err)

	_, err = s.Toggle(7, "2026-09-10", "06:00 - 07:00", 100)
	assert.ErrorIs(t, err, ErrSelectionLimit)
}

func TestRemoveSlot(t *testing.T) {
	s := newTestService(&fakeCache{}, &fakeChannel{state: domain.StateConnected})
	loadTestWeek(s, 7, 1)

	_, err := s.Toggle(7, "2026-09-07", "06:00 - 07:00", 100)
	require.NoError(t, err)

	slotID := domain.MakeSlotID("2026-09-07", "06:00 - 07:00", 100)
	require.NoError(t, s.Remove(7, slotID))

	assert.ErrorIs(t, s.Remove(7, slotID), ErrSlotNotSelected)
}

func TestSetWeekPreservesSelectionWithinBranch(t *testing.T) {
	s := newTestService(&fakeCache{}, &fakeChannel{state: domain.StateConnected})
	loadTestWeek(s, 7, 1)

	_, err := s.Toggle(7, "2026-09-07", "06:00 - 07:00", 100)
	require.NoError(t, err)

	// Смена недели в рамках того же филиала: выбор сохраняется
	nextWeek := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	days := []time.Time{nextWeek.AddDate(0, 0, 1)}
	s.SetWeek(7, testSchedule(1), nextWeek, days,
		[]string{"06:00 - 07:00"}, []string{"14:00 - 15:00"})

	sess, err := s.Session(7)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Selection.Len())
}

func TestSetWeekClearsSelectionOnBranchChange(t *testing.T) {
	s := newTestService(&fakeCache{}, &fakeChannel{state: domain.StateConnected})
	loadTestWeek(s, 7, 1)

	_, err := s.Toggle(7, "2026-09-07", "06:00 - 07:00", 100)
	require.NoError(t, err)

	// Смена филиала: выбор сбрасывается
	loadTestWeek(s, 7, 2)

	sess, err := s.Session(7)
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Selection.Len())
}

func TestClearSelection(t *testing.T) {
	s := newTestService(&fakeCache{}, &fakeChannel{state: domain.StateConnected})
	loadTestWeek(s, 7, 1)

	_, err := s.Toggle(7, "2026-09-07", "06:00 - 07:00", 100)
	require.NoError(t, err)

	s.ClearSelection(7)

	sess, err := s.Session(7)
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Selection.Len())
}

func TestIsPastWithGrace(t *testing.T) {
	s := newTestService(&fakeCache{}, &fakeChannel{state: domain.StateConnected})
	loadTestWeek(s, 7, 1)

	// "Сейчас" - понедельник тестовой недели
	clock := &fakeTime{}
	s.timeProvider = clock

	// До начала слота
	clock.now = time.Date(2026, 9, 7, 5, 0, 0, 0, time.UTC)
	cell, err := s.GridFor(7, "2026-09-07", "06:00 - 07:00")
	require.NoError(t, err)
	assert.False(t, cell.IsPast)

	// Внутри льготного интервала после начала
	clock.now = time.Date(2026, 9, 7, 6, 10, 0, 0, time.UTC)
	cell, err = s.GridFor(7, "2026-09-07", "06:00 - 07:00")
	require.NoError(t, err)
	assert.False(t, cell.IsPast)

	// Льготный интервал истек
	clock.now = time.Date(2026, 9, 7, 6, 16, 0, 0, time.UTC)
	cell, err = s.GridFor(7, "2026-09-07", "06:00 - 07:00")
	require.NoError(t, err)
	assert.True(t, cell.IsPast)

	// Вчерашний день целиком в прошлом
	clock.now = time.Date(2026, 9, 8, 0, 0, 1, 0, time.UTC)
	cell, err = s.GridFor(7, "2026-09-07", "14:00 - 15:00")
	require.NoError(t, err)
	assert.True(t, cell.IsPast)

	// Завтрашний день не в прошлом
	clock.now = time.Date(2026, 9, 7, 23, 0, 0, 0, time.UTC)
	cell, err = s.GridFor(7, "2026-09-08", "06:00 - 07:00")
	require.NoError(t, err)
	assert.False(t, cell.IsPast)
}

func TestWeekendPriceInGrid(t *testing.T) {
	s := newTestService(&fakeCache{}, &fakeChannel{state: domain.StateConnected})

	// Неделя с субботой в диапазоне
	weekStart := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	days := []time.Time{
		weekStart.AddDate(0, 0, 5), // пятница
		weekStart.AddDate(0, 0, 6), // суббота
	}
	s.SetWeek(7, testSchedule(1), weekStart, days,
		[]string{"06:00 - 07:00"}, nil)

	friday, err := s.GridFor(7, "2026-09-11", "06:00 - 07:00")
	require.NoError(t, err)
	assert.Equal(t, 100.0, friday.Price)

	saturday, err := s.GridFor(7, "2026-09-12", "06:00 - 07:00")
	require.NoError(t, err)
	assert.Equal(t, 200.0, saturday.Price)
}

func TestReleaseSubscription(t *testing.T) {
	channel := &fakeChannel{state: domain.StateConnected}
	s := newTestService(&fakeCache{}, channel)
	require.NotNil(t, channel.handler)

	s.ReleaseSubscription()
	assert.Nil(t, channel.handler)
}
