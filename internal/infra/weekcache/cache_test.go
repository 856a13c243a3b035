package weekcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotEngine/internal/integrations/branchservice"
	"github.com/m04kA/SMC-SlotEngine/pkg/types"
)

type fakeClient struct {
	slots []branchservice.UnavailableSlotDTO
	err   error
	calls int
}

func (f *fakeClient) GetUnavailableSlots(_ context.Context, _ int64, _ time.Time) ([]branchservice.UnavailableSlotDTO, error) {
	f.calls++
	return f.slots, f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var week = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

func TestCacheGetFetchesOnce(t *testing.T) {
	client := &fakeClient{slots: []branchservice.UnavailableSlotDTO{
		{Date: "2026-09-07", StartTime: types.TimeString("06:00")},
	}}
	cache := New(client, nopLogger{}, nil)

	slots, err := cache.Get(context.Background(), 1, week)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "2026-09-07", slots[0].Date)

	// Повторные запросы той же недели идут из кэша
	_, err = cache.Get(context.Background(), 1, week)
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)

	// Любая дата внутри недели нормализуется к тому же ключу
	_, err = cache.Get(context.Background(), 1, week.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
}

func TestCacheGetFailOpen(t *testing.T) {
	client := &fakeClient{err: errors.New("network down")}
	cache := New(client, nopLogger{}, nil)

	slots, err := cache.Get(context.Background(), 1, week)
	assert.ErrorIs(t, err, ErrFetchFailed)
	// Fail-open: слоты НЕ помечаются занятыми
	assert.Empty(t, slots)

	// Запись закэширована пустым списком, повторного fetch нет
	slots, err = cache.Get(context.Background(), 1, week)
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.Equal(t, 1, client.calls)
}

func TestCacheIsUnavailable(t *testing.T) {
	client := &fakeClient{slots: []branchservice.UnavailableSlotDTO{
		{Date: "2026-09-07", StartTime: types.TimeString("06:00")},
	}}
	cache := New(client, nopLogger{}, nil)

	_, err := cache.Get(context.Background(), 1, week)
	require.NoError(t, err)

	assert.True(t, cache.IsUnavailable(1, "2026-09-07", types.TimeString("06:00")))
	assert.False(t, cache.IsUnavailable(1, "2026-09-07", types.TimeString("07:00")))
	assert.False(t, cache.IsUnavailable(1, "2026-09-08", types.TimeString("06:00")))

	// Незагруженная неделя - всегда свободно
	assert.False(t, cache.IsUnavailable(1, "2026-09-14", types.TimeString("06:00")))
	assert.False(t, cache.IsUnavailable(2, "2026-09-07", types.TimeString("06:00")))
}

func TestCacheApplyMutatesInPlace(t *testing.T) {
	client := &fakeClient{}
	cache := New(client, nopLogger{}, nil)

	_, err := cache.Get(context.Background(), 1, week)
	require.NoError(t, err)

	// Слот занят
	assert.True(t, cache.Apply(1, "2026-09-07", types.TimeString("06:00"), true))
	assert.True(t, cache.IsUnavailable(1, "2026-09-07", types.TimeString("06:00")))

	// Слот освобожден
	assert.True(t, cache.Apply(1, "2026-09-07", types.TimeString("06:00"), false))
	assert.False(t, cache.IsUnavailable(1, "2026-09-07", types.TimeString("06:00")))

	// Мутация не вызывает повторный fetch
	assert.Equal(t, 1, client.calls)
}

func TestCacheApplyDropsEventForUncachedWeek(t *testing.T) {
	cache := New(&fakeClient{}, nopLogger{}, nil)

	// Неделя не загружена: событие отбрасывается
	assert.False(t, cache.Apply(1, "2026-09-07", types.TimeString("06:00"), true))
	assert.False(t, cache.IsUnavailable(1, "2026-09-07", types.TimeString("06:00")))
}

func TestCacheApplyIdempotent(t *testing.T) {
	cache := New(&fakeClient{}, nopLogger{}, nil)

	_, err := cache.Get(context.Background(), 1, week)
	require.NoError(t, err)

	require.True(t, cache.Apply(1, "2026-09-07", types.TimeString("06:00"), true))
	require.True(t, cache.Apply(1, "2026-09-07", types.TimeString("06:00"), true))

	slots, err := cache.Get(context.Background(), 1, week)
	require.NoError(t, err)
	// Повторное событие не создает дубликат
	assert.Len(t, slots, 1)
}
