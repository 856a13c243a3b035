package weekcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	"github.com/m04kA/SMC-SlotEngine/pkg/types"
)

// Cache недельный кэш занятых слотов
//
// Ключ - пара (филиал, нормализованное начало недели). Заполненная запись
// живет до конца сессии процесса и не инвалидируется: события live-канала
// мутируют её на месте. Конкурентные запросы одного ключа во время fetch
// дедуплицируются через singleflight
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]domain.UnavailableSlot

	group   singleflight.Group
	client  UnavailabilityClient
	log     Logger
	metrics MetricsRecorder // может быть nil, если метрики выключены
}

// New создает пустой кэш поверх источника занятых слотов
func New(client UnavailabilityClient, log Logger, metrics MetricsRecorder) *Cache {
	return &Cache{
		entries: make(map[string][]domain.UnavailableSlot),
		client:  client,
		log:     log,
		metrics: metrics,
	}
}

// Get возвращает занятые слоты филиала на неделю, содержащую weekStart
//
// При наличии записи возвращает её синхронно. Иначе выполняет fetch и
// кэширует результат. При ошибке fetch запись заполняется пустым списком
// (fail-open), а ошибка возвращается вызывающему как неблокирующее
// уведомление: слоты НЕ помечаются занятыми
func (c *Cache) Get(ctx context.Context, branchID int64, weekStart time.Time) ([]domain.UnavailableSlot, error) {
	normalized := domain.NormalizeWeekStart(weekStart)
	key := cacheKey(branchID, normalized)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		c.recordMetric("hit")
		return copySlots(entry), nil
	}

	// singleflight: при конкурентных запросах одного ключа выполняется
	// только один fetch, остальные ждут его результат
	_, err, _ := c.group.Do(key, func() (interface{}, error) {
		return nil, c.fetchAndStore(ctx, branchID, normalized, key)
	})

	c.mu.RLock()
	entry = c.entries[key]
	c.mu.RUnlock()

	if err != nil {
		c.recordMetric("error")
		return copySlots(entry), fmt.Errorf("%w: branch=%d, week=%s: %v",
			ErrFetchFailed, branchID, normalized.Format(domain.DateFormat), err)
	}

	c.recordMetric("miss")
	return copySlots(entry), nil
}

// fetchAndStore выполняет fetch и сохраняет результат под ключом
// Вызывается только из singleflight
func (c *Cache) fetchAndStore(ctx context.Context, branchID int64, weekStart time.Time, key string) error {
	// Запись могла появиться, пока мы ждали своей очереди в singleflight
	c.mu.RLock()
	_, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return nil
	}

	dtos, err := c.client.GetUnavailableSlots(ctx, branchID, weekStart)

	slots := make([]domain.UnavailableSlot, 0, len(dtos))
	for _, dto := range dtos {
		slots = append(slots, domain.UnavailableSlot{
			Date:      dto.Date,
			StartTime: dto.StartTime,
		})
	}

	c.mu.Lock()
	c.entries[key] = slots
	c.mu.Unlock()

	if err != nil {
		c.log.Error("weekcache: fetch failed for branch=%d, week=%s, cached empty list: %v",
			branchID, weekStart.Format(domain.DateFormat), err)
		return err
	}

	c.log.Info("weekcache: cached %d unavailable slots for branch=%d, week=%s",
		len(slots), branchID, weekStart.Format(domain.DateFormat))
	return nil
}

// IsUnavailable проверяет занятость слота по кэшу
// Смотрит ТОЛЬКО в кэш: для незагруженной недели всегда false
func (c *Cache) IsUnavailable(branchID int64, date string, startTime types.TimeString) bool {
	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return false
	}
	key := cacheKey(branchID, domain.NormalizeWeekStart(parsed))

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, slot := range c.entries[key] {
		if slot.Date == date && slot.StartTime.Equal(startTime) {
			return true
		}
	}
	return false
}

// Apply применяет событие статуса слота к уже закэшированной неделе,
// мутируя запись на месте (без инвалидации)
//
// Возвращает false, если неделя еще не загружена: такое событие
// отбрасывается, отложенный fetch останется авторитетным
func (c *Cache) Apply(branchID int64, date string, startTime types.TimeString, reserved bool) bool {
	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		c.log.Warn("weekcache: ignoring event with invalid date %q", date)
		return false
	}
	key := cacheKey(branchID, domain.NormalizeWeekStart(parsed))

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return false
	}

	idx := -1
	for i, slot := range entry {
		if slot.Date == date && slot.StartTime.Equal(startTime) {
			idx = i
			break
		}
	}

	switch {
	case reserved && idx == -1:
		c.entries[key] = append(entry, domain.UnavailableSlot{Date: date, StartTime: startTime})
	case !reserved && idx != -1:
		c.entries[key] = append(entry[:idx], entry[idx+1:]...)
	}
	return true
}

func (c *Cache) recordMetric(result string) {
	if c.metrics != nil {
		c.metrics.RecordWeekCache(result)
	}
}

func cacheKey(branchID int64, weekStart time.Time) string {
	return fmt.Sprintf("%d|%s", branchID, weekStart.Format(domain.DateFormat))
}

func copySlots(slots []domain.UnavailableSlot) []domain.UnavailableSlot {
	out := make([]domain.UnavailableSlot, len(slots))
	copy(out, slots)
	return out
}
