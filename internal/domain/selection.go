package domain

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrSelectionLimitReached возвращается при попытке превысить
	// максимальный размер выбора (MaxSelections)
	ErrSelectionLimitReached = errors.New("selection limit reached")
)

// SelectionEntry один выбранный слот
type SelectionEntry struct {
	SlotID    string  // date + label + price, уникален в рамках выбора
	Date      string  // YYYY-MM-DD
	SlotLabel string  // "06:00 - 07:00"
	Price     float64
}

// MakeSlotID собирает идентификатор выбранного слота из даты, метки и цены
func MakeSlotID(date, slotLabel string, price float64) string {
	return fmt.Sprintf("%s|%s|%.2f", date, slotLabel, price)
}

// SelectionSet ограниченный упорядоченный набор выбранных оператором слотов
//
// Инварианты (держатся после каждой операции, включая конкурентные вызовы):
//   - размер не превышает MaxSelections
//   - на одну пару (дата, слот) приходится не более MaxEntriesPerTimeSlot записей
type SelectionSet struct {
	mu      sync.Mutex
	entries []SelectionEntry
}

// NewSelectionSet создает пустой набор выбора
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{entries: make([]SelectionEntry, 0, MaxSelections)}
}

// ToggleResult результат операции Toggle
type ToggleResult struct {
	Added bool // запись добавлена
	// Evicted заполнен, если при достижении лимита на пару (дата, слот)
	// была вытеснена самая старая запись; новая запись при этом НЕ добавляется
	Evicted *SelectionEntry
}

// Toggle применяет выбор слота по правилам ротации:
//  1. если на пару (дата, слот) уже есть MaxEntriesPerTimeSlot записей,
//     вытесняется самая старая из них (FIFO), новая запись не добавляется;
//  2. иначе, если общий размер меньше MaxSelections, запись добавляется в конец;
//  3. иначе операция отклоняется с ErrSelectionLimitReached без изменений.
func (s *SelectionSet) Toggle(date, slotLabel string, price float64) (*ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Считаем записи с совпадающей парой (дата, слот), цена не учитывается
	matching := 0
	oldest := -1
	for i, e := range s.entries {
		if e.Date == date && e.SlotLabel == slotLabel {
			matching++
			if oldest == -1 {
				oldest = i
			}
		}
	}

	if matching >= MaxEntriesPerTimeSlot {
		evicted := s.entries[oldest]
		s.entries = append(s.entries[:oldest], s.entries[oldest+1:]...)
		return &ToggleResult{Added: false, Evicted: &evicted}, nil
	}

	if len(s.entries) >= MaxSelections {
		return nil, ErrSelectionLimitReached
	}

	s.entries = append(s.entries, SelectionEntry{
		SlotID:    MakeSlotID(date, slotLabel, price),
		Date:      date,
		SlotLabel: slotLabel,
		Price:     price,
	})
	return &ToggleResult{Added: true}, nil
}

// Remove удаляет запись по идентификатору
// Возвращает true, если запись была найдена и удалена
func (s *SelectionSet) Remove(slotID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.SlotID == slotID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear очищает набор (вызывается при смене филиала)
func (s *SelectionSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
}

// Entries возвращает копию текущих записей в порядке добавления
func (s *SelectionSet) Entries() []SelectionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SelectionEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len возвращает текущий размер выбора
func (s *SelectionSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// OccupancyCount возвращает количество записей на пару (дата, слот)
func (s *SelectionSet) OccupancyCount(date, slotLabel string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, e := range s.entries {
		if e.Date == date && e.SlotLabel == slotLabel {
			count++
		}
	}
	return count
}

// TotalPrice возвращает сумму цен всех выбранных слотов
func (s *SelectionSet) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, e := range s.entries {
		total += e.Price
	}
	return total
}
