package toggle_slot

import (
	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

// ToggleSlotRequest HTTP request model
type ToggleSlotRequest struct {
	Date      string  `json:"date"`      // YYYY-MM-DD
	SlotLabel string  `json:"slotLabel"` // "06:00 - 07:00"
	Price     float64 `json:"price"`
}

// SelectionEntry модель выбранного слота
type SelectionEntry struct {
	SlotID    string  `json:"slotId"`
	Date      string  `json:"date"`
	SlotLabel string  `json:"slotLabel"`
	Price     float64 `json:"price"`
}

// ToggleSlotResponse HTTP response model: результат операции и текущий выбор
type ToggleSlotResponse struct {
	Added      bool             `json:"added"`
	Evicted    *SelectionEntry  `json:"evicted,omitempty"`
	Selection  []SelectionEntry `json:"selection"`
	TotalPrice float64          `json:"totalPrice"`
}

// FromToggleResult собирает HTTP response из результата Toggle и текущего выбора
func FromToggleResult(result *domain.ToggleResult, selection *domain.SelectionSet) *ToggleSlotResponse {
	resp := &ToggleSlotResponse{
		Added:      result.Added,
		Selection:  fromEntries(selection.Entries()),
		TotalPrice: selection.TotalPrice(),
	}
	if result.Evicted != nil {
		evicted := fromEntry(*result.Evicted)
		resp.Evicted = &evicted
	}
	return resp
}

func fromEntries(entries []domain.SelectionEntry) []SelectionEntry {
	out := make([]SelectionEntry, len(entries))
	for i, e := range entries {
		out[i] = fromEntry(e)
	}
	return out
}

func fromEntry(e domain.SelectionEntry) SelectionEntry {
	return SelectionEntry{
		SlotID:    e.SlotID,
		Date:      e.Date,
		SlotLabel: e.SlotLabel,
		Price:     e.Price,
	}
}
