package remove_slot

import (
	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

// SelectionEntry модель выбранного слота
type SelectionEntry struct {
	SlotID    string  `json:"slotId"`
	Date      string  `json:"date"`
	SlotLabel string  `json:"slotLabel"`
	Price     float64 `json:"price"`
}

// RemoveSlotResponse HTTP response model: выбор после удаления
type RemoveSlotResponse struct {
	Selection  []SelectionEntry `json:"selection"`
	TotalPrice float64          `json:"totalPrice"`
}

// FromSelection собирает HTTP response из текущего выбора
func FromSelection(selection *domain.SelectionSet) *RemoveSlotResponse {
	entries := selection.Entries()
	out := make([]SelectionEntry, len(entries))
	for i, e := range entries {
		out[i] = SelectionEntry{
			SlotID:    e.SlotID,
			Date:      e.Date,
			SlotLabel: e.SlotLabel,
			Price:     e.Price,
		}
	}
	return &RemoveSlotResponse{
		Selection:  out,
		TotalPrice: selection.TotalPrice(),
	}
}
