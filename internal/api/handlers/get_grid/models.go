package get_grid

import (
	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

// GridCell модель ячейки сетки
type GridCell struct {
	Date           string  `json:"date"`
	SlotLabel      string  `json:"slotLabel"`
	Price          float64 `json:"price"`
	IsPast         bool    `json:"isPast"`
	IsUnavailable  bool    `json:"isUnavailable"`
	IsSelected     bool    `json:"isSelected"`
	OccupancyCount int     `json:"occupancyCount"`
	IsDisabled     bool    `json:"isDisabled"`
}

// GridResponse HTTP response model для снимка всей сетки
type GridResponse struct {
	Cells []GridCell `json:"cells"`
}

// FromDomainCell конвертирует доменную ячейку в HTTP модель
func FromDomainCell(cell *domain.GridCell) *GridCell {
	return &GridCell{
		Date:           cell.Date,
		SlotLabel:      cell.SlotLabel,
		Price:          cell.Price,
		IsPast:         cell.IsPast,
		IsUnavailable:  cell.IsUnavailable,
		IsSelected:     cell.IsSelected,
		OccupancyCount: cell.OccupancyCount,
		IsDisabled:     cell.IsDisabled(),
	}
}

// FromDomainCells конвертирует снимок сетки в HTTP response
func FromDomainCells(cells []domain.GridCell) *GridResponse {
	out := make([]GridCell, len(cells))
	for i := range cells {
		out[i] = *FromDomainCell(&cells[i])
	}
	return &GridResponse{Cells: out}
}
