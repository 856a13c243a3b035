package load_week

import (
	"time"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	loadWeek "github.com/m04kA/SMC-SlotEngine/internal/usecase/load_week"
)

// LoadWeekRequest HTTP request model
type LoadWeekRequest struct {
	BranchID  int64  `json:"branchId"`
	WeekStart string `json:"weekStart"` // YYYY-MM-DD, любая дата внутри недели
}

// LoadWeekResponse HTTP response model: снимок сетки недели
type LoadWeekResponse struct {
	BranchID       int64      `json:"branchId"`
	WeekStart      string     `json:"weekStart"`
	Days           []string   `json:"days"`
	MorningSlots   []string   `json:"morningSlots"`
	AfternoonSlots []string   `json:"afternoonSlots"`
	Cells          []GridCell `json:"cells"`

	AvailabilityNotice string `json:"availabilityNotice,omitempty"`
	ConnectionState    string `json:"connectionState"`
	LiveUpdatesPaused  bool   `json:"liveUpdatesPaused"`
	LastBookingResult  *bool  `json:"lastBookingResult,omitempty"`
}

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

// ToUseCaseRequest создает запрос use case из HTTP модели
func (r *LoadWeekRequest) ToUseCaseRequest(userID int64) (*loadWeek.Request, error) {
	weekStart, err := time.Parse(domain.DateFormat, r.WeekStart)
	if err != nil {
		return nil, err
	}

	return &loadWeek.Request{
		UserID:    userID,
		BranchID:  r.BranchID,
		WeekStart: weekStart,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *loadWeek.Response) *LoadWeekResponse {
	cells := make([]GridCell, len(resp.Cells))
	for i, cell := range resp.Cells {
		cells[i] = fromDomainCell(cell)
	}

	return &LoadWeekResponse{
		BranchID:           resp.BranchID,
		WeekStart:          resp.WeekStart.Format(domain.DateFormat),
		Days:               resp.Days,
		MorningSlots:       resp.MorningSlots,
		AfternoonSlots:     resp.AfternoonSlots,
		Cells:              cells,
		AvailabilityNotice: resp.AvailabilityNotice,
		ConnectionState:    resp.ConnectionState,
		LiveUpdatesPaused:  resp.LiveUpdatesPaused,
		LastBookingResult:  resp.LastBookingResult,
	}
}

func fromDomainCell(cell domain.GridCell) GridCell {
	return GridCell{
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
