package get_handoffs

import (
	"time"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

// BookingLine модель строки резервации
type BookingLine struct {
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Price     float64 `json:"price"`
}

// Handoff модель записи журнала
type Handoff struct {
	ID            string        `json:"id"`
	BranchID      int64         `json:"branchId"`
	Lines         []BookingLine `json:"lines"`
	TotalPrice    float64       `json:"totalPrice"`
	ReservationID string        `json:"reservationId"`
	CreatedAt     string        `json:"createdAt"`
}

// HandoffsResponse HTTP response model для списка записей
type HandoffsResponse struct {
	Handoffs []Handoff `json:"handoffs"`
}

// FromDomain конвертирует запись журнала в HTTP модель
func FromDomain(record *domain.ReservationHandoff) *Handoff {
	lines := make([]BookingLine, len(record.Lines))
	for i, line := range record.Lines {
		lines[i] = BookingLine{
			Date:      line.Date,
			StartTime: line.StartTime.String(),
			EndTime:   line.EndTime.String(),
			Price:     line.Price,
		}
	}

	return &Handoff{
		ID:            record.ID,
		BranchID:      record.BranchID,
		Lines:         lines,
		TotalPrice:    record.TotalPrice,
		ReservationID: record.ReservationID,
		CreatedAt:     record.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainList конвертирует список записей в HTTP response
func FromDomainList(records []*domain.ReservationHandoff) *HandoffsResponse {
	handoffs := make([]Handoff, len(records))
	for i, record := range records {
		handoffs[i] = *FromDomain(record)
	}
	return &HandoffsResponse{Handoffs: handoffs}
}
