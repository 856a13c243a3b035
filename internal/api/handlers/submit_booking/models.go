package submit_booking

import (
	submitBooking "github.com/m04kA/SMC-SlotEngine/internal/usecase/submit_booking"
)

// BookingLine модель строки резервации
type BookingLine struct {
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Price     float64 `json:"price"`
}

// SubmitBookingResponse HTTP response model: итог передачи в оплату
type SubmitBookingResponse struct {
	ReservationID string        `json:"reservationId"`
	BranchID      int64         `json:"branchId"`
	Lines         []BookingLine `json:"lines"`
	TotalPrice    float64       `json:"totalPrice"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	lines := make([]BookingLine, len(resp.Lines))
	for i, line := range resp.Lines {
		lines[i] = BookingLine{
			Date:      line.Date,
			StartTime: line.StartTime.String(),
			EndTime:   line.EndTime.String(),
			Price:     line.Price,
		}
	}

	return &SubmitBookingResponse{
		ReservationID: resp.ReservationID,
		BranchID:      resp.BranchID,
		Lines:         lines,
		TotalPrice:    resp.TotalPrice,
	}
}
