package reservationservice

import "github.com/m04kA/SMC-SlotEngine/pkg/types"

// ReserveRequest запрос на создание резервации
type ReserveRequest struct {
	BranchID   int64             `json:"branchId"`
	UserID     int64             `json:"userId"`
	Lines      []ReservationLine `json:"lines"`
	TotalPrice float64           `json:"totalPrice"`
}

// ReservationLine одна строка резервации (один выбранный слот)
type ReservationLine struct {
	Date      string           `json:"date"`      // YYYY-MM-DD
	StartTime types.TimeString `json:"startTime"` // HH:MM
	EndTime   types.TimeString `json:"endTime"`   // HH:MM
	Price     float64          `json:"price"`
}

// ReserveResponse ответ сервиса резервации
type ReserveResponse struct {
	ReservationID string `json:"reservationId"`
}

// ErrorResponse модель ошибки от ReservationService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
