package branchservice

import "github.com/m04kA/SMC-SlotEngine/pkg/types"

// Branch модель филиала из BranchService
type Branch struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	OpenTime       float64 `json:"openTime"`       // дробный час, 6.5 = 06:30
	CloseTime      float64 `json:"closeTime"`      // дробный час
	ActiveDayRange string  `json:"activeDayRange"` // "Monday to Friday"
}

// Prices тарифы филиала
type Prices struct {
	BranchID     int64   `json:"branchId"`
	WeekdayPrice float64 `json:"weekdayPrice"`
	WeekendPrice float64 `json:"weekendPrice"`
}

// UnavailableSlotDTO занятый слот из ответа BranchService
type UnavailableSlotDTO struct {
	Date      string           `json:"date"`      // YYYY-MM-DD
	StartTime types.TimeString `json:"startTime"` // HH:MM
}

// ErrorResponse модель ошибки от BranchService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
