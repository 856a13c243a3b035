package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotEngine/pkg/types"
)

// BookingLine одна строка итоговой резервации
type BookingLine struct {
	Date      string           `json:"date"`      // YYYY-MM-DD
	StartTime types.TimeString `json:"startTime"` // HH:MM
	EndTime   types.TimeString `json:"endTime"`   // HH:MM
	Price     float64          `json:"price"`
}

// ReservationHandoff запись журнала передач в оплату: что именно и когда
// было передано сервису резервации от имени оператора
type ReservationHandoff struct {
	ID            string // uuid
	UserID        int64
	BranchID      int64
	Lines         []BookingLine
	TotalPrice    float64
	ReservationID string
	CreatedAt     time.Time
}
