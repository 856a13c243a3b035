package livechannel

import "github.com/m04kA/SMC-SlotEngine/pkg/types"

// Stream имя потока событий live-канала
type Stream string

const (
	// StreamSlotStatus поток изменений статуса слотов (занят/освобожден)
	StreamSlotStatus Stream = "slot_status_update"

	// StreamBookingResult поток результатов попыток бронирования
	// (забронировано / свободных слотов нет)
	StreamBookingResult Stream = "slot_booking_result"
)

// Event событие, доставленное live-каналом
//
// Для StreamSlotStatus заполнены Date, StartTime и Reserved
// Для StreamBookingResult заполнен Booked
type Event struct {
	Stream   Stream
	BranchID int64

	Date      string           // YYYY-MM-DD
	StartTime types.TimeString // HH:MM
	Reserved  bool             // true - слот занят, false - освобожден

	Booked bool // true - забронировано, false - свободных слотов нет
}

// slotStatusPayload тело сообщения потока slot_status_update
type slotStatusPayload struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Reserved  bool   `json:"reserved"`
}

// bookingResultPayload тело сообщения потока slot_booking_result
type bookingResultPayload struct {
	Booked bool `json:"booked"`
}
