package submit_booking

import "github.com/m04kA/SMC-SlotEngine/internal/domain"

// Request модель запроса на передачу выбора в оплату
type Request struct {
	UserID int64 // ID оператора (ключ сессии движка)
}

// Response модель ответа: итог передачи резервации
type Response struct {
	ReservationID string
	BranchID      int64
	Lines         []domain.BookingLine
	TotalPrice    float64
}
