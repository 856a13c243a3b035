package load_week

import (
	"time"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

// Request модель запроса на загрузку недели филиала
type Request struct {
	UserID    int64     // ID оператора (ключ сессии движка)
	BranchID  int64     // ID филиала
	WeekStart time.Time // любая дата внутри недели; нормализуется к воскресенью
}

// Response модель ответа: полный снимок сетки недели
type Response struct {
	BranchID  int64
	WeekStart time.Time

	// Days даты активных дней недели (YYYY-MM-DD) в порядке диапазона
	Days []string

	// MorningSlots и AfternoonSlots метки слотов по обе стороны границы
	MorningSlots   []string
	AfternoonSlots []string

	Cells []domain.GridCell

	// AvailabilityNotice неблокирующее уведомление о неудачном запросе
	// занятых слотов (fail-open); пустая строка, если запрос прошел
	AvailabilityNotice string

	// ConnectionState текущее состояние live-канала
	ConnectionState string

	// LiveUpdatesPaused true, когда live-канал в состоянии disconnected
	LiveUpdatesPaused bool

	// LastBookingResult последний результат бронирования по филиалу
	// из live-канала; nil - событий не было
	LastBookingResult *bool
}
