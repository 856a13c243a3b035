package domain

// Правила выбора слотов
const (
	// MaxSelections максимальное количество слотов в выборе оператора
	MaxSelections = 3

	// MaxEntriesPerTimeSlot максимальное количество записей выбора
	// на одну и ту же пару (дата, слот)
	MaxEntriesPerTimeSlot = 2
)

// Сетка слотов
const (
	// BoundaryHour граница разделения сетки на утренние и дневные слоты
	BoundaryHour = 14.0

	// SlotDurationMinutes длительность одного слота
	SlotDurationMinutes = 60

	// PastGraceMinutes слот остается доступным для бронирования
	// в течение этого времени после номинального начала
	PastGraceMinutes = 15
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	// SlotLabelSeparator разделитель в метке слота "06:00 - 07:00"
	SlotLabelSeparator = " - "
)
