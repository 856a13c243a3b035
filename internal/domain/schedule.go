package domain

import "time"

// BranchSchedule конфигурация работы филиала
// Неизменяема в течение сессии, перезапрашивается при смене филиала
type BranchSchedule struct {
	BranchID int64

	// OpenTime и CloseTime часы работы в виде дробного часа (6.5 = 06:30)
	OpenTime  float64
	CloseTime float64

	// ActiveDayRange диапазон рабочих дней недели в виде строки "Monday to Friday"
	// Диапазон включает обе границы
	ActiveDayRange string

	WeekdayPrice float64
	WeekendPrice float64
}

// PriceFor возвращает цену слота на указанную дату:
// будние дни (Пн-Пт) по тарифу WeekdayPrice, выходные по WeekendPrice
func (s *BranchSchedule) PriceFor(date time.Time) float64 {
	if isWeekend(date) {
		return s.WeekendPrice
	}
	return s.WeekdayPrice
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
