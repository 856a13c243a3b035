package domain

import "time"

// NormalizeWeekStart нормализует дату к каноническому началу недели (воскресенье)
// Все ключи недельного кэша строятся от этой даты
func NormalizeWeekStart(date time.Time) time.Time {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.AddDate(0, 0, -int(dateOnly.Weekday()))
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly обнуляет время, оставляя только дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
