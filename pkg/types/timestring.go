package types

import (
	"database/sql/driver"
	"fmt"
	"math"
	"time"
)

// TimeFormat формат времени HH:MM
const TimeFormat = "15:04"

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// TimeString время суток в формате "HH:MM" без привязки к дате
// Используется для времени начала слотов и рабочих часов
type TimeString string

// NewTimeString создает TimeString из time.Time (берет только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(TimeFormat, s); err != nil {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM: %w", s, err)
	}
	return TimeString(s), nil
}

// NewTimeStringFromHours создает TimeString из дробного часа (например, 6.5 -> "06:30")
// Минуты округляются до ближайшей целой минуты
func NewTimeStringFromHours(hours float64) (TimeString, error) {
	totalMinutes := int(math.Round(hours * 60))
	if totalMinutes < 0 || totalMinutes >= MinutesPerDay {
		return "", fmt.Errorf("hours value %.2f is out of range [0, 24)", hours)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)), nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// TotalMinutes возвращает количество минут от начала суток
func (t TimeString) TotalMinutes() (int, error) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0, fmt.Errorf("invalid time string %q: %w", string(t), err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает новое время, смещенное на minutes минут вперед
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.TotalMinutes()
	if err != nil {
		return "", err
	}
	total += minutes
	if total < 0 || total >= MinutesPerDay {
		return "", fmt.Errorf("time %s + %d minutes is out of day range", t, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Equal возвращает true, если времена совпадают
func (t TimeString) Equal(other TimeString) bool {
	return string(t) == string(other)
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(v)
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
	return nil
}
