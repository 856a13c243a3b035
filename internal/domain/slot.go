package domain

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SlotEngine/pkg/types"
)

// UnavailableSlot занятый слот, подтвержденный бэкендом
// Авторитетный негативный сигнал: слот с такой датой и временем начала занят
type UnavailableSlot struct {
	Date      string           `json:"date"`      // YYYY-MM-DD
	StartTime types.TimeString `json:"startTime"` // HH:MM
}

// GridCell вычисляемое состояние ячейки сетки (дата, слот)
// Не хранится: пересчитывается при каждом обращении
type GridCell struct {
	Date           string
	SlotLabel      string
	Price          float64
	IsPast         bool
	IsUnavailable  bool
	IsSelected     bool
	OccupancyCount int
}

// IsDisabled ячейка недоступна для выбора
func (c *GridCell) IsDisabled() bool {
	return c.IsPast || c.IsUnavailable
}

// MakeSlotLabel собирает метку слота вида "06:00 - 07:00"
func MakeSlotLabel(start, end types.TimeString) string {
	return start.String() + SlotLabelSeparator + end.String()
}

// ParseSlotLabel разбирает метку слота "06:00 - 07:00" на время начала и конца
func ParseSlotLabel(label string) (start, end types.TimeString, err error) {
	parts := strings.Split(label, SlotLabelSeparator)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid slot label format: %q", label)
	}

	start, err = types.NewTimeStringFromString(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("invalid slot label start time: %w", err)
	}

	end, err = types.NewTimeStringFromString(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("invalid slot label end time: %w", err)
	}

	return start, end, nil
}
