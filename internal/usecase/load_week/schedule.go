package load_week

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	"github.com/m04kA/SMC-SlotEngine/pkg/types"
)

// dayRangeSeparator разделитель в строке диапазона дней "Monday to Friday"
const dayRangeSeparator = " to "

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// parseDayRange разбирает строку "X to Y" в пару дней недели (обе границы включительно)
// Неразборчивая строка или неизвестное имя дня - ошибка конфигурации филиала
func parseDayRange(rangeStr string) (time.Weekday, time.Weekday, error) {
	parts := strings.Split(rangeStr, dayRangeSeparator)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: malformed day range %q, expected \"X to Y\"", ErrInvalidSchedule, rangeStr)
	}

	from, ok := weekdayNames[strings.ToLower(strings.TrimSpace(parts[0]))]
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, parts[0])
	}

	to, ok := weekdayNames[strings.ToLower(strings.TrimSpace(parts[1]))]
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, parts[1])
	}

	return from, to, nil
}

// resolveWeekDays возвращает даты активных дней недели, привязанные
// к неделе weekStart (нормализуется к воскресенью)
//
// Диапазон включает обе границы; количество дат равно длине диапазона.
// При ошибке разбора возвращается пустой список и ошибка конфигурации
func resolveWeekDays(rangeStr string, weekStart time.Time) ([]time.Time, error) {
	from, to, err := parseDayRange(rangeStr)
	if err != nil {
		return []time.Time{}, err
	}

	sunday := domain.NormalizeWeekStart(weekStart)

	// Длина диапазона по модулю недели: "Monday to Friday" -> 5 дней
	count := (int(to)-int(from)+7)%7 + 1

	days := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		weekday := (int(from) + i) % 7
		days = append(days, sunday.AddDate(0, 0, weekday))
	}
	return days, nil
}

// generateSlotLabels генерирует часовые метки слотов от открытия до закрытия,
// разделяя их границей domain.BoundaryHour на утренний и дневной списки
//
// Метки вида "06:00 - 07:00" покрывают [open, close) без пропусков
// и пересечений; дробные часы округляются до целой минуты
func generateSlotLabels(openHours, closeHours float64) (morning, afternoon []string, err error) {
	if closeHours <= openHours {
		return nil, nil, fmt.Errorf("%w: close time %.2f is not after open time %.2f",
			ErrInvalidSchedule, closeHours, openHours)
	}

	start, err := types.NewTimeStringFromHours(openHours)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid open time: %v", ErrInvalidSchedule, err)
	}

	closeTime, err := types.NewTimeStringFromHours(closeHours)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid close time: %v", ErrInvalidSchedule, err)
	}

	boundary, err := types.NewTimeStringFromHours(domain.BoundaryHour)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid boundary hour: %v", ErrInvalidSchedule, err)
	}

	morning = make([]string, 0)
	afternoon = make([]string, 0)

	for current := start; current.IsBefore(closeTime); {
		end, err := current.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			break
		}
		if end.IsAfter(closeTime) {
			break
		}

		label := domain.MakeSlotLabel(current, end)
		if current.IsBefore(boundary) {
			morning = append(morning, label)
		} else {
			afternoon = append(afternoon, label)
		}

		current = end
	}

	return morning, afternoon, nil
}
