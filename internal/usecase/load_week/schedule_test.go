package load_week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

func TestParseDayRange(t *testing.T) {
	from, to, err := parseDayRange("Monday to Friday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, from)
	assert.Equal(t, time.Friday, to)

	// Регистр и пробелы не важны
	from, to, err = parseDayRange("sunday to SATURDAY")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, from)
	assert.Equal(t, time.Saturday, to)
}

func TestParseDayRangeMalformed(t *testing.T) {
	tests := []string{
		"Monday - Friday",
		"Monday",
		"Funday to Friday",
		"Monday to Fryday",
		"",
	}

	for _, rangeStr := range tests {
		_, _, err := parseDayRange(rangeStr)
		assert.ErrorIs(t, err, ErrInvalidSchedule, "range=%q", rangeStr)
	}
}

func TestResolveWeekDays(t *testing.T) {
	// 2026-09-09 - среда; неделя начинается с воскресенья 2026-09-06
	anyDay := time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)

	days, err := resolveWeekDays("Monday to Friday", anyDay)
	require.NoError(t, err)
	require.Len(t, days, 5)
	assert.Equal(t, "2026-09-07", days[0].Format(domain.DateFormat))
	assert.Equal(t, "2026-09-11", days[4].Format(domain.DateFormat))

	// Полная неделя
	days, err = resolveWeekDays("Sunday to Saturday", anyDay)
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.Equal(t, "2026-09-06", days[0].Format(domain.DateFormat))
	assert.Equal(t, "2026-09-12", days[6].Format(domain.DateFormat))

	// Один день
	days, err = resolveWeekDays("Wednesday to Wednesday", anyDay)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2026-09-09", days[0].Format(domain.DateFormat))
}

func TestResolveWeekDaysMalformed(t *testing.T) {
	anyDay := time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)

	days, err := resolveWeekDays("not a range", anyDay)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
	assert.Empty(t, days)
}

func TestGenerateSlotLabels(t *testing.T) {
	// 06:00 - 22:00 при границе 14:00: 8 утренних + 8 дневных слотов
	morning, afternoon, err := generateSlotLabels(6, 22)
	require.NoError(t, err)

	require.Len(t, morning, 8)
	require.Len(t, afternoon, 8)

	assert.Equal(t, "06:00 - 07:00", morning[0])
	assert.Equal(t, "13:00 - 14:00", morning[7])
	assert.Equal(t, "14:00 - 15:00", afternoon[0])
	assert.Equal(t, "21:00 - 22:00", afternoon[7])
}

func TestGenerateSlotLabelsFractionalHours(t *testing.T) {
	// 6.5 -> 06:30; неполный последний час отбрасывается
	morning, afternoon, err := generateSlotLabels(6.5, 9)
	require.NoError(t, err)

	require.Len(t, morning, 2)
	assert.Empty(t, afternoon)
	assert.Equal(t, "06:30 - 07:30", morning[0])
	assert.Equal(t, "07:30 - 08:30", morning[1])
}

func TestGenerateSlotLabelsInvalidHours(t *testing.T) {
	_, _, err := generateSlotLabels(22, 6)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	_, _, err = generateSlotLabels(10, 10)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}
