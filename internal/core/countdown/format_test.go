package countdown

import (
	"math"
	"testing"

	"countdown/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 0, want: "00:00:00"},
		{seconds: 59, want: "00:00:59"},
		{seconds: 60, want: "00:01:00"},
		{seconds: 3661, want: "01:01:01"},
		{seconds: 86399, want: "23:59:59"},
		{seconds: 360000, want: "100:00:00"},
		{seconds: -5, want: "00:00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.seconds), "seconds %d", tt.seconds)
	}
}

func TestParseFields(t *testing.T) {
	duration, err := ParseFields("1", " 2 ", "3")
	require.NoError(t, err)
	assert.Equal(t, model.Duration{Hours: 1, Minutes: 2, Seconds: 3}, duration)
	assert.Equal(t, 3723, duration.Total())
}

func TestParseFieldsRejectsInput(t *testing.T) {
	tests := []struct {
		name                    string
		hours, minutes, seconds string
	}{
		{name: "letters", hours: "a", minutes: "0", seconds: "0"},
		{name: "empty", hours: "0", minutes: "", seconds: "0"},
		{name: "fraction", hours: "0", minutes: "1.5", seconds: "0"},
		{name: "minutes range", hours: "0", minutes: "75", seconds: "0"},
		{name: "negative seconds", hours: "0", minutes: "0", seconds: "-1"},
		{name: "hours overflow", hours: "3000000", minutes: "0", seconds: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFields(tt.hours, tt.minutes, tt.seconds)
			assert.ErrorIs(t, err, ErrInvalidDuration)
		})
	}
}

func TestValidateDurationBoundsTotal(t *testing.T) {
	maxHours := int(MaxSeconds / 3600)

	assert.NoError(t, ValidateDuration(model.Duration{Hours: maxHours}))
	assert.ErrorIs(t, ValidateDuration(model.Duration{Hours: maxHours + 1}), ErrInvalidDuration)
	assert.ErrorIs(t, ValidateDuration(model.Duration{Hours: maxHours, Minutes: 59, Seconds: 59}), ErrInvalidDuration)
	assert.ErrorIs(t, ValidateDuration(model.Duration{Hours: math.MaxInt/3600 + 1}), ErrInvalidDuration)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		value string
		want  model.Duration
	}{
		{value: "45", want: model.Duration{Seconds: 45}},
		{value: "5:00", want: model.Duration{Minutes: 5}},
		{value: "01:30:15", want: model.Duration{Hours: 1, Minutes: 30, Seconds: 15}},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got, tt.value)
	}

	_, err := ParseClock("1:2:3:4")
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestDurationFromSecondsRoundTrip(t *testing.T) {
	for _, total := range []int{0, 1, 59, 60, 3599, 3600, 86400, 90061} {
		assert.Equal(t, total, model.DurationFromSeconds(total).Total(), "total %d", total)
	}
}
