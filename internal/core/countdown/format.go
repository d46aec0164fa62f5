package countdown

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"countdown/internal/core/model"
)

// FormatClock renders a second count as zero-padded HH:MM:SS.
func FormatClock(totalSeconds int) string {
	duration := model.DurationFromSeconds(totalSeconds)
	return fmt.Sprintf("%02d:%02d:%02d", duration.Hours, duration.Minutes, duration.Seconds)
}

// MaxSeconds is the longest countdown whose deadline fits in a time.Duration.
const MaxSeconds = int64(math.MaxInt64 / int64(time.Second))

// ValidateDuration checks that every field is within its clock range.
// Hours are bounded only by MaxSeconds.
func ValidateDuration(duration model.Duration) error {
	if duration.Hours < 0 {
		return fmt.Errorf("%w: hours %d is negative", ErrInvalidDuration, duration.Hours)
	}
	if int64(duration.Hours) > MaxSeconds/3600 {
		return fmt.Errorf("%w: hours %d too large", ErrInvalidDuration, duration.Hours)
	}
	if duration.Minutes < 0 || duration.Minutes > 59 {
		return fmt.Errorf("%w: minutes %d out of range 0-59", ErrInvalidDuration, duration.Minutes)
	}
	if duration.Seconds < 0 || duration.Seconds > 59 {
		return fmt.Errorf("%w: seconds %d out of range 0-59", ErrInvalidDuration, duration.Seconds)
	}
	if total := int64(duration.Hours)*3600 + int64(duration.Minutes)*60 + int64(duration.Seconds); total > MaxSeconds {
		return fmt.Errorf("%w: %d seconds too large", ErrInvalidDuration, total)
	}
	return nil
}

// ParseFields converts the three text fields of a duration form.
func ParseFields(hours, minutes, seconds string) (model.Duration, error) {
	var duration model.Duration
	var err error
	if duration.Hours, err = parseField("hours", hours); err != nil {
		return model.Duration{}, err
	}
	if duration.Minutes, err = parseField("minutes", minutes); err != nil {
		return model.Duration{}, err
	}
	if duration.Seconds, err = parseField("seconds", seconds); err != nil {
		return model.Duration{}, err
	}
	if err := ValidateDuration(duration); err != nil {
		return model.Duration{}, err
	}
	return duration, nil
}

// ParseClock accepts "SS", "MM:SS" or "HH:MM:SS".
func ParseClock(value string) (model.Duration, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	switch len(parts) {
	case 1:
		return ParseFields("0", "0", parts[0])
	case 2:
		return ParseFields("0", parts[0], parts[1])
	case 3:
		return ParseFields(parts[0], parts[1], parts[2])
	default:
		return model.Duration{}, fmt.Errorf("%w: %q is not HH:MM:SS", ErrInvalidDuration, value)
	}
}

func parseField(name, value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidDuration, name, value)
	}
	return parsed, nil
}
