package notify

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockNotifier struct {
	mock.Mock
}

func (notifier *mockNotifier) Notify(notification Notification) error {
	args := notifier.Called(notification)
	return args.Error(0)
}

func TestMultiDeliversToAll(t *testing.T) {
	notification := Notification{Title: "Countdown", Body: "Time is up!"}
	first := &mockNotifier{}
	second := &mockNotifier{}
	first.On("Notify", notification).Return(errors.New("no speaker")).Once()
	second.On("Notify", notification).Return(nil).Once()

	err := Multi{first, nil, second}.Notify(notification)

	assert.EqualError(t, err, "no speaker")
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestWhenSkipsDisabled(t *testing.T) {
	notifier := &mockNotifier{}
	enabled := false
	guarded := When(func() bool { return enabled }, notifier)

	assert.NoError(t, guarded.Notify(Notification{}))
	notifier.AssertNotCalled(t, "Notify", mock.Anything)

	enabled = true
	notifier.On("Notify", Notification{Body: "done"}).Return(nil).Once()
	assert.NoError(t, guarded.Notify(Notification{Body: "done"}))
	notifier.AssertExpectations(t)
}

func TestChimeStreamerLength(t *testing.T) {
	config := ChimeConfig{
		Frequency: 440,
		Tone:      50 * time.Millisecond,
		Gap:       20 * time.Millisecond,
		Repeats:   2,
	}
	chime := NewChime(config)

	samples := countSamples(chime.streamer())

	want := 2*chimeSampleRate.N(config.Tone) + chimeSampleRate.N(config.Gap)
	assert.Equal(t, want, samples)
}

func TestSineToneStaysInRange(t *testing.T) {
	streamer := sineTone(chimeSampleRate, 880, 30*time.Millisecond)
	buffer := make([][2]float64, 256)
	peak := 0.0
	for {
		n, ok := streamer.Stream(buffer)
		for _, sample := range buffer[:n] {
			assert.Equal(t, sample[0], sample[1])
			peak = math.Max(peak, math.Abs(sample[0]))
		}
		if !ok {
			break
		}
	}
	assert.LessOrEqual(t, peak, 1.0)
	assert.Greater(t, peak, 0.5)
}

func countSamples(streamer beep.Streamer) int {
	buffer := make([][2]float64, 512)
	total := 0
	for {
		n, ok := streamer.Stream(buffer)
		total += n
		if !ok {
			return total
		}
	}
}
