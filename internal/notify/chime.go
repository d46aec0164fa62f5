package notify

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const chimeSampleRate = beep.SampleRate(44100)

// ChimeConfig shapes the completion tone.
type ChimeConfig struct {
	Frequency float64
	Tone      time.Duration
	Gap       time.Duration
	Repeats   int
	// Volume is relative to full scale in powers of two; 0 is unchanged.
	Volume float64
}

// DefaultChimeConfig returns three short 880 Hz beeps.
func DefaultChimeConfig() ChimeConfig {
	return ChimeConfig{
		Frequency: 880,
		Tone:      180 * time.Millisecond,
		Gap:       120 * time.Millisecond,
		Repeats:   3,
		Volume:    -1,
	}
}

// Chime plays a generated tone through the system speaker.
type Chime struct {
	config   ChimeConfig
	initOnce sync.Once
	initErr  error
}

// NewChime creates a chime. The speaker is opened on first use.
func NewChime(config ChimeConfig) *Chime {
	if config.Repeats <= 0 {
		config.Repeats = 1
	}
	return &Chime{config: config}
}

// Notify plays the chime without waiting for it to finish.
func (chime *Chime) Notify(Notification) error {
	chime.initOnce.Do(func() {
		chime.initErr = speaker.Init(chimeSampleRate, chimeSampleRate.N(100*time.Millisecond))
	})
	if chime.initErr != nil {
		return fmt.Errorf("init speaker: %w", chime.initErr)
	}
	speaker.Play(chime.streamer())
	return nil
}

func (chime *Chime) streamer() beep.Streamer {
	parts := make([]beep.Streamer, 0, chime.config.Repeats*2)
	for i := 0; i < chime.config.Repeats; i++ {
		parts = append(parts, sineTone(chimeSampleRate, chime.config.Frequency, chime.config.Tone))
		if i < chime.config.Repeats-1 {
			parts = append(parts, beep.Silence(chimeSampleRate.N(chime.config.Gap)))
		}
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   chime.config.Volume,
	}
}

// sineTone generates a sine wave with a short linear fade at both ends.
func sineTone(sampleRate beep.SampleRate, frequency float64, length time.Duration) beep.Streamer {
	total := sampleRate.N(length)
	fade := sampleRate.N(5 * time.Millisecond)
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		for i := range samples {
			if position >= total {
				return i, true
			}
			envelope := 1.0
			if fade > 0 {
				if position < fade {
					envelope = float64(position) / float64(fade)
				} else if total-position < fade {
					envelope = float64(total-position) / float64(fade)
				}
			}
			value := envelope * math.Sin(2*math.Pi*frequency*float64(position)/float64(sampleRate))
			samples[i][0] = value
			samples[i][1] = value
			position++
		}
		return len(samples), true
	})
}
