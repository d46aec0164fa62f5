package preferences

import (
	"testing"
	"time"

	"countdown/internal/core/model"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCollectsEditedValues(t *testing.T) {
	var saved []Settings
	prefs := New(test.NewTempApp(t), DefaultSettings(), func(settings Settings) {
		saved = append(saved, settings)
	})

	prefs.layoutGroup.SetSelected(string(LayoutFull))
	prefs.tickEntry.SetText("500")
	prefs.sound.SetChecked(false)
	prefs.autostart.SetChecked(true)
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, LayoutFull, saved[0].Layout)
	assert.Equal(t, 500*time.Millisecond, saved[0].TickInterval)
	assert.False(t, saved[0].SoundEnabled)
	assert.True(t, saved[0].NotifyEnabled)
	assert.True(t, saved[0].Autostart)
}

func TestSaveKeepsIntervalOnBadInput(t *testing.T) {
	var saved Settings
	prefs := New(test.NewTempApp(t), DefaultSettings(), func(settings Settings) { saved = settings })

	prefs.tickEntry.SetText("fast")
	prefs.handleSave()
	assert.Equal(t, model.DefaultTickInterval, saved.TickInterval)

	prefs.tickEntry.SetText("1")
	prefs.handleSave()
	assert.Equal(t, model.MinTickInterval, saved.TickInterval)
}

func TestParseLayout(t *testing.T) {
	assert.Equal(t, LayoutCompact, ParseLayout("compact"))
	assert.Equal(t, LayoutFull, ParseLayout("full"))
	assert.Equal(t, LayoutFull, ParseLayout(""))
}

func TestTimerConfigClampsInterval(t *testing.T) {
	settings := DefaultSettings()
	settings.TickInterval = 10 * time.Second

	assert.Equal(t, model.MaxTickInterval, settings.TimerConfig().TickInterval)
}
