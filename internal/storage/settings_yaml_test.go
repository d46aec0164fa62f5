package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"countdown/internal/core/model"
	"countdown/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStoreAt(t.TempDir())

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "Countdown")
	store := NewStoreAt(dir)
	saved := preferences.Settings{
		Layout:        preferences.LayoutFull,
		TickInterval:  250 * time.Millisecond,
		SoundEnabled:  false,
		NotifyEnabled: true,
		FlashEnabled:  false,
		Autostart:     true,
	}

	require.NoError(t, store.Save(saved))
	loaded, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, saved, loaded)
	assert.FileExists(t, store.Path())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(dir)
	require.NoError(t, os.WriteFile(store.Path(), []byte("sound_enabled: false\n"), 0o644))

	settings, err := store.Load()
	require.NoError(t, err)

	defaults := preferences.DefaultSettings()
	assert.False(t, settings.SoundEnabled)
	assert.Equal(t, defaults.NotifyEnabled, settings.NotifyEnabled)
	assert.Equal(t, defaults.Layout, settings.Layout)
	assert.Equal(t, defaults.TickInterval, settings.TickInterval)
}

func TestLoadClampsTickInterval(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(dir)
	require.NoError(t, os.WriteFile(store.Path(), []byte("tick_interval_ms: 5000\nlayout: sideways\n"), 0o644))

	settings, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, model.MaxTickInterval, settings.TickInterval)
	assert.Equal(t, preferences.LayoutFull, settings.Layout)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(dir)
	require.NoError(t, os.WriteFile(store.Path(), []byte("layout: [unterminated\n"), 0o644))

	settings, err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}
