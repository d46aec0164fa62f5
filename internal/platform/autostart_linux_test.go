//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDesktopEntryQuotesSpaces(t *testing.T) {
	entry := buildDesktopEntry("Countdown", "/opt/my apps/countdown")

	assert.Contains(t, entry, "Name=Countdown\n")
	assert.Contains(t, entry, `Exec="/opt/my apps/countdown"`)
	assert.Equal(t, "countdown.desktop", desktopFileName("Countdown"))
}

func TestAutostartWritesAndRemovesEntry(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	service := NewService()

	require.NoError(t, service.EnableAutostart("Countdown", "/usr/bin/countdown"))
	path := filepath.Join(configDir, "autostart", "countdown.desktop")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Exec=/usr/bin/countdown")
	enabled, err := service.AutostartEnabled("Countdown")
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, SetAutostart(service, "Countdown", false))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	enabled, err = service.AutostartEnabled("Countdown")
	require.NoError(t, err)
	assert.False(t, enabled)

	assert.NoError(t, service.DisableAutostart("Countdown"))
}

func TestAutostartRejectsEmptyNames(t *testing.T) {
	service := NewService()

	assert.Error(t, service.EnableAutostart("", "/usr/bin/countdown"))
	assert.Error(t, service.EnableAutostart("Countdown", ""))
	assert.Error(t, service.DisableAutostart(""))
	_, err := service.AutostartEnabled("")
	assert.Error(t, err)
}
