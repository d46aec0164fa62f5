package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"countdown/internal/core/model"
	"countdown/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Layout         string `yaml:"layout"`
	TickIntervalMs int    `yaml:"tick_interval_ms"`
	SoundEnabled   *bool  `yaml:"sound_enabled"`
	NotifyEnabled  *bool  `yaml:"notify_enabled"`
	FlashEnabled   *bool  `yaml:"flash_enabled"`
	Autostart      bool   `yaml:"autostart"`
}

// Store reads and writes settings under a configuration directory.
type Store struct {
	path string
}

// NewStoreAt returns a store that keeps its file in dir.
func NewStoreAt(dir string) *Store {
	return &Store{path: filepath.Join(dir, settingsFileName)}
}

// Path returns the settings file location.
func (store *Store) Path() string {
	return store.path
}

// Load reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func (store *Store) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// Save writes user preferences to YAML.
func (store *Store) Save(settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		Layout:         string(settings.Layout),
		TickIntervalMs: int(settings.TickInterval / time.Millisecond),
		SoundEnabled:   boolPtr(settings.SoundEnabled),
		NotifyEnabled:  boolPtr(settings.NotifyEnabled),
		FlashEnabled:   boolPtr(settings.FlashEnabled),
		Autostart:      settings.Autostart,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Layout != "" {
		settings.Layout = preferences.ParseLayout(fileData.Layout)
	}
	if fileData.TickIntervalMs > 0 {
		settings.TickInterval = model.ClampTickInterval(time.Duration(fileData.TickIntervalMs) * time.Millisecond)
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.NotifyEnabled != nil {
		settings.NotifyEnabled = *fileData.NotifyEnabled
	}
	if fileData.FlashEnabled != nil {
		settings.FlashEnabled = *fileData.FlashEnabled
	}
	settings.Autostart = fileData.Autostart
}

func boolPtr(value bool) *bool {
	return &value
}
