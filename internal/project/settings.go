// Package project handles persistence of the board generation settings
// as JSON on disk.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/DavidHearl/boardgen/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.boardgen/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".boardgen")
}

// DefaultConfigPath returns the default path for the settings file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "settings.json")
}

// SaveSettings persists SawSettings to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveSettings(path string, settings model.SawSettings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSettings reads SawSettings from the given path.
// If the file does not exist, it returns DefaultSettings with no error.
func LoadSettings(path string) (model.SawSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultSettings(), nil
		}
		return model.SawSettings{}, err
	}
	var settings model.SawSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return model.SawSettings{}, err
	}
	// Ensure the bin table is never empty, the accumulator needs it
	if len(settings.WidthBins) == 0 {
		settings.WidthBins = model.DefaultSettings().WidthBins
	}
	return settings, nil
}
