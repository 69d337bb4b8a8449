package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/plot"
)

// ViewerConfig stores persistent viewer settings
type ViewerConfig struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	PickRadius float32 `json:"pick_radius"`
	Trigger    string  `json:"trigger"`
	DarkMode   bool    `json:"dark_mode"`
}

// DefaultViewerConfig returns the settings used when no file exists.
func DefaultViewerConfig() *ViewerConfig {
	return &ViewerConfig{
		Width:      1360,
		Height:     860,
		PickRadius: 5,
		Trigger:    "pick",
	}
}

// Triggers returns the configured pointer interactions, falling back to
// pick for unknown names.
func (c *ViewerConfig) Triggers() plot.Trigger {
	t, err := ParseTrigger(c.Trigger)
	if err != nil {
		return plot.TriggerPick
	}
	return t
}

// ParseTrigger accepts pick, hover (or move) and both (or pick+move).
func ParseTrigger(name string) (plot.Trigger, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "pick":
		return plot.TriggerPick, nil
	case "hover", "move":
		return plot.TriggerMove, nil
	case "both", "pick+move":
		return plot.TriggerBoth, nil
	}
	return plot.TriggerNone, fmt.Errorf("unknown trigger %q", name)
}

// triggerName is the inverse of ParseTrigger.
func triggerName(t plot.Trigger) string {
	switch t {
	case plot.TriggerMove:
		return "hover"
	case plot.TriggerBoth:
		return "both"
	}
	return "pick"
}

// ConfigPath returns the path of the viewer settings file
func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "opentraceplot", "config.json"), nil
}

// LoadConfig loads the viewer settings from ConfigPath
func LoadConfig() (*ViewerConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultViewerConfig(), err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile reads settings from path. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadConfigFile(path string) (*ViewerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultViewerConfig(), nil
		}
		return nil, err
	}

	config := DefaultViewerConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig saves the viewer settings to ConfigPath
func SaveConfig(config *ViewerConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigFile(path, config)
}

// SaveConfigFile writes settings to path, creating its directory.
func SaveConfigFile(path string, config *ViewerConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
