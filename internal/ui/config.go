package ui

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/draft"
)

// AppConfig stores persistent editor settings
type AppConfig struct {
	Drafting   draft.Config `json:"drafting"`
	MetricUI   bool         `json:"metric_ui"`
	GridShown  bool         `json:"grid_shown"`
	RecentFile string       `json:"recent_file,omitempty"`
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	var configDir string
	// Use platform-appropriate config directory
	if os.Getenv("APPDATA") != "" {
		configDir = filepath.Join(os.Getenv("APPDATA"), "OpenPlanCAD")
	} else {
		configDir = filepath.Join(homeDir, ".config", "openplancad")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the editor configuration
func LoadConfig() (*AppConfig, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultAppConfig(), err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultAppConfig(), nil
		}
		return nil, err
	}

	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	// Layer state is session-local and never serialized.
	config.Drafting.Layers = draft.NewLayerConfig()
	return &config, nil
}

// SaveConfig saves the editor configuration
func SaveConfig(config *AppConfig) error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Drafting:  draft.DefaultConfig(),
		GridShown: true,
	}
}
