// Package config handles configuration management for voicechat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diogo/voicechat/internal/models"
)

// Config represents the user configuration
type Config struct {
	// Endpoint is the chat endpoint of the voice backend
	Endpoint string `json:"endpoint"`
	// RequestTimeout is the per-turn timeout in seconds. One turn covers
	// upload, recognition, generation, and synthesis, so the default is
	// deliberately generous.
	RequestTimeout int `json:"request_timeout"`
	// Autoplay controls whether reply audio plays as soon as it arrives
	Autoplay bool `json:"autoplay"`
	// SampleRate is the capture rate in Hz. The backend's recognizer
	// expects 16000; change only if your backend does.
	SampleRate int `json:"sample_rate"`
	// Verbose enables detailed output during operations
	Verbose         bool   `json:"verbose"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`
	TUITheme        string `json:"tui_theme,omitempty"` // TUI color theme
	// SaveHistory controls whether conversations are persisted to disk
	SaveHistory bool `json:"save_history"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Endpoint:        models.DefaultEndpoint,
		RequestTimeout:  120,
		Autoplay:        true,
		SampleRate:      16000,
		Verbose:         false,
		CopyToClipboard: false,
		TUITheme:        "tokyonight",
		SaveHistory:     true,
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".voicechat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	// Backfill fields older config files may not carry
	if cfg.Endpoint == "" {
		cfg.Endpoint = models.DefaultEndpoint
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 120
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
