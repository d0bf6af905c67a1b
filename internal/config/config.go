// Package config provides configuration management for the mouse hook host.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Config represents the application configuration
type Config struct {
	// LogEvents logs every received mouse event (noisy)
	LogEvents bool `json:"log_events"`

	// TrayEnabled shows a system tray icon with pause/quit controls
	TrayEnabled bool `json:"tray_enabled"`

	// Relay configures the WebSocket event relay
	Relay RelayConfig `json:"relay"`
}

// RelayConfig contains WebSocket relay settings
type RelayConfig struct {
	// Enabled starts the relay server on loopback
	Enabled bool `json:"enabled"`

	// Port is the loopback port the relay listens on (default: 18090)
	Port int `json:"port"`

	// QueueSize is the number of events buffered before dropping
	QueueSize int `json:"queue_size"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LogEvents:   false,
		TrayEnabled: true,
		Relay: RelayConfig{
			Enabled:   false,
			Port:      18090,
			QueueSize: 1024,
		},
	}
}

// Validate checks the configuration for values that cannot work
func (c *Config) Validate() error {
	if c.Relay.Port < 0 || c.Relay.Port > 65535 {
		return fmt.Errorf("relay port %d out of range", c.Relay.Port)
	}
	if c.Relay.Enabled && c.Relay.Port == 0 {
		return fmt.Errorf("relay enabled without a port")
	}
	if c.Relay.QueueSize < 0 {
		return fmt.Errorf("relay queue size %d is negative", c.Relay.QueueSize)
	}
	return nil
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
}

// NewManager creates a configuration manager using the per-user config path
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(configPath), nil
}

// NewManagerAt creates a configuration manager backed by the given file
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "mousehook")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "mousehook")
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Path returns the backing file path
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk. A missing file keeps the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", m.configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", m.configPath, err)
	}
	m.config = cfg
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}

	log.Printf("Config: Saving configuration to %s (%d bytes)", m.configPath, len(data))
	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.config
}

// Set updates the configuration
func (m *Manager) Set(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.config = &cfg
	m.mu.Unlock()
	return nil
}
