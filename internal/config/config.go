package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"fotogrip/internal/eventbus"
)

// FileName is the per-directory configuration file.
const FileName = ".fotogrip.toml"

// Config represents the application configuration
type Config struct {
	Version   int               `toml:"version"`
	PhotoDir  string            `toml:"photo_dir"`
	GPXFile   string            `toml:"gpx_file,omitempty"`
	UI        UISettings        `toml:"ui"`
	Correlate CorrelateSettings `toml:"correlate"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowCoordinates bool `toml:"show_coordinates"`
	ShowBearing     bool `toml:"show_bearing"`
	ConfirmDelete   bool `toml:"confirm_delete"`
}

// CorrelateSettings controls GPX track correlation
type CorrelateSettings struct {
	ToleranceSeconds   int  `toml:"tolerance_seconds"`
	InterpolateBearing bool `toml:"interpolate_bearing"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		UI: UISettings{
			ShowCoordinates: true,
			ShowBearing:     true,
			ConfirmDelete:   true,
		},
		Correlate: CorrelateSettings{
			ToleranceSeconds:   120,
			InterpolateBearing: true,
		},
	}
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// service is the concrete implementation
type service struct {
	bus      eventbus.EventBus
	filePath string
}

// NewService creates a new config service rooted at the user config dir
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	dir := filepath.Join(configDir, "fotogrip")
	os.MkdirAll(dir, 0755)

	return &service{filePath: filepath.Join(dir, "config.toml")}
}

// NewServiceWithBus creates a config service with event bus support
func NewServiceWithBus(bus eventbus.EventBus) Service {
	s := NewService().(*service)
	s.bus = bus
	return s
}

// Load loads the configuration from the default location
func (s *service) Load() (*Config, error) {
	return s.LoadFromPath(s.filePath)
}

// Save saves the configuration to the default location
func (s *service) Save(cfg *Config) error {
	return s.SaveToPath(cfg, s.filePath)
}

// LoadFromPath loads the configuration from the given file. A missing
// file yields the default configuration.
func (s *service) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		s.publishLoaded(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	s.publishLoaded(&cfg)
	return &cfg, nil
}

// SaveToPath saves the configuration to the given file
func (s *service) SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

func (s *service) publishLoaded(cfg *Config) {
	if s.bus != nil {
		s.bus.Publish(eventbus.ConfigLoadedEvent{
			PhotoDir: cfg.PhotoDir,
			GPXFile:  cfg.GPXFile,
		})
	}
}
