package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// UserConfigDir is the directory for user level config
	UserConfigDir = ".config/annot"
	// UserConfigFile is the name of the user level config file
	UserConfigFile = "config.yaml"
)

// Loader loads configuration with layered precedence.
type Loader struct {
	logger *slog.Logger
	home   string
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	home, _ := os.UserHomeDir()
	return &Loader{logger: logger, home: home}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/annot/config.yaml)
// 3. The file at path, if not empty
func (l *Loader) Load(path string) (*Config, error) {
	config := Default()

	if user := l.userConfigPath(); user != "" {
		if userConfig, err := LoadFromFile(user); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", user))
			config.Merge(userConfig)
		} else if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", user), slog.String("error", err.Error()))
		}
	}

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", path))
		config.Merge(fileConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) userConfigPath() string {
	if l.home == "" {
		return ""
	}
	return filepath.Join(l.home, UserConfigDir, UserConfigFile)
}
