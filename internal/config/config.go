// SPDX-License-Identifier: MPL-2.0

// Package config loads the distrobox defaults file and the DBX_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "distrobox"
	// envPrefix is the prefix for environment variable overrides.
	envPrefix = "DBX"

	// DefaultContainerName is used when neither flag, environment, nor
	// config file name a container.
	DefaultContainerName = "my-distrobox"
	// DefaultImage is the creation source when none is given.
	DefaultImage = "registry.fedoraproject.org/fedora-toolbox:latest"
)

// Config holds the resolved defaults. Flags take precedence over
// environment variables, which take precedence over the config file.
type Config struct {
	// Engine is the preferred engine kind ("podman", "docker", or empty
	// for automatic probing).
	Engine string `mapstructure:"engine"`
	// ContainerName is the default container name.
	ContainerName string `mapstructure:"container_name"`
	// Image is the default creation source image.
	Image string `mapstructure:"image"`
	// NonInteractive suppresses confirmation prompts.
	NonInteractive bool `mapstructure:"non_interactive"`
	// PollInterval is the readiness poll interval.
	PollInterval time.Duration `mapstructure:"poll_interval"`
	// PollTimeout bounds the readiness poll; zero waits indefinitely.
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
}

// configDirOverride lets tests redirect the config directory.
var configDirOverride string

// SetConfigDirOverride redirects config loading to the given directory.
// Intended for tests; pass an empty string to restore the default.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Dir returns the distrobox configuration directory:
// $XDG_CONFIG_HOME/distrobox, defaulting to ~/.config/distrobox.
func Dir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads distrobox.toml from the user config directory (then
// /etc/distrobox) and applies DBX_* environment overrides. A missing
// config file is not an error; the defaults stand.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(AppName)
	v.SetConfigType("toml")

	if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath("/etc/" + AppName)

	v.SetDefault("engine", "")
	v.SetDefault("container_name", DefaultContainerName)
	v.SetDefault("image", DefaultImage)
	v.SetDefault("non_interactive", false)
	v.SetDefault("poll_interval", 500*time.Millisecond)
	v.SetDefault("poll_timeout", time.Duration(0))

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	// Caller-facing overrides named by the CLI contract.
	_ = v.BindEnv("container_name", "DBX_CONTAINER_NAME")
	_ = v.BindEnv("image", "DBX_CONTAINER_IMAGE")
	_ = v.BindEnv("non_interactive", "DBX_NON_INTERACTIVE")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
