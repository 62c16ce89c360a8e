package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var (
	osUserHomeDir = os.UserHomeDir
	osGetwd       = os.Getwd
	osGetenv      = os.Getenv
)

const (
	userConfigDir    = ".config/qactl"
	projectConfigDir = ".qactl"
	configFileName   = "config.yaml"

	// TokenEnvVar overrides any file-provided API token.
	TokenEnvVar = "QACTL_API_TOKEN"
)

// Load builds the effective configuration by layering defaults, the user
// file (~/.config/qactl/config.yaml) and the project file
// (./.qactl/config.yaml), then applying environment overrides. Missing
// files are fine; a file that exists but fails to parse is an error.
func Load() (Config, error) {
	config := GetDefaultConfig()

	userPath, err := getUserConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine user config path: %v\n", err)
	} else if fileExists(userPath) {
		overlay, err := loadConfigFromFile(userPath)
		if err != nil {
			return Config{}, fmt.Errorf("loading user config from %s: %w", userPath, err)
		}
		config = merge(config, overlay)
	}

	projectPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine project config path: %v\n", err)
	} else if fileExists(projectPath) {
		overlay, err := loadConfigFromFile(projectPath)
		if err != nil {
			return Config{}, fmt.Errorf("loading project config from %s: %w", projectPath, err)
		}
		config = merge(config, overlay)
	}

	if token := osGetenv(TokenEnvVar); token != "" {
		config.API.Token = token
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func loadConfigFromFile(path string) (Config, error) {
	var config Config
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// merge overlays non-zero fields of overlay onto base.
func merge(base, overlay Config) Config {
	merged := base

	if overlay.API.BaseURL != "" {
		merged.API.BaseURL = overlay.API.BaseURL
	}
	if overlay.API.Token != "" {
		merged.API.Token = overlay.API.Token
	}
	if overlay.API.Timeout != 0 {
		merged.API.Timeout = overlay.API.Timeout
	}
	if overlay.Defaults.Project != "" {
		merged.Defaults.Project = overlay.Defaults.Project
	}
	if overlay.Serve.Host != "" {
		merged.Serve.Host = overlay.Serve.Host
	}
	if overlay.Serve.Port != 0 {
		merged.Serve.Port = overlay.Serve.Port
	}

	return merged
}
