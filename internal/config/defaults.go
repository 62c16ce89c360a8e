package config

import "time"

const (
	defaultTimeout   = 30 * time.Second
	defaultServeHost = "localhost"
	defaultServePort = 8099
)

// GetDefaultConfig returns the built-in configuration that user and project
// files are layered over.
func GetDefaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout: defaultTimeout,
		},
		Serve: ServeConfig{
			Host: defaultServeHost,
			Port: defaultServePort,
		},
	}
}
