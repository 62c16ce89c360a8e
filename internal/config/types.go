package config

import "time"

// Config is the top-level configuration for qactl.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Serve    ServeConfig    `yaml:"serve"`
}

// APIConfig describes how to reach the remote test service.
type APIConfig struct {
	// BaseURL is the root of the service API, e.g. "https://api.example.com/v1".
	BaseURL string `yaml:"baseUrl"`
	// Token is the bearer token. The QACTL_API_TOKEN environment variable
	// overrides it so secrets can stay out of config files.
	Token string `yaml:"token,omitempty"`
	// Timeout bounds each request; the client performs no retries.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// DefaultsConfig carries per-invocation defaults.
type DefaultsConfig struct {
	// Project is the project id used when a command omits --project.
	Project string `yaml:"project,omitempty"`
}

// ServeConfig configures the MCP agent server.
type ServeConfig struct {
	// Host to bind when serving SSE (default: localhost).
	Host string `yaml:"host,omitempty"`
	// Port for the SSE endpoint (default: 8099).
	Port int `yaml:"port,omitempty"`
}
