package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"qactl/internal/client"
	"qactl/internal/config"
)

// cmdContext returns the command's context, tolerating a nil command so
// run functions stay callable from tests.
func cmdContext(cmd *cobra.Command) context.Context {
	if cmd == nil {
		return context.Background()
	}
	return cmd.Context()
}

// newAPIClient loads the layered configuration, applies command-line
// overrides and constructs the service client. A missing base URL or token
// is a configuration error reported before any call is made.
func newAPIClient() (*client.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("loading configuration: %w", err)
	}

	if rootAPIURL != "" {
		cfg.API.BaseURL = rootAPIURL
	}
	if rootToken != "" {
		cfg.API.Token = rootToken
	}

	opts := []client.Option{}
	if cfg.API.Timeout > 0 {
		opts = append(opts, client.WithTimeout(cfg.API.Timeout))
	}

	c, err := client.New(cfg.API.BaseURL, cfg.API.Token, opts...)
	if err != nil {
		return nil, config.Config{}, err
	}
	return c, cfg, nil
}

// resolveProject returns the project id from the flag or the configured
// default, erroring when neither is set.
func resolveProject(flagValue string, cfg config.Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.Defaults.Project != "" {
		return cfg.Defaults.Project, nil
	}
	return "", fmt.Errorf("no project specified: pass --project or set defaults.project in the config")
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
