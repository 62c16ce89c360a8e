package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"qactl/internal/agent"
)

var (
	serveSSE  bool
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the orchestration core as MCP tools for an AI agent",
	Long: `Run an MCP server exposing batch preparation, impact analysis and run
completion as tools for an executing AI agent.

By default the server speaks MCP over stdio, which is what AI assistants
configure qactl with. With --sse it serves Server-Sent Events on
--host:--port instead and blocks until interrupted.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveSSE, "sse", false, "Serve SSE instead of stdio")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind for SSE (default: from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port for SSE (default: from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	c, cfg, err := newAPIClient()
	if err != nil {
		return err
	}

	server := agent.NewServer(c, rootCmd.Version)

	if !serveSSE {
		return server.ServeStdio()
	}

	host := cfg.Serve.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Serve.Port
	if servePort != 0 {
		port = servePort
	}

	if err := server.StartSSE(host, port); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "MCP server listening on http://%s:%d/sse (ctrl+c to stop)\n", host, port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	return server.StopSSE(cmdContext(cmd))
}
