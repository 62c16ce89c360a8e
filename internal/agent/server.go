// Package agent exposes the orchestration core as MCP tools so an AI
// executor can prepare batches, run impact analyses and report run
// outcomes over the Model Context Protocol. The agent drives the browser;
// this server only hands it data and records what it reports back.
package agent

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"qactl/internal/batch"
	"qactl/internal/client"
	"qactl/internal/run"
	"qactl/internal/sweep"
	"qactl/pkg/logging"
)

const (
	serverName = "qactl"

	shutdownTimeout = 5 * time.Second
)

// Server is the MCP server wrapping the orchestration core.
type Server struct {
	client    *client.Client
	preparer  *batch.Preparer
	sweeper   *sweep.Sweeper
	lifecycle *run.Lifecycle

	mcpServer *server.MCPServer
	sseServer *server.SSEServer
}

// NewServer creates an MCP server on top of the given service client.
func NewServer(c *client.Client, version string) *Server {
	s := &Server{
		client:    c,
		preparer:  batch.NewPreparer(c),
		sweeper:   sweep.NewSweeper(c),
		lifecycle: run.NewLifecycle(c),
	}

	mcpServer := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
	)
	mcpServer.AddTools(s.serverTools()...)
	s.mcpServer = mcpServer

	return s
}

// ServeStdio serves MCP over stdin/stdout until the peer disconnects.
// This is the transport AI assistants configure qactl with.
func (s *Server) ServeStdio() error {
	logging.Info("Agent", "serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}

// StartSSE serves MCP over SSE on host:port. It returns once the listener
// is started; use StopSSE to shut it down.
func (s *Server) StartSSE(host string, port int) error {
	if s.sseServer != nil {
		return fmt.Errorf("SSE server already started")
	}

	baseURL := fmt.Sprintf("http://%s:%d", host, port)
	s.sseServer = server.NewSSEServer(
		s.mcpServer,
		server.WithBaseURL(baseURL),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
	)

	addr := fmt.Sprintf("%s:%d", host, port)
	logging.Info("Agent", "serving MCP over SSE on %s", addr)

	sseServer := s.sseServer
	go func() {
		if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
			logging.Error("Agent", err, "SSE server error")
		}
	}()
	return nil
}

// StopSSE shuts the SSE listener down.
func (s *Server) StopSSE(ctx context.Context) error {
	if s.sseServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	err := s.sseServer.Shutdown(shutdownCtx)
	s.sseServer = nil
	return err
}

// serverTools returns every tool the agent surface exposes, paired with
// its handler.
func (s *Server) serverTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("project_list",
				mcp.WithDescription("List all projects visible to the configured token"),
			),
			Handler: s.handleProjectList,
		},
		{
			Tool: mcp.NewTool("test_list",
				mcp.WithDescription("List a project's tests in compact form (no instruction or script bodies)"),
				mcp.WithString("project_id",
					mcp.Required(),
					mcp.Description("Project id"),
				),
			),
			Handler: s.handleTestList,
		},
		{
			Tool: mcp.NewTool("batch_prepare",
				mcp.WithDescription("Prepare a ready-to-execute batch: filter a project's tests, scope credentials, and start one run per test. Report exactly one terminal completion per returned run id."),
				mcp.WithString("project_id",
					mcp.Required(),
					mcp.Description("Project id"),
				),
				mcp.WithString("filter",
					mcp.Description("Filter expression: 'tag:<name>', '/<url fragment>', or a name substring"),
				),
				mcp.WithArray("test_ids",
					mcp.Description("Explicit test ids to run; takes precedence over filter"),
				),
			),
			Handler: s.handleBatchPrepare,
		},
		{
			Tool: mcp.NewTool("sweep_run",
				mcp.WithDescription("Impact analysis: return the tests associated with changed pages, by exact URL list and/or glob pattern"),
				mcp.WithString("project_id",
					mcp.Required(),
					mcp.Description("Project id"),
				),
				mcp.WithArray("pages",
					mcp.Description("Changed page URLs, matched by exact equality"),
				),
				mcp.WithString("url_pattern",
					mcp.Description("Glob pattern matched against page URLs; '*' matches any characters including '/'"),
				),
			),
			Handler: s.handleSweep,
		},
		{
			Tool: mcp.NewTool("run_get",
				mcp.WithDescription("Fetch a single run record"),
				mcp.WithString("run_id",
					mcp.Required(),
					mcp.Description("Run id"),
				),
			),
			Handler: s.handleRunGet,
		},
		{
			Tool: mcp.NewTool("run_complete",
				mcp.WithDescription("Record a run's terminal outcome. A second, conflicting completion is rejected."),
				mcp.WithString("run_id",
					mcp.Required(),
					mcp.Description("Run id"),
				),
				mcp.WithString("status",
					mcp.Required(),
					mcp.Description("Terminal status"),
					mcp.Enum("passed", "failed", "error"),
				),
				mcp.WithString("result",
					mcp.Description("Free-text result summary"),
				),
			),
			Handler: s.handleRunComplete,
		},
		{
			Tool: mcp.NewTool("run_complete_batch",
				mcp.WithDescription("Record terminal outcomes for many runs in one call. Entries fail independently; inspect each result."),
				mcp.WithArray("completions",
					mcp.Required(),
					mcp.Description("Array of {run_id, status, result} objects"),
				),
			),
			Handler: s.handleRunCompleteBatch,
		},
	}
}
