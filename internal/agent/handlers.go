package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"qactl/internal/batch"
	"qactl/internal/client"
	"qactl/internal/run"
	"qactl/internal/sweep"
)

// toolResultJSON marshals v as indented JSON for the agent to read.
func toolResultJSON(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (s *Server) handleProjectList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list projects: %v", err)), nil
	}

	// Credentials stay server-side; the agent gets them only through a
	// scoped batch.
	type projectInfo struct {
		ID       string          `json:"id"`
		Name     string          `json:"name"`
		BaseURL  string          `json:"base_url"`
		AuthMode client.AuthMode `json:"auth_mode"`
	}
	infos := make([]projectInfo, len(projects))
	for i, p := range projects {
		infos[i] = projectInfo{ID: p.ID, Name: p.Name, BaseURL: p.BaseURL, AuthMode: p.AuthMode}
	}
	return toolResultJSON(infos)
}

func (s *Server) handleTestList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	projectID := stringArg(args, "project_id")
	if projectID == "" {
		return mcp.NewToolResultError("project_id is required"), nil
	}

	tests, err := s.client.ListTests(ctx, projectID, true)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list tests: %v", err)), nil
	}
	return toolResultJSON(tests)
}

func (s *Server) handleBatchPrepare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	projectID := stringArg(args, "project_id")
	if projectID == "" {
		return mcp.NewToolResultError("project_id is required"), nil
	}

	opts := batch.Options{
		Filter:  stringArg(args, "filter"),
		TestIDs: stringSliceArg(args, "test_ids"),
	}

	result, err := s.preparer.Prepare(ctx, projectID, opts)
	if err != nil {
		if client.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("Project %s not found", projectID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to prepare batch: %v", err)), nil
	}
	return toolResultJSON(result)
}

func (s *Server) handleSweep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	projectID := stringArg(args, "project_id")
	if projectID == "" {
		return mcp.NewToolResultError("project_id is required"), nil
	}

	req := sweep.Request{
		Pages:      stringSliceArg(args, "pages"),
		URLPattern: stringArg(args, "url_pattern"),
	}
	if len(req.Pages) == 0 && req.URLPattern == "" {
		return mcp.NewToolResultError("provide pages and/or url_pattern"), nil
	}

	affected, err := s.sweeper.Sweep(ctx, projectID, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Sweep failed: %v", err)), nil
	}
	return toolResultJSON(affected)
}

func (s *Server) handleRunGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	runID := stringArg(args, "run_id")
	if runID == "" {
		return mcp.NewToolResultError("run_id is required"), nil
	}

	record, err := s.client.GetRun(ctx, runID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get run: %v", err)), nil
	}
	return toolResultJSON(record)
}

func (s *Server) handleRunComplete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	runID := stringArg(args, "run_id")
	if runID == "" {
		return mcp.NewToolResultError("run_id is required"), nil
	}

	completion := run.Completion{
		RunID:  runID,
		Status: client.RunStatus(stringArg(args, "status")),
		Result: stringArg(args, "result"),
	}

	record, err := s.lifecycle.Complete(ctx, completion)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to complete run: %v", err)), nil
	}
	return toolResultJSON(record)
}

func (s *Server) handleRunCompleteBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	raw, ok := args["completions"].([]interface{})
	if !ok || len(raw) == 0 {
		return mcp.NewToolResultError("completions is required and must be a non-empty array"), nil
	}

	completions := make([]run.Completion, 0, len(raw))
	for i, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("completions[%d] must be an object", i)), nil
		}
		completions = append(completions, run.Completion{
			RunID:  stringArg(entry, "run_id"),
			Status: client.RunStatus(stringArg(entry, "status")),
			Result: stringArg(entry, "result"),
		})
	}

	results, err := s.lifecycle.CompleteBatch(ctx, completions)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to complete batch: %v", err)), nil
	}

	type entryResult struct {
		RunID string `json:"run_id"`
		OK    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}
	out := make([]entryResult, len(results))
	for i, r := range results {
		out[i] = entryResult{RunID: r.RunID, OK: r.Err == nil}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}
	return toolResultJSON(out)
}
