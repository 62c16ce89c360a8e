package client

import (
	"context"
	"net/url"
)

// RunCompletion carries the terminal outcome reported for one run.
type RunCompletion struct {
	Status RunStatus `json:"status"`
	Result string    `json:"result,omitempty"`
}

// BatchCompletionEntry is one run's outcome inside a batch completion call.
type BatchCompletionEntry struct {
	RunID  string    `json:"run_id"`
	Status RunStatus `json:"status"`
	Result string    `json:"result,omitempty"`
}

// BatchCompletionResult is the per-entry outcome of a batch completion.
// Entries fail independently; Error is empty on success.
type BatchCompletionResult struct {
	RunID string `json:"run_id"`
	Error string `json:"error,omitempty"`
}

// OK reports whether this entry was applied.
func (r BatchCompletionResult) OK() bool { return r.Error == "" }

// StartRun creates a new run for a test. The run is created in the running
// state; the service permits concurrent runs of the same test.
func (c *Client) StartRun(ctx context.Context, testID string) (*Run, error) {
	var run Run
	if err := c.do(ctx, "POST", "/tests/"+url.PathEscape(testID)+"/runs", nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun fetches a single run by id.
func (c *Client) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	if err := c.do(ctx, "GET", "/runs/"+url.PathEscape(id), nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns a test's run history, most recent first.
func (c *Client) ListRuns(ctx context.Context, testID string) ([]Run, error) {
	var runs []Run
	if err := c.do(ctx, "GET", "/tests/"+url.PathEscape(testID)+"/runs", nil, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// CompleteRun records a run's terminal outcome. The service rejects a
// logically conflicting second completion with 409.
func (c *Client) CompleteRun(ctx context.Context, runID string, in RunCompletion) (*Run, error) {
	var run Run
	if err := c.do(ctx, "PUT", "/runs/"+url.PathEscape(runID), in, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// CompleteRunBatch records terminal outcomes for many runs in one call.
// It exists purely to reduce round-trips; entries fail independently and
// the caller must inspect each result.
func (c *Client) CompleteRunBatch(ctx context.Context, entries []BatchCompletionEntry) ([]BatchCompletionResult, error) {
	body := struct {
		Runs []BatchCompletionEntry `json:"runs"`
	}{Runs: entries}

	var resp struct {
		Results []BatchCompletionResult `json:"results"`
	}
	if err := c.do(ctx, "PUT", "/runs/batch", body, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
