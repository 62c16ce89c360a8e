// Package run drives the run state machine: created running by start,
// moved exactly once to a terminal state by complete. Nothing here retries
// or deduplicates; a duplicate completion is a bug in the calling executor
// and is surfaced, not hidden.
package run

import (
	"context"
	"errors"
	"fmt"

	"qactl/internal/client"
	"qactl/pkg/logging"
)

// Lifecycle errors.
var (
	// ErrNonTerminalStatus is returned when a completion names a status a
	// run cannot end in.
	ErrNonTerminalStatus = errors.New("completion status must be terminal (passed, failed or error)")

	// ErrAlreadyCompleted is returned when a run that already reached a
	// terminal state receives a conflicting second completion.
	ErrAlreadyCompleted = errors.New("run is already completed")
)

// Store is the slice of the remote API the lifecycle needs. *client.Client
// satisfies it.
type Store interface {
	StartRun(ctx context.Context, testID string) (*client.Run, error)
	GetRun(ctx context.Context, id string) (*client.Run, error)
	CompleteRun(ctx context.Context, runID string, in client.RunCompletion) (*client.Run, error)
	CompleteRunBatch(ctx context.Context, entries []client.BatchCompletionEntry) ([]client.BatchCompletionResult, error)
}

// Completion is one run's reported terminal outcome.
type Completion struct {
	RunID  string
	Status client.RunStatus
	Result string
}

// Lifecycle exposes the run state-machine operations. It is stateless;
// the service owns all run records.
type Lifecycle struct {
	store Store
}

// NewLifecycle creates a Lifecycle on top of the given store.
func NewLifecycle(store Store) *Lifecycle {
	return &Lifecycle{store: store}
}

// Start creates a new run for a test, always in the running state. It does
// not check for an in-flight run on the same test; concurrent runs are
// permitted and the caller avoids them if undesired.
func (l *Lifecycle) Start(ctx context.Context, testID string) (*client.Run, error) {
	run, err := l.store.StartRun(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("starting run for test %s: %w", testID, err)
	}
	logging.Debug("RunLifecycle", "started run %s for test %s", run.ID, testID)
	return run, nil
}

// Complete records a run's terminal outcome. The requested status must be
// terminal; completing an already-terminal run is rejected with
// ErrAlreadyCompleted (the service answers such attempts with 409).
func (l *Lifecycle) Complete(ctx context.Context, c Completion) (*client.Run, error) {
	if !c.Status.Terminal() {
		return nil, fmt.Errorf("completing run %s with status %q: %w", c.RunID, c.Status, ErrNonTerminalStatus)
	}

	run, err := l.store.CompleteRun(ctx, c.RunID, client.RunCompletion{
		Status: c.Status,
		Result: c.Result,
	})
	if err != nil {
		if client.IsConflict(err) {
			return nil, fmt.Errorf("completing run %s: %w", c.RunID, ErrAlreadyCompleted)
		}
		return nil, fmt.Errorf("completing run %s: %w", c.RunID, err)
	}
	logging.Debug("RunLifecycle", "completed run %s with status %s", c.RunID, c.Status)
	return run, nil
}

// CompletionResult pairs one batch entry with its individual outcome.
type CompletionResult struct {
	RunID string
	Err   error
}

// CompleteBatch applies many completions in a single service call. It is
// semantically N individual completions; entries fail independently and
// the caller must inspect every result. Entries with a non-terminal status
// are rejected locally without a round-trip.
func (l *Lifecycle) CompleteBatch(ctx context.Context, completions []Completion) ([]CompletionResult, error) {
	results := make([]CompletionResult, len(completions))
	entries := make([]client.BatchCompletionEntry, 0, len(completions))
	// The service answers with one result per entry, in entry order. Run
	// ids may repeat (duplicate reporting is exactly what we must surface),
	// so results are matched back by position, not by id.
	entryIndex := make([]int, 0, len(completions))

	for i, c := range completions {
		results[i] = CompletionResult{RunID: c.RunID}
		if !c.Status.Terminal() {
			results[i].Err = fmt.Errorf("run %s: status %q: %w", c.RunID, c.Status, ErrNonTerminalStatus)
			continue
		}
		entryIndex = append(entryIndex, i)
		entries = append(entries, client.BatchCompletionEntry{
			RunID:  c.RunID,
			Status: c.Status,
			Result: c.Result,
		})
	}

	if len(entries) == 0 {
		return results, nil
	}

	entryResults, err := l.store.CompleteRunBatch(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("completing %d run(s): %w", len(entries), err)
	}
	if len(entryResults) != len(entries) {
		return nil, fmt.Errorf("completing %d run(s): service answered %d result(s)", len(entries), len(entryResults))
	}

	for j, er := range entryResults {
		i := entryIndex[j]
		if er.RunID != entries[j].RunID {
			logging.Warn("RunLifecycle", "batch completion result %d names run %s, expected %s", j, er.RunID, entries[j].RunID)
		}
		if !er.OK() {
			results[i].Err = fmt.Errorf("run %s: %s", results[i].RunID, er.Error)
		}
	}
	return results, nil
}
