package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"qactl/internal/client"
	"qactl/pkg/logging"
)

// Service is the slice of the remote API that batch preparation needs.
// *client.Client satisfies it.
type Service interface {
	GetProject(ctx context.Context, id string) (*client.Project, error)
	ListTests(ctx context.Context, projectID string, compact bool) ([]client.Test, error)
	GetTest(ctx context.Context, id string) (*client.Test, error)
	StartRun(ctx context.Context, testID string) (*client.Run, error)
}

// Options narrows which of a project's tests enter the batch. TestIDs
// takes precedence over Filter; see the Filter function.
type Options struct {
	Filter  string
	TestIDs []string
}

// Preparer assembles ready-to-execute batches. It holds no state between
// calls; each Prepare is independent.
type Preparer struct {
	service Service
}

// NewPreparer creates a Preparer on top of the given service.
func NewPreparer(service Service) *Preparer {
	return &Preparer{service: service}
}

// Prepare loads a project and its tests, narrows the set, scopes the
// project's credentials to it, and starts one fresh run per surviving
// test. Detail fetches and run starts fan out concurrently, bounded by the
// project's concurrency hint, but the assembled list preserves the
// filtered test order.
//
// Any failure during the fan-out aborts the whole call: a batch entry
// without a valid run id cannot be executed, so a partially started batch
// is never returned.
func (p *Preparer) Prepare(ctx context.Context, projectID string, opts Options) (*Result, error) {
	var (
		project *client.Project
		tests   []client.Test
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = p.service.GetProject(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		tests, err = p.service.ListTests(gctx, projectID, true)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	selected := Filter(tests, opts.TestIDs, opts.Filter)
	result := &Result{
		Project: Scope(project, selected),
		Tests:   []TestSummary{},
	}

	if len(selected) == 0 {
		logging.Info("Batch", "no tests selected for project %s, nothing to do", projectID)
		return result, nil
	}

	logging.Info("Batch", "preparing %d test(s) for project %s", len(selected), projectID)

	// Indexed slices keep the filtered order regardless of completion order.
	details := make([]*client.Test, len(selected))
	runs := make([]*client.Run, len(selected))

	fanout, fctx := errgroup.WithContext(ctx)
	fanout.SetLimit(project.EffectiveConcurrency())
	for i, t := range selected {
		fanout.Go(func() error {
			detail, err := p.service.GetTest(fctx, t.ID)
			if err != nil {
				return fmt.Errorf("fetching test %s: %w", t.ID, err)
			}
			details[i] = detail
			return nil
		})
		fanout.Go(func() error {
			run, err := p.service.StartRun(fctx, t.ID)
			if err != nil {
				return fmt.Errorf("starting run for test %s: %w", t.ID, err)
			}
			runs[i] = run
			return nil
		})
	}
	if err := fanout.Wait(); err != nil {
		return nil, fmt.Errorf("preparing batch for project %s: %w", projectID, err)
	}

	for i := range selected {
		result.Tests = append(result.Tests, summarize(details[i], runs[i]))
	}
	return result, nil
}

func summarize(detail *client.Test, run *client.Run) TestSummary {
	summary := TestSummary{
		TestID:         detail.ID,
		Name:           detail.Name,
		RunID:          run.ID,
		CredentialName: detail.CredentialName,
		Tags:           detail.Tags,
		HasScript:      detail.Script != "",
	}
	for _, page := range detail.Pages {
		summary.Pages = append(summary.Pages, page.URL)
	}
	return summary
}
