// Package sweep implements impact analysis: given a set of changed page
// URLs, it returns the tests associated with any matched page so callers
// can select a minimal re-run set. It touches no runs.
package sweep

import (
	"context"

	"golang.org/x/sync/errgroup"

	"qactl/internal/client"
	"qactl/pkg/logging"
)

// Catalogue is the slice of the remote API sweeping needs. *client.Client
// satisfies it.
type Catalogue interface {
	ListPages(ctx context.Context, projectID string) ([]client.Page, error)
	ListTests(ctx context.Context, projectID string, compact bool) ([]client.Test, error)
}

// Request names the changed pages, by exact URL list or glob pattern.
// When both are given, both are evaluated and the matched-page sets are
// unioned.
type Request struct {
	Pages      []string
	URLPattern string
}

// Sweeper computes impact analyses against a project's page catalogue.
type Sweeper struct {
	catalogue Catalogue
}

// NewSweeper creates a Sweeper on top of the given catalogue.
func NewSweeper(catalogue Catalogue) *Sweeper {
	return &Sweeper{catalogue: catalogue}
}

// Sweep returns the tests associated with any page matched by the request.
// URLs from Pages match by exact equality; URLPattern matches by glob.
// The result follows the service's test catalogue order with a test linked
// to several matched pages collapsed to one entry. No match yields an
// empty list, not an error.
func (s *Sweeper) Sweep(ctx context.Context, projectID string, req Request) ([]client.Test, error) {
	var (
		pages []client.Page
		tests []client.Test
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pages, err = s.catalogue.ListPages(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		tests, err = s.catalogue.ListTests(gctx, projectID, true)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	exact := make(map[string]struct{}, len(req.Pages))
	for _, url := range req.Pages {
		exact[url] = struct{}{}
	}

	matched := make(map[string]struct{})
	for _, page := range pages {
		if _, ok := exact[page.URL]; ok {
			matched[page.ID] = struct{}{}
			continue
		}
		if req.URLPattern != "" && matchGlob(req.URLPattern, page.URL) {
			matched[page.ID] = struct{}{}
		}
	}

	if len(matched) == 0 {
		logging.Debug("Sweep", "no pages matched for project %s", projectID)
		return []client.Test{}, nil
	}

	affected := make([]client.Test, 0)
	seen := make(map[string]struct{})
	for _, t := range tests {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		for _, page := range t.Pages {
			if _, ok := matched[page.ID]; ok {
				affected = append(affected, t)
				seen[t.ID] = struct{}{}
				break
			}
		}
	}

	logging.Info("Sweep", "%d page(s) matched, %d test(s) affected for project %s",
		len(matched), len(affected), projectID)
	return affected, nil
}
