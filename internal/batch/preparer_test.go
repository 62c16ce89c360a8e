package batch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qactl/internal/client"
)

// fakeService is a hand-rolled Service implementation safe for the
// preparer's concurrent fan-out.
type fakeService struct {
	mu      sync.Mutex
	project *client.Project
	tests   []client.Test

	runCounter   atomic.Int64
	startDelays  map[string]time.Duration
	failStartFor string
	failGetFor   string

	startedRuns []string
}

func newFakeService() *fakeService {
	return &fakeService{
		project: fixtureProject(),
		tests:   fixtureTests(),
	}
}

func (f *fakeService) GetProject(ctx context.Context, id string) (*client.Project, error) {
	if id != f.project.ID {
		return nil, &client.APIError{Method: "GET", Path: "/projects/" + id, StatusCode: http.StatusNotFound, Message: "project not found"}
	}
	return f.project, nil
}

func (f *fakeService) ListTests(ctx context.Context, projectID string, compact bool) ([]client.Test, error) {
	return f.tests, nil
}

func (f *fakeService) GetTest(ctx context.Context, id string) (*client.Test, error) {
	if id == f.failGetFor {
		return nil, errors.New("boom")
	}
	for _, t := range f.tests {
		if t.ID == id {
			detail := t
			detail.Instructions = "full instructions for " + id
			return &detail, nil
		}
	}
	return nil, &client.APIError{Method: "GET", Path: "/tests/" + id, StatusCode: http.StatusNotFound}
}

func (f *fakeService) StartRun(ctx context.Context, testID string) (*client.Run, error) {
	if d, ok := f.startDelays[testID]; ok {
		time.Sleep(d)
	}
	if testID == f.failStartFor {
		return nil, errors.New("run start rejected")
	}
	n := f.runCounter.Add(1)
	f.mu.Lock()
	f.startedRuns = append(f.startedRuns, testID)
	f.mu.Unlock()
	return &client.Run{
		ID:     fmt.Sprintf("run-%d", n),
		TestID: testID,
		Status: client.RunStatusRunning,
	}, nil
}

func TestPrepareAssemblesBatchInFilteredOrder(t *testing.T) {
	svc := newFakeService()
	// Make the first test's run-start finish last; the batch order must
	// still follow the filtered order, not completion order.
	svc.startDelays = map[string]time.Duration{"t-login": 50 * time.Millisecond}

	result, err := NewPreparer(svc).Prepare(context.Background(), "proj-1", Options{})
	require.NoError(t, err)

	require.Len(t, result.Tests, 3)
	assert.Equal(t, "t-login", result.Tests[0].TestID)
	assert.Equal(t, "t-checkout", result.Tests[1].TestID)
	assert.Equal(t, "t-search", result.Tests[2].TestID)
	for _, entry := range result.Tests {
		assert.NotEmpty(t, entry.RunID)
	}
}

func TestPrepareScopesCredentialsToFilteredSet(t *testing.T) {
	svc := newFakeService()
	svc.tests[0].CredentialName = "viewer"

	result, err := NewPreparer(svc).Prepare(context.Background(), "proj-1", Options{
		TestIDs: []string{"t-login"},
	})
	require.NoError(t, err)

	require.Len(t, result.Project.Credentials, 1)
	assert.Equal(t, "viewer", result.Project.Credentials[0].Name)
	require.Len(t, result.Tests, 1)
	assert.Equal(t, "viewer", result.Tests[0].CredentialName)
}

func TestPrepareEmptySelectionIsSuccess(t *testing.T) {
	svc := newFakeService()

	result, err := NewPreparer(svc).Prepare(context.Background(), "proj-1", Options{
		Filter: "tag:nonexistent",
	})
	require.NoError(t, err)

	assert.True(t, result.Empty())
	assert.NotNil(t, result.Tests)
	assert.Equal(t, "proj-1", result.Project.ID)
	// No runs were started for an empty batch.
	assert.Empty(t, svc.startedRuns)
}

func TestPrepareUnknownProjectIsNotFound(t *testing.T) {
	svc := newFakeService()

	_, err := NewPreparer(svc).Prepare(context.Background(), "proj-missing", Options{})
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}

func TestPrepareRunStartFailureAbortsWholeBatch(t *testing.T) {
	svc := newFakeService()
	svc.failStartFor = "t-checkout"

	result, err := NewPreparer(svc).Prepare(context.Background(), "proj-1", Options{})

	// All-or-nothing: a batch entry without a run id is unusable.
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "t-checkout")
}

func TestPrepareDetailFetchFailureAbortsWholeBatch(t *testing.T) {
	svc := newFakeService()
	svc.failGetFor = "t-search"

	result, err := NewPreparer(svc).Prepare(context.Background(), "proj-1", Options{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "t-search")
}

func TestPrepareUsesDetailForScriptFlagAndPages(t *testing.T) {
	svc := newFakeService()
	svc.tests[1].Script = "cached script body"

	result, err := NewPreparer(svc).Prepare(context.Background(), "proj-1", Options{
		TestIDs: []string{"t-checkout"},
	})
	require.NoError(t, err)

	require.Len(t, result.Tests, 1)
	entry := result.Tests[0]
	assert.True(t, entry.HasScript)
	assert.Equal(t, []string{"/checkout/confirm"}, entry.Pages)
	assert.Equal(t, []string{"checkout"}, entry.Tags)
}
