package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(server.URL, "test-token")
	require.NoError(t, err)
	return c, server
}

func TestNewRequiresTokenAndBaseURL(t *testing.T) {
	_, err := New("https://api.example.com", "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = New("", "token")
	assert.ErrorIs(t, err, ErrMissingBaseURL)

	_, err = New("https://api.example.com", "   ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))

	_, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestNon2xxBecomesAPIErrorWithJSONMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"project not found"}`))
	}))

	_, err := c.GetProject(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "GET", apiErr.Method)
	assert.Equal(t, "/projects/missing", apiErr.Path)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "project not found", apiErr.Message)
	assert.True(t, IsNotFound(err))
}

func TestNon2xxFallsBackToRawBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))

	_, err := c.GetRun(context.Background(), "r-1")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "upstream exploded", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "502")
}

func TestConflictIsDetectable(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"run already completed"}`))
	}))

	_, err := c.CompleteRun(context.Background(), "r-1", RunCompletion{Status: RunStatusPassed})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

func TestPageCatalogueIsCachedAndInvalidated(t *testing.T) {
	listCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/proj-1/pages", func(w http.ResponseWriter, r *http.Request) {
		listCalls++
		w.Write([]byte(`[{"id":"p-1","project_id":"proj-1","url":"/login"}]`))
	})
	mux.HandleFunc("POST /projects/proj-1/pages", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"p-2","project_id":"proj-1","url":"/signup"}`))
	})
	c, _ := newTestClient(t, mux)

	ctx := context.Background()
	_, err := c.ListPages(ctx, "proj-1")
	require.NoError(t, err)
	_, err = c.ListPages(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, 1, listCalls, "second listing should be served from cache")

	_, err = c.CreatePage(ctx, "proj-1", PageCreate{URL: "/signup"})
	require.NoError(t, err)

	_, err = c.ListPages(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls, "mutation should invalidate the cache")
}

func TestCompactTestListingHitsCompactEndpoint(t *testing.T) {
	var gotCompact []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCompact = append(gotCompact, r.URL.RawQuery)
		w.Write([]byte(`[]`))
	}))

	ctx := context.Background()
	_, err := c.ListTests(ctx, "proj-1", true)
	require.NoError(t, err)
	_, err = c.ListTests(ctx, "proj-1", false)
	require.NoError(t, err)

	require.Len(t, gotCompact, 2)
	assert.Equal(t, "compact=1", gotCompact[0])
	assert.Equal(t, "", gotCompact[1])
}

func TestCompleteRunBatchShape(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/runs/batch", r.URL.Path)
		w.Write([]byte(`{"results":[{"run_id":"r-1"},{"run_id":"r-2","error":"run already completed"}]}`))
	}))

	results, err := c.CompleteRunBatch(context.Background(), []BatchCompletionEntry{
		{RunID: "r-1", Status: RunStatusPassed},
		{RunID: "r-2", Status: RunStatusFailed},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
}
