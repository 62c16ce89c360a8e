package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qactl/internal/client"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := client.New("https://api.example.com", "test-token")
	require.NoError(t, err)
	return NewServer(c, "test")
}

func TestServerToolSurface(t *testing.T) {
	s := newTestServer(t)
	tools := s.serverTools()

	names := make([]string, len(tools))
	for i, st := range tools {
		names[i] = st.Tool.Name
		assert.NotNil(t, st.Handler, "tool %s has no handler", st.Tool.Name)
		assert.NotEmpty(t, st.Tool.Description, "tool %s has no description", st.Tool.Name)
	}

	assert.Equal(t, []string{
		"project_list",
		"test_list",
		"batch_prepare",
		"sweep_run",
		"run_get",
		"run_complete",
		"run_complete_batch",
	}, names)
}

func TestRequiredToolArguments(t *testing.T) {
	s := newTestServer(t)

	required := map[string][]string{
		"project_list":       nil,
		"test_list":          {"project_id"},
		"batch_prepare":      {"project_id"},
		"sweep_run":          {"project_id"},
		"run_get":            {"run_id"},
		"run_complete":       {"run_id", "status"},
		"run_complete_batch": {"completions"},
	}

	for _, st := range s.serverTools() {
		want, ok := required[st.Tool.Name]
		require.True(t, ok, "unexpected tool %s", st.Tool.Name)
		assert.ElementsMatch(t, want, st.Tool.InputSchema.Required, "tool %s", st.Tool.Name)
	}
}

func TestStringArgHelpers(t *testing.T) {
	args := map[string]interface{}{
		"project_id": "proj-1",
		"count":      float64(3),
		"test_ids":   []interface{}{"t-1", "t-2", 7},
	}

	assert.Equal(t, "proj-1", stringArg(args, "project_id"))
	assert.Equal(t, "", stringArg(args, "count"), "non-string values read as empty")
	assert.Equal(t, "", stringArg(args, "missing"))

	assert.Equal(t, []string{"t-1", "t-2"}, stringSliceArg(args, "test_ids"),
		"non-string elements are skipped")
	assert.Nil(t, stringSliceArg(args, "project_id"))
	assert.Nil(t, stringSliceArg(args, "missing"))
}

func TestStopSSEWithoutStartIsANoop(t *testing.T) {
	s := newTestServer(t)
	assert.NoError(t, s.StopSSE(t.Context()))
}
