package batch

import "qactl/internal/client"

// ProjectSummary is the redacted project view that accompanies a batch.
// Credential exposure is minimized to what the batch's tests require; see
// Scope for the exact policy.
type ProjectSummary struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	BaseURL           string              `json:"base_url"`
	AuthMode          client.AuthMode     `json:"auth_mode"`
	LoginURL          string              `json:"login_url,omitempty"`
	RegistrationURL   string              `json:"registration_url,omitempty"`
	LoginInstructions string              `json:"login_instructions,omitempty"`
	Credentials       []client.Credential `json:"credentials,omitempty"`
}

// TestSummary is one ready-to-execute test inside a batch: the test's
// execution record paired with its freshly created run.
type TestSummary struct {
	TestID         string   `json:"test_id"`
	Name           string   `json:"name"`
	RunID          string   `json:"run_id"`
	CredentialName string   `json:"credential_name,omitempty"`
	Pages          []string `json:"pages,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	HasScript      bool     `json:"has_script"`
}

// Result is a single prepared batch. It is constructed fresh per Prepare
// call and never persisted; the service owns the underlying runs.
type Result struct {
	Project ProjectSummary `json:"project"`
	Tests   []TestSummary  `json:"tests"`
}

// Empty reports whether the batch selected no tests. An empty batch is a
// valid "nothing to do" outcome, not a failure.
func (r *Result) Empty() bool { return len(r.Tests) == 0 }
