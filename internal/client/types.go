package client

import (
	"strings"
	"time"
)

// AuthMode describes how an executor authenticates against the target
// application before running a project's tests.
type AuthMode string

const (
	// AuthModeNone means the target application needs no authentication.
	AuthModeNone AuthMode = "none"
	// AuthModeExistingUser means tests sign in with stored credentials.
	AuthModeExistingUser AuthMode = "existing_user"
	// AuthModeNewUser means tests register a fresh account per run.
	AuthModeNewUser AuthMode = "new_user"
)

// DefaultConcurrency is the fallback per-project run fan-out hint used when
// the service record carries no explicit value.
const DefaultConcurrency = 5

// Credential is a named login stored on a project and referenced by name
// from individual tests.
type Credential struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Project is the service-owned project record.
type Project struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	BaseURL           string       `json:"base_url"`
	Description       string       `json:"description,omitempty"`
	AuthMode          AuthMode     `json:"auth_mode"`
	LoginURL          string       `json:"login_url,omitempty"`
	RegistrationURL   string       `json:"registration_url,omitempty"`
	LoginInstructions string       `json:"login_instructions,omitempty"`
	Credentials       []Credential `json:"credentials,omitempty"`
	Concurrency       int          `json:"concurrency,omitempty"`
	CreatedAt         time.Time    `json:"created_at,omitempty"`
	UpdatedAt         time.Time    `json:"updated_at,omitempty"`
}

// EffectiveConcurrency returns the project's run fan-out hint, applying the
// service default when the record has none.
func (p *Project) EffectiveConcurrency() int {
	if p.Concurrency > 0 {
		return p.Concurrency
	}
	return DefaultConcurrency
}

// Page is a registered page of a project. URL may be absolute or relative
// to the project's base URL.
type Page struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	URL       string `json:"url"`
	Name      string `json:"name,omitempty"`
}

// TestStatus is the lifecycle status of a test definition.
type TestStatus string

const (
	TestStatusDraft    TestStatus = "draft"
	TestStatusActive   TestStatus = "active"
	TestStatusArchived TestStatus = "archived"
)

// Test is the service-owned test record. Listing endpoints may return a
// compact representation with Instructions and Script omitted.
type Test struct {
	ID                string     `json:"id"`
	ProjectID         string     `json:"project_id"`
	Name              string     `json:"name"`
	Instructions      string     `json:"instructions,omitempty"`
	Status            TestStatus `json:"status"`
	Pages             []Page     `json:"pages,omitempty"`
	Tags              []string   `json:"tags,omitempty"`
	CredentialName    string     `json:"credential_name,omitempty"`
	Script            string     `json:"script,omitempty"`
	ScriptGeneratedAt *time.Time `json:"script_generated_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at,omitempty"`
}

// HasTag reports whether the test carries the given tag, compared
// case-insensitively.
func (t *Test) HasTag(tag string) bool {
	for _, candidate := range t.Tags {
		if strings.EqualFold(candidate, tag) {
			return true
		}
	}
	return false
}

// RunStatus is the closed set of run states. A run is created running and
// transitions exactly once to one of the terminal states.
type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
	RunStatusError   RunStatus = "error"
)

// Terminal reports whether the status permits no further transition.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusPassed, RunStatusFailed, RunStatusError:
		return true
	default:
		return false
	}
}

// Valid reports whether the status is one of the known run states.
func (s RunStatus) Valid() bool {
	return s == RunStatusRunning || s.Terminal()
}

// Run is a single execution record of a test.
type Run struct {
	ID          string    `json:"id"`
	TestID      string    `json:"test_id"`
	Status      RunStatus `json:"status"`
	Result      string    `json:"result,omitempty"`
	StartedAt   time.Time `json:"started_at,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	DurationMS  int64     `json:"duration_ms,omitempty"`
}
