package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qactl/internal/client"
)

func fixtureProject() *client.Project {
	return &client.Project{
		ID:                "proj-1",
		Name:              "Storefront",
		BaseURL:           "https://shop.example.com",
		AuthMode:          client.AuthModeExistingUser,
		LoginURL:          "https://shop.example.com/login",
		LoginInstructions: "Use the login form",
		Credentials: []client.Credential{
			{Name: "admin", Email: "admin@example.com", Password: "hunter2"},
			{Name: "viewer", Email: "viewer@example.com", Password: "hunter3"},
		},
	}
}

func TestScopeRestrictsToReferencedCredentials(t *testing.T) {
	selected := []client.Test{
		{ID: "t-1", CredentialName: "viewer"},
		{ID: "t-2"},
	}

	summary := Scope(fixtureProject(), selected)

	assert.Len(t, summary.Credentials, 1)
	assert.Equal(t, "viewer", summary.Credentials[0].Name)
}

func TestScopePreservesProjectCredentialOrder(t *testing.T) {
	selected := []client.Test{
		{ID: "t-1", CredentialName: "viewer"},
		{ID: "t-2", CredentialName: "admin"},
	}

	summary := Scope(fixtureProject(), selected)

	assert.Equal(t, []string{"admin", "viewer"},
		[]string{summary.Credentials[0].Name, summary.Credentials[1].Name})
}

func TestScopeFallsBackToFullListWhenNoTestNamesACredential(t *testing.T) {
	selected := []client.Test{{ID: "t-1"}, {ID: "t-2"}}

	summary := Scope(fixtureProject(), selected)

	assert.Len(t, summary.Credentials, 2)
	assert.Equal(t, "Use the login form", summary.LoginInstructions)
}

func TestScopeExcludesDanglingCredentialNames(t *testing.T) {
	selected := []client.Test{
		{ID: "t-1", CredentialName: "viewer"},
		{ID: "t-2", CredentialName: "ghost"},
	}

	summary := Scope(fixtureProject(), selected)

	// The dangling name drops out silently; scoping must not fail on a
	// referential-integrity bug upstream.
	assert.Len(t, summary.Credentials, 1)
	assert.Equal(t, "viewer", summary.Credentials[0].Name)
}

func TestScopeAuthModeNoneStripsEverything(t *testing.T) {
	project := fixtureProject()
	// Stale auth fields on a none-mode project must not leak.
	project.AuthMode = client.AuthModeNone

	summary := Scope(project, []client.Test{{ID: "t-1", CredentialName: "admin"}})

	assert.Equal(t, "proj-1", summary.ID)
	assert.Equal(t, "Storefront", summary.Name)
	assert.Equal(t, "https://shop.example.com", summary.BaseURL)
	assert.Equal(t, client.AuthModeNone, summary.AuthMode)
	assert.Empty(t, summary.Credentials)
	assert.Empty(t, summary.LoginURL)
	assert.Empty(t, summary.LoginInstructions)
}
