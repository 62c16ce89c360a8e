package client

import (
	"context"
	"net/url"
)

// ProjectCreate carries the writable fields for creating a project.
type ProjectCreate struct {
	Name              string       `json:"name"`
	BaseURL           string       `json:"base_url"`
	Description       string       `json:"description,omitempty"`
	AuthMode          AuthMode     `json:"auth_mode"`
	LoginURL          string       `json:"login_url,omitempty"`
	RegistrationURL   string       `json:"registration_url,omitempty"`
	LoginInstructions string       `json:"login_instructions,omitempty"`
	Credentials       []Credential `json:"credentials,omitempty"`
	Concurrency       int          `json:"concurrency,omitempty"`
}

// ProjectUpdate carries the writable fields for updating a project.
// Nil pointers mean "leave unchanged".
type ProjectUpdate struct {
	Name              *string       `json:"name,omitempty"`
	BaseURL           *string       `json:"base_url,omitempty"`
	Description       *string       `json:"description,omitempty"`
	AuthMode          *AuthMode     `json:"auth_mode,omitempty"`
	LoginURL          *string       `json:"login_url,omitempty"`
	RegistrationURL   *string       `json:"registration_url,omitempty"`
	LoginInstructions *string       `json:"login_instructions,omitempty"`
	Credentials       *[]Credential `json:"credentials,omitempty"`
	Concurrency       *int          `json:"concurrency,omitempty"`
}

// ListProjects returns every project visible to the configured token.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, "GET", "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project by id.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var project Project
	if err := c.do(ctx, "GET", "/projects/"+url.PathEscape(id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a project and returns the service-owned record.
func (c *Client) CreateProject(ctx context.Context, in ProjectCreate) (*Project, error) {
	var project Project
	if err := c.do(ctx, "POST", "/projects", in, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies a partial update to a project.
func (c *Client) UpdateProject(ctx context.Context, id string, in ProjectUpdate) (*Project, error) {
	var project Project
	if err := c.do(ctx, "PUT", "/projects/"+url.PathEscape(id), in, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project and everything under it.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := c.do(ctx, "DELETE", "/projects/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	c.invalidateCatalogue(id)
	return nil
}
