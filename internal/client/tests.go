package client

import (
	"context"
	"net/url"

	"qactl/pkg/logging"

	gocache "github.com/patrickmn/go-cache"
)

// TestCreate carries the writable fields for creating a test.
type TestCreate struct {
	Name           string     `json:"name"`
	Instructions   string     `json:"instructions"`
	Status         TestStatus `json:"status,omitempty"`
	PageIDs        []string   `json:"page_ids,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	CredentialName string     `json:"credential_name,omitempty"`
}

// TestUpdate carries the writable fields for updating a test.
type TestUpdate struct {
	Name           *string     `json:"name,omitempty"`
	Instructions   *string     `json:"instructions,omitempty"`
	Status         *TestStatus `json:"status,omitempty"`
	PageIDs        *[]string   `json:"page_ids,omitempty"`
	Tags           *[]string   `json:"tags,omitempty"`
	CredentialName *string     `json:"credential_name,omitempty"`
	Script         *string     `json:"script,omitempty"`
}

// ListTests returns a project's tests in the service's order. When compact
// is true the listing omits the large instruction and script bodies; only
// the compact listing is cached.
func (c *Client) ListTests(ctx context.Context, projectID string, compact bool) ([]Test, error) {
	path := "/projects/" + url.PathEscape(projectID) + "/tests"
	if !compact {
		var tests []Test
		if err := c.do(ctx, "GET", path, nil, &tests); err != nil {
			return nil, err
		}
		return tests, nil
	}

	key := testsCacheKey(projectID)
	if cached, found := c.catalogue.Get(key); found {
		logging.Debug("Client", "test catalogue cache hit for project %s", projectID)
		return cached.([]Test), nil
	}

	var tests []Test
	if err := c.do(ctx, "GET", path+"?compact=1", nil, &tests); err != nil {
		return nil, err
	}
	c.catalogue.Set(key, tests, gocache.DefaultExpiration)
	return tests, nil
}

// GetTest fetches a single test with full instruction and script bodies.
func (c *Client) GetTest(ctx context.Context, id string) (*Test, error) {
	var test Test
	if err := c.do(ctx, "GET", "/tests/"+url.PathEscape(id), nil, &test); err != nil {
		return nil, err
	}
	return &test, nil
}

// CreateTest creates a test on a project.
func (c *Client) CreateTest(ctx context.Context, projectID string, in TestCreate) (*Test, error) {
	var test Test
	if err := c.do(ctx, "POST", "/projects/"+url.PathEscape(projectID)+"/tests", in, &test); err != nil {
		return nil, err
	}
	c.catalogue.Delete(testsCacheKey(projectID))
	return &test, nil
}

// UpdateTest applies a partial update to a test.
func (c *Client) UpdateTest(ctx context.Context, id string, in TestUpdate) (*Test, error) {
	var test Test
	if err := c.do(ctx, "PUT", "/tests/"+url.PathEscape(id), in, &test); err != nil {
		return nil, err
	}
	c.catalogue.Delete(testsCacheKey(test.ProjectID))
	return &test, nil
}

// DeleteTest removes a test and its run history.
func (c *Client) DeleteTest(ctx context.Context, id string) error {
	if err := c.do(ctx, "DELETE", "/tests/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	c.catalogue.Flush()
	return nil
}
