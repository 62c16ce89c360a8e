package client

import (
	"context"
	"net/url"

	"qactl/pkg/logging"

	gocache "github.com/patrickmn/go-cache"
)

// PageCreate carries the writable fields for registering a page.
type PageCreate struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// PageUpdate carries the writable fields for updating a page.
type PageUpdate struct {
	URL  *string `json:"url,omitempty"`
	Name *string `json:"name,omitempty"`
}

// ListPages returns a project's page catalogue in the service's order.
// Results are briefly cached; mutating page calls invalidate the cache.
func (c *Client) ListPages(ctx context.Context, projectID string) ([]Page, error) {
	key := pagesCacheKey(projectID)
	if cached, found := c.catalogue.Get(key); found {
		logging.Debug("Client", "page catalogue cache hit for project %s", projectID)
		return cached.([]Page), nil
	}

	var pages []Page
	if err := c.do(ctx, "GET", "/projects/"+url.PathEscape(projectID)+"/pages", nil, &pages); err != nil {
		return nil, err
	}
	c.catalogue.Set(key, pages, gocache.DefaultExpiration)
	return pages, nil
}

// CreatePage registers a page on a project.
func (c *Client) CreatePage(ctx context.Context, projectID string, in PageCreate) (*Page, error) {
	var page Page
	if err := c.do(ctx, "POST", "/projects/"+url.PathEscape(projectID)+"/pages", in, &page); err != nil {
		return nil, err
	}
	c.catalogue.Delete(pagesCacheKey(projectID))
	return &page, nil
}

// UpdatePage applies a partial update to a page.
func (c *Client) UpdatePage(ctx context.Context, id string, in PageUpdate) (*Page, error) {
	var page Page
	if err := c.do(ctx, "PUT", "/pages/"+url.PathEscape(id), in, &page); err != nil {
		return nil, err
	}
	c.catalogue.Delete(pagesCacheKey(page.ProjectID))
	return &page, nil
}

// DeletePage removes a page. The page's test associations are dropped by
// the service.
func (c *Client) DeletePage(ctx context.Context, id string) error {
	if err := c.do(ctx, "DELETE", "/pages/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	// Project id is unknown here; flush all cached catalogues.
	c.catalogue.Flush()
	return nil
}
