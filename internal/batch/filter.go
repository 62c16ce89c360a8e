package batch

import (
	"strings"

	"qactl/internal/client"
)

// Filter prefixes recognized in a filter expression.
const (
	tagPrefix  = "tag:"
	pagePrefix = "/"
)

// Filter selects the runnable subset of a project's tests. Only active
// tests are considered. A non-empty explicitIDs set takes precedence over
// the expression so a previously computed subset can be re-run
// deterministically. Otherwise the expression applies exactly one rule:
//
//	tag:<name>   case-insensitive exact tag match
//	/<fragment>  substring match against any associated page URL
//	<fragment>   case-insensitive substring match against the test name
//
// With neither IDs nor an expression, all active tests pass through. The
// result preserves input order; an expression matching nothing yields an
// empty subset, not an error.
func Filter(tests []client.Test, explicitIDs []string, expression string) []client.Test {
	active := make([]client.Test, 0, len(tests))
	for _, t := range tests {
		if t.Status == client.TestStatusActive {
			active = append(active, t)
		}
	}

	if len(explicitIDs) > 0 {
		wanted := make(map[string]struct{}, len(explicitIDs))
		for _, id := range explicitIDs {
			wanted[id] = struct{}{}
		}
		selected := make([]client.Test, 0, len(explicitIDs))
		for _, t := range active {
			if _, ok := wanted[t.ID]; ok {
				selected = append(selected, t)
			}
		}
		return selected
	}

	if expression == "" {
		return active
	}

	match := matcherFor(expression)
	selected := make([]client.Test, 0, len(active))
	for _, t := range active {
		if match(&t) {
			selected = append(selected, t)
		}
	}
	return selected
}

func matcherFor(expression string) func(*client.Test) bool {
	switch {
	case strings.HasPrefix(expression, tagPrefix):
		tag := strings.TrimPrefix(expression, tagPrefix)
		return func(t *client.Test) bool {
			return t.HasTag(tag)
		}
	case strings.HasPrefix(expression, pagePrefix):
		return func(t *client.Test) bool {
			for _, page := range t.Pages {
				if strings.Contains(page.URL, expression) {
					return true
				}
			}
			return false
		}
	default:
		needle := strings.ToLower(expression)
		return func(t *client.Test) bool {
			return strings.Contains(strings.ToLower(t.Name), needle)
		}
	}
}
