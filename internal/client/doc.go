// Package client implements the authenticated transport and the typed
// entity repositories for the remote test service.
//
// The service owns all durable state. This package only shapes requests,
// decodes responses and translates every non-2xx outcome into a typed
// *APIError carrying the HTTP method, path, status code and a best-effort
// message. It performs no retries and no backoff; failures surface
// synchronously to the caller.
//
// Repositories are grouped by entity:
//
//   - Projects: list, get, create, update, delete
//   - Pages: list (cached), create, update, delete
//   - Tests: list (compact or full), get, create, update, delete
//   - Runs: start, get, list, complete, batch complete
//
// Page and compact-test catalogues are hot paths for impact analysis and
// batch preparation, so they sit behind a short-TTL cache that mutating
// calls invalidate.
package client
