package server

import "github.com/cockroachdb/errors"

var (
	// ErrNotFound means no mount prefix matched the request path, or the
	// delegated router had no route for it. Answered with a 404.
	ErrNotFound = errors.New("route not found")

	// ErrRegistryUnavailable means the routing table was not usable at
	// dispatch time. Transient; answered with a 503, never silently
	// dropped.
	ErrRegistryUnavailable = errors.New("routing table unavailable")
)
