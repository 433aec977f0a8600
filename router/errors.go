package router

import "github.com/cockroachdb/errors"

var (
	// ErrNoRoute means no pattern in this router matches the path.
	ErrNoRoute = errors.New("no matching route")

	// ErrMethodMismatch means the path is known but not under this method.
	ErrMethodMismatch = errors.New("path registered under a different method")
)
