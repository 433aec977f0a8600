package response

import "github.com/cockroachdb/errors"

// ErrInvalidWriterState is returned when a wire write is attempted out of
// order.
var ErrInvalidWriterState = errors.New("invalid writer state")
