package middleware

import (
	"github.com/google/uuid"

	"github.com/sleipnirhttp/sleipnir/request"
	"github.com/sleipnirhttp/sleipnir/response"
)

// RequestID tags the response with a fresh UUID so a client-reported failure
// can be matched against server logs. An inbound x-request-id is preserved.
func RequestID() Handler {
	return func(r *request.Request, res *response.Response, s *Session) {
		id := r.Headers.Get("x-request-id")
		if id == "" {
			id = uuid.NewString()
		}
		res.Header("x-request-id", id)
		s.Proceed()
	}
}
