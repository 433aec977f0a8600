package middleware

import (
	"encoding/base64"
	"strings"

	"github.com/sleipnirhttp/sleipnir/request"
	"github.com/sleipnirhttp/sleipnir/response"
)

type Account struct {
	Username string
	Password string
}

// BasicAuth guards the rest of the chain behind HTTP basic authentication.
// On failure it writes the 401 (or 400) response itself and stops the chain.
func BasicAuth(accounts []Account) Handler {
	accountMap := make(map[string]string)
	for _, acc := range accounts {
		accountMap[acc.Username] = acc.Password
	}

	unauthorized := func(res *response.Response, s *Session) {
		res.Status(response.StatusUnauthorized).
			Header("www-authenticate", `Basic realm="Restricted"`)
		s.Abort()
	}

	return func(r *request.Request, res *response.Response, s *Session) {
		auth := r.Headers.Get("authorization")
		if !strings.HasPrefix(auth, "Basic ") {
			unauthorized(res, s)
			return
		}

		payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
		if err != nil {
			res.Status(response.StatusBadRequest).Text("Invalid authorization header")
			s.Abort()
			return
		}

		parts := strings.SplitN(string(payload), ":", 2)
		if len(parts) != 2 {
			res.Status(response.StatusBadRequest).Text("Invalid authorization header")
			s.Abort()
			return
		}

		user, pass := parts[0], parts[1]
		actualPass, ok := accountMap[user]
		if !ok || actualPass != pass {
			unauthorized(res, s)
			return
		}

		s.Proceed()
	}
}
