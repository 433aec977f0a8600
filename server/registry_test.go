package server

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleipnirhttp/sleipnir/middleware"
	"github.com/sleipnirhttp/sleipnir/request"
	"github.com/sleipnirhttp/sleipnir/response"
	"github.com/sleipnirhttp/sleipnir/router"
)

func markingHandler(name string, trace *[]string) middleware.Handler {
	return func(r *request.Request, res *response.Response, s *middleware.Session) {
		*trace = append(*trace, name)
		s.Proceed()
	}
}

func noop(r *request.Request, res *response.Response, s *middleware.Session) {
	s.Proceed()
}

func TestResolveUnregisteredPrefix(t *testing.T) {
	s := New(Opts{})
	api := router.New()
	api.Get("/users/:id", noop)
	s.Register("/api", api)

	_, _, err := s.Resolve("GET", "/unknown/path")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveEmptyRegistry(t *testing.T) {
	s := New(Opts{})
	_, _, err := s.Resolve("GET", "/anything")
	assert.ErrorIs(t, err, ErrRegistryUnavailable)
}

func TestResolveParamsAndChain(t *testing.T) {
	var trace []string
	api := router.New()
	api.Get("/users/:id", markingHandler("auth", &trace), markingHandler("loadUser", &trace))

	s := New(Opts{})
	s.Register("/api", api)

	chain, params, err := s.Resolve("GET", "/api/users/42")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "42"}, params)
	require.Len(t, chain, 2)

	var buf nopWriter
	req := &request.Request{Method: "GET", Route: "/api/users/42", Params: params}
	require.NoError(t, chain.Run(req, response.New(&buf)))
	assert.Equal(t, []string{"auth", "loadUser"}, trace)
}

func TestResolveRootNormalization(t *testing.T) {
	root := router.New()
	root.Get("/health", noop)

	s := New(Opts{})
	s.Register("/", root)

	_, _, err := s.Resolve("GET", "/health")
	assert.NoError(t, err)
}

func TestResolveLongestPrefixWins(t *testing.T) {
	var trace []string

	root := router.New()
	root.Get("/api/users/:id", markingHandler("root", &trace))

	api := router.New()
	api.Get("/users/:id", markingHandler("api", &trace))

	s := New(Opts{})
	// registration order must not matter, so register the shorter one last
	s.Register("/api", api)
	s.Register("/", root)

	chain, params, err := s.Resolve("GET", "/api/users/42")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "42"}, params)

	var buf nopWriter
	require.NoError(t, chain.Run(&request.Request{Method: "GET", Route: "/api/users/42"}, response.New(&buf)))
	assert.Equal(t, []string{"api"}, trace, "the longer /api mount must win over the root mount")
}

func TestRegisterReplacesPrefix(t *testing.T) {
	var trace []string

	first := router.New()
	first.Get("/ping", markingHandler("first", &trace))
	second := router.New()
	second.Get("/ping", markingHandler("second", &trace))

	s := New(Opts{})
	s.Register("/api", first)
	s.Register("/api", second)

	chain, _, err := s.Resolve("GET", "/api/ping")
	require.NoError(t, err)

	var buf nopWriter
	require.NoError(t, chain.Run(&request.Request{Method: "GET", Route: "/api/ping"}, response.New(&buf)))
	assert.Equal(t, []string{"second"}, trace)
}

func TestResolveMethodMismatchIsNotFound(t *testing.T) {
	api := router.New()
	api.Get("/users/:id", noop)

	s := New(Opts{})
	s.Register("/api", api)

	_, _, err := s.Resolve("DELETE", "/api/users/42")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, router.ErrMethodMismatch)
}

func TestPrefixOrdering(t *testing.T) {
	s := New(Opts{})
	for _, prefix := range []string{"", "/api", "/api/v2", "/auth"} {
		r := router.New()
		r.Get("/x", noop)
		if prefix == "" {
			s.Register("/", r)
		} else {
			s.Register(prefix, r)
		}
	}

	got := s.prefixes()
	require.Len(t, got, 4)
	// longest first, ties broken lexicographically, root last
	assert.Equal(t, []string{"/api/v2", "/auth", "/api", ""}, got)
}

func TestRegisterManyPrefixesResolveEach(t *testing.T) {
	s := New(Opts{})
	for i := range 10 {
		r := router.New()
		r.Get("/item/:n", noop)
		s.Register(fmt.Sprintf("/svc%d", i), r)
	}

	for i := range 10 {
		_, params, err := s.Resolve("GET", fmt.Sprintf("/svc%d/item/%d", i, i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprint(i), params["n"])
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
