package router

import (
	"github.com/sleipnirhttp/sleipnir/middleware"
)

// Router owns one mount point's route table: method + path pattern mapped to
// an ordered middleware chain. Routes are expected to be registered before
// serving; matching is read-only and safe for concurrent use.
type Router struct {
	trees map[string]*trieNode
}

// New creates an empty Router.
func New() *Router {
	return &Router{
		trees: map[string]*trieNode{
			"GET":     newTrieNode(),
			"POST":    newTrieNode(),
			"PUT":     newTrieNode(),
			"PATCH":   newTrieNode(),
			"DELETE":  newTrieNode(),
			"OPTIONS": newTrieNode(),
			"HEAD":    newTrieNode(),
		},
	}
}

// Handle registers a route for an arbitrary method. The handlers form the
// route's middleware chain, run in the given order.
func (r *Router) Handle(method, path string, handlers ...middleware.Handler) {
	tree, ok := r.trees[method]
	if !ok {
		tree = newTrieNode()
		r.trees[method] = tree
	}
	tree.addRoute(path, middleware.Chain(handlers))
}

// Get registers a new GET route.
func (r *Router) Get(path string, handlers ...middleware.Handler) {
	r.Handle("GET", path, handlers...)
}

// Post registers a new POST route.
func (r *Router) Post(path string, handlers ...middleware.Handler) {
	r.Handle("POST", path, handlers...)
}

// Put registers a new PUT route.
func (r *Router) Put(path string, handlers ...middleware.Handler) {
	r.Handle("PUT", path, handlers...)
}

// Patch registers a new PATCH route.
func (r *Router) Patch(path string, handlers ...middleware.Handler) {
	r.Handle("PATCH", path, handlers...)
}

// Delete registers a new DELETE route.
func (r *Router) Delete(path string, handlers ...middleware.Handler) {
	r.Handle("DELETE", path, handlers...)
}

// Match resolves method + path to the bound middleware chain and the params
// extracted from parameter segments. A path that exists under a different
// method returns ErrMethodMismatch so callers can log the two miss kinds
// apart, though both answer the client with a 404.
func (r *Router) Match(method, path string) (middleware.Chain, map[string]string, error) {
	tree, ok := r.trees[method]
	if ok {
		if chain, params, found := tree.match(path); found {
			return chain, params, nil
		}
	}

	for m, other := range r.trees {
		if m == method {
			continue
		}
		if _, _, found := other.match(path); found {
			return nil, nil, ErrMethodMismatch
		}
	}

	return nil, nil, ErrNoRoute
}
