package server

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/sleipnirhttp/sleipnir/middleware"
	"github.com/sleipnirhttp/sleipnir/router"
)

type mount struct {
	prefix string
	router *router.Router
}

// routingTable is an immutable snapshot of the mount registry. Register
// builds a new one and swaps it in atomically, so steady-state resolution
// never takes a lock.
type routingTable struct {
	// sorted longest prefix first so overlapping mounts resolve
	// deterministically
	mounts []mount
}

func buildTable(mounts []mount) *routingTable {
	sorted := append([]mount(nil), mounts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if len(sorted[i].prefix) != len(sorted[j].prefix) {
			return len(sorted[i].prefix) > len(sorted[j].prefix)
		}
		return sorted[i].prefix < sorted[j].prefix
	})
	return &routingTable{mounts: sorted}
}

// Register mounts a router under a path prefix. "/" is normalized to the
// empty prefix. Registering the same prefix again replaces the previous
// router. Safe to call while serving, though it is meant as a startup
// operation.
func (s *Server) Register(mountPath string, r *router.Router) *Server {
	if mountPath == "/" {
		mountPath = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var mounts []mount
	if tbl := s.table.Load(); tbl != nil {
		mounts = append(mounts, tbl.mounts...)
	}

	replaced := false
	for i := range mounts {
		if mounts[i].prefix == mountPath {
			mounts[i].router = r
			replaced = true
			break
		}
	}
	if !replaced {
		mounts = append(mounts, mount{prefix: mountPath, router: r})
	}

	s.table.Store(buildTable(mounts))
	return s
}

// Resolve finds the longest registered prefix the path starts with and
// delegates the remainder to that router. A miss inside the delegated
// router is still NotFound; resolving before anything was registered is the
// transient 503 case.
func (s *Server) Resolve(method, path string) (middleware.Chain, map[string]string, error) {
	tbl := s.table.Load()
	if tbl == nil || len(tbl.mounts) == 0 {
		return nil, nil, ErrRegistryUnavailable
	}

	for _, m := range tbl.mounts {
		if !strings.HasPrefix(path, m.prefix) {
			continue
		}
		chain, params, err := m.router.Match(method, strings.TrimPrefix(path, m.prefix))
		if err != nil {
			return nil, nil, errors.Mark(err, ErrNotFound)
		}
		return chain, params, nil
	}

	return nil, nil, ErrNotFound
}

// prefixes returns the registered mount prefixes in resolution order.
func (s *Server) prefixes() []string {
	tbl := s.table.Load()
	if tbl == nil {
		return nil
	}
	return lo.Map(tbl.mounts, func(m mount, _ int) string { return m.prefix })
}
