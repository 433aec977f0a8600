// Package server glues the pieces together: it owns the mount registry,
// accepts TCP connections, and dispatches each one through parse, route
// resolution and the matched middleware chain on a fixed worker pool.
package server

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/sleipnirhttp/sleipnir/internal/pool"
	"github.com/sleipnirhttp/sleipnir/request"
	"github.com/sleipnirhttp/sleipnir/response"
	"github.com/sleipnirhttp/sleipnir/router"
)

// Opts configures a Server. The zero value is usable: loopback address,
// 4 workers, default queue size, standard logger.
type Opts struct {
	// Address to bind, without the port. Defaults to 127.0.0.1.
	Address string

	// Workers is the fixed worker count of the connection pool.
	Workers int

	// QueueSize bounds the pool's task queue; the accept loop blocks when
	// it fills.
	QueueSize int

	// Logger is the structured sink for request errors and handler faults.
	Logger *logrus.Logger
}

// Server owns the mount-prefix registry and the dispatch loop.
type Server struct {
	opts     Opts
	logger   *logrus.Logger
	table    atomic.Pointer[routingTable]
	mu       sync.Mutex // serializes Register
	listener net.Listener
	closed   atomic.Bool
}

// New creates a Server with no mounts registered.
func New(opts Opts) *Server {
	if opts.Address == "" {
		opts.Address = "127.0.0.1"
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Server{opts: opts, logger: opts.Logger}
}

// Close shuts the listener down. In-flight connections finish on their
// workers.
func (s *Server) Close() error {
	s.closed.Store(true)
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// Addr returns the bound listener address, useful when listening on port 0.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Listen binds the configured address on the given port and serves until
// Close. A bind failure is returned to the caller, that is a startup
// precondition and callers are expected to treat it as fatal. An accept
// failure on a live listener is logged and the loop keeps accepting.
func (s *Server) Listen(port int) error {
	if err := s.Bind(port); err != nil {
		return err
	}
	return s.Serve()
}

// Bind creates the listener without starting the accept loop.
func (s *Server) Bind(port int) error {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.opts.Address, port))
	if err != nil {
		return errors.Wrapf(err, "could not bind %s:%d", s.opts.Address, port)
	}
	s.listener = listener
	return nil
}

// Serve runs the accept loop on a bound listener until Close.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("serve called before bind")
	}

	s.logger.WithFields(logrus.Fields{
		"addr":    s.listener.Addr().String(),
		"workers": s.opts.Workers,
		"mounts":  s.prefixes(),
	}).Info("listening")

	workers := pool.New(s.opts.Workers, s.opts.QueueSize, s.logger)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			// one bad accept must not take the process down
			s.logger.WithError(err).Warn("accept failed")
			continue
		}
		if conn == nil {
			continue
		}

		workers.Execute(func() {
			s.dispatch(conn)
		})
	}
}

// dispatch runs one connection end to end: parse, resolve, chain, flush.
func (s *Server) dispatch(conn net.Conn) {
	defer conn.Close()

	req, err := request.FromReader(conn)
	if err != nil {
		s.logger.WithError(err).WithField("remote", conn.RemoteAddr().String()).Debug("bad request")
		s.respondError(conn, response.StatusBadRequest)
		return
	}

	chain, params, err := s.Resolve(req.Method, req.Route)
	if err != nil {
		s.respondResolveError(conn, req, err)
		return
	}
	if len(params) > 0 {
		req.Params = params
	}

	res := response.New(conn)
	if err := chain.Run(req, res); err != nil {
		// the chain aborted on a handler fault; report it and close with
		// whatever was written so far
		s.logger.WithError(err).WithFields(logrus.Fields{
			"method": req.Method,
			"route":  req.Route,
		}).Error("handler fault")

		if !res.Flushed() && res.BodyLen() == 0 {
			res.Status(response.StatusInternalServerError).
				Text(response.GetStatusReason(response.StatusInternalServerError))
		}
	}

	if err := res.Flush(); err != nil {
		s.logger.WithError(err).Debug("could not write response")
	}
}

func (s *Server) respondResolveError(conn net.Conn, req *request.Request, err error) {
	fields := logrus.Fields{"method": req.Method, "route": req.Route}

	switch {
	case errors.Is(err, ErrRegistryUnavailable):
		s.logger.WithFields(fields).Warn("routing table unavailable")
		s.respondError(conn, response.StatusServiceUnavailable)
	case errors.Is(err, router.ErrMethodMismatch):
		s.logger.WithFields(fields).Debug("method mismatch")
		s.respondError(conn, response.StatusNotFound)
	default:
		s.logger.WithFields(fields).Debug("no route")
		s.respondError(conn, response.StatusNotFound)
	}
}

func (s *Server) respondError(conn net.Conn, code response.StatusCode) {
	res := response.New(conn)
	res.Status(code).Text(response.GetStatusReason(code))
	if err := res.Flush(); err != nil {
		s.logger.WithError(err).Debug("could not write error response")
	}
}
