package middleware

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/sleipnirhttp/sleipnir/request"
	"github.com/sleipnirhttp/sleipnir/response"
)

// Handler is one step of a middleware chain. It may write to the response
// and should report a continue/stop decision through the session before
// returning. A handler that never signals is treated as having continued.
type Handler func(req *request.Request, res *response.Response, s *Session)

// ErrHandlerFault marks a panic recovered from a middleware handler.
var ErrHandlerFault = errors.New("middleware handler fault")

// Session is the one-shot continue/stop signal for a single chain step.
// Only the first call to Proceed or Abort counts.
type Session struct {
	once sync.Once
	ch   chan bool
}

// NewSession creates a session for one handler invocation.
func NewSession() *Session {
	return &Session{ch: make(chan bool, 1)}
}

// Proceed signals that the chain should continue with the next handler.
func (s *Session) Proceed() {
	s.once.Do(func() { s.ch <- true })
}

// Abort signals that the chain should stop after this handler.
func (s *Session) Abort() {
	s.once.Do(func() { s.ch <- false })
}

// decision consumes the signal. Handlers that returned without signalling
// default to continue.
func (s *Session) decision() bool {
	select {
	case v := <-s.ch:
		return v
	default:
		return true
	}
}

// Chain is the ordered list of handlers bound to one route, run in
// registration order per request.
type Chain []Handler

// Then appends a handler to the chain.
func (c Chain) Then(h Handler) Chain {
	return append(c, h)
}

// Run drives one request through the chain. Each handler gets a fresh
// session; the decision is read after the handler returns, and a stop ends
// the chain without invoking later handlers. A panicking handler aborts the
// chain and is reported as an ErrHandlerFault; the panic never escapes to
// the calling worker.
func (c Chain) Run(req *request.Request, res *response.Response) error {
	for i, handler := range c {
		s := NewSession()
		if err := invoke(handler, req, res, s); err != nil {
			return errors.Wrapf(err, "chain aborted at step %d", i)
		}
		if !s.decision() {
			break
		}
	}
	return nil
}

func invoke(h Handler, req *request.Request, res *response.Response, s *Session) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Mark(errors.Newf("handler panicked: %v", r), ErrHandlerFault)
		}
	}()
	h(req, res, s)
	return nil
}
