package response

import (
	"fmt"
	"io"

	"github.com/sleipnirhttp/sleipnir/headers"
)

type writerState int

const (
	stateStatusLine writerState = iota
	stateHeaders
	stateBody
	stateDone
)

// wireWriter serializes one response to the connection in the only legal
// order: status line, then headers, then body.
type wireWriter struct {
	conn  io.Writer
	state writerState
}

func newWireWriter(conn io.Writer) *wireWriter {
	return &wireWriter{conn: conn, state: stateStatusLine}
}

func (ww *wireWriter) writeStatusLine(code StatusCode) error {
	if ww.state != stateStatusLine {
		return ErrInvalidWriterState
	}
	if _, err := fmt.Fprintf(ww.conn, "HTTP/1.1 %d %s\r\n", code, GetStatusReason(code)); err != nil {
		return err
	}
	ww.state = stateHeaders
	return nil
}

func (ww *wireWriter) writeHeaders(h *headers.Headers) error {
	if ww.state != stateHeaders {
		return ErrInvalidWriterState
	}
	for k, v := range h.All() {
		if _, err := fmt.Fprintf(ww.conn, "%s: %s\r\n", k, v); err != nil {
			return err
		}
	}
	if _, err := ww.conn.Write([]byte("\r\n")); err != nil {
		return err
	}
	ww.state = stateBody
	return nil
}

func (ww *wireWriter) writeBody(b []byte) error {
	if ww.state != stateBody {
		return ErrInvalidWriterState
	}
	if _, err := ww.conn.Write(b); err != nil {
		return err
	}
	ww.state = stateDone
	return nil
}
