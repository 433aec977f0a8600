package response

import (
	"bytes"
	"io"
	"strconv"

	"github.com/sleipnirhttp/sleipnir/headers"
)

// Response is the write half of one connection. Handlers in a middleware
// chain mutate it in turn; the body is buffered so status and headers stay
// mutable until the dispatcher flushes. Never shared across connections.
type Response struct {
	conn    io.Writer
	status  StatusCode
	headers *headers.Headers
	body    bytes.Buffer
	flushed bool
}

// New creates a Response bound to conn.
func New(conn io.Writer) *Response {
	hs := headers.NewHeaders()
	hs.Add("connection", "close")
	return &Response{
		conn:    conn,
		status:  StatusOK,
		headers: hs,
	}
}

// Status sets the response status code.
func (r *Response) Status(code StatusCode) *Response {
	r.status = code
	return r
}

// StatusCode returns the currently set status code.
func (r *Response) StatusCode() StatusCode {
	return r.status
}

// Header sets a response header, replacing any previous value for the key.
func (r *Response) Header(key, value string) *Response {
	r.headers.Set(key, value)
	return r
}

// Headers exposes the full header collection.
func (r *Response) Headers() *headers.Headers {
	return r.headers
}

// Write appends to the buffered response body.
func (r *Response) Write(p []byte) (int, error) {
	return r.body.Write(p)
}

// Text sets a plain-text body, replacing anything buffered so far.
func (r *Response) Text(body string) *Response {
	r.body.Reset()
	r.body.WriteString(body)
	r.headers.Set("content-type", "text/plain")
	return r
}

// BodyLen returns the number of buffered body bytes.
func (r *Response) BodyLen() int {
	return r.body.Len()
}

// Flushed reports whether the response has been written to the connection.
func (r *Response) Flushed() bool {
	return r.flushed
}

// Flush serializes status line, headers and whatever body has been buffered
// to the connection. It is a no-op after the first call, so an aborted chain
// can flush its partial response and the normal completion path stays safe
// to run.
func (r *Response) Flush() error {
	if r.flushed {
		return nil
	}
	r.flushed = true

	r.headers.Set("content-length", strconv.Itoa(r.body.Len()))

	ww := newWireWriter(r.conn)
	if err := ww.writeStatusLine(r.status); err != nil {
		return err
	}
	if err := ww.writeHeaders(r.headers); err != nil {
		return err
	}
	return ww.writeBody(r.body.Bytes())
}
