package request

import "github.com/cockroachdb/errors"

// Parse failures. The dispatcher answers any of these with a 400 and closes
// the connection.
var (
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrIncompleteRequest    = errors.New("incomplete request")
	ErrBareLineFeed         = errors.New("line not terminated by CRLF")
	ErrBadContentLength     = errors.New("bad content-length header")
)
