package request

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strconv"

	"github.com/sleipnirhttp/sleipnir/headers"
)

var crlf = []byte("\r\n")

// Request is a single parsed HTTP request. It is immutable for the lifetime
// of one dispatch, except for Params which the dispatcher fills in after a
// route match.
type Request struct {
	Method  string
	Route   string
	Params  map[string]string
	Headers *headers.Headers
	Body    []byte
}

var requestLineRegex = regexp.MustCompile(`^(GET|HEAD|POST|PUT|PATCH|DELETE|OPTIONS|TRACE) ([^\s]+) HTTP/1\.1$`)

func parseRequestLine(line []byte) (method, route string, err error) {
	matches := requestLineRegex.FindSubmatch(line)
	if matches == nil {
		return "", "", ErrMalformedRequestLine
	}
	return string(matches[1]), string(matches[2]), nil
}

// readLine returns the next CRLF-terminated line without its terminator.
// The client keeps the connection open while waiting for the response, so
// nothing here may read past the line it needs.
func readLine(br *bufio.Reader) ([]byte, error) {
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, ErrIncompleteRequest
	}
	if !bytes.HasSuffix(line, crlf) {
		return nil, ErrBareLineFeed
	}
	return line[:len(line)-2], nil
}

// FromReader parses one HTTP/1.1 request from the inbound byte stream. The
// body is exactly the declared content-length bytes after the blank line;
// real clients send no trailing CRLF and no EOF, they wait for the response.
func FromReader(reader io.Reader) (*Request, error) {
	br := bufio.NewReader(reader)

	first, err := readLine(br)
	if err != nil {
		return nil, err
	}
	method, route, err := parseRequestLine(first)
	if err != nil {
		return nil, err
	}

	req := &Request{Method: method, Route: route, Headers: headers.NewHeaders()}

	for {
		line, err := readLine(br)
		if err != nil {
			return nil, err
		}
		if len(line) == 0 {
			break
		}
		if err := req.Headers.ParseFieldLine(line); err != nil {
			return nil, err
		}
	}

	cl := req.Headers.Get("content-length")
	if cl == "" {
		return req, nil
	}
	contentLength, err := strconv.Atoi(cl)
	if err != nil || contentLength < 0 {
		return nil, ErrBadContentLength
	}
	if contentLength == 0 {
		return req, nil
	}

	body, err := io.ReadAll(io.LimitReader(br, int64(contentLength)))
	if err != nil || len(body) < contentLength {
		return nil, ErrIncompleteRequest
	}
	req.Body = body

	return req, nil
}
