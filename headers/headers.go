package headers

import (
	"bytes"
	"iter"
	"maps"
	"regexp"
	"strings"
)

// token characters allowed in a field name, RFC 9110 §5.6.2
var fieldNameRegex = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*\+\-.^_\x60\|~]+$`)

// Headers is a case-insensitive collection of HTTP header fields. Keys are
// stored lowercased.
type Headers struct {
	fields map[string]string
}

// NewHeaders creates an empty Headers collection.
func NewHeaders() *Headers {
	return &Headers{fields: map[string]string{}}
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}

func validFieldValueByte(c byte) bool {
	switch {
	case c == 0x09: // HTAB
		return true
	case c == 0x20: // SP
		return true
	case 0x21 <= c && c <= 0x7E: // VCHAR
		return true
	case c >= 0x80: // obs-text
		return true
	}
	return false
}

func validFieldValue(val []byte) bool {
	for _, b := range val {
		if !validFieldValueByte(b) {
			return false
		}
	}
	return true
}

// Add appends a header field, joining a repeated key's values with a comma.
// A name or value that fails validation is dropped rather than stored; a
// CR/LF smuggled into a value must never reach the wire.
func (h *Headers) Add(key, value string) {
	if !fieldNameRegex.MatchString(key) || !validFieldValue([]byte(value)) {
		return
	}

	key = normalizeKey(key)
	if existing, ok := h.fields[key]; ok {
		h.fields[key] = existing + ", " + value
	} else {
		h.fields[key] = value
	}
}

// Set replaces any existing value for key. Invalid names or values are dropped.
func (h *Headers) Set(key, value string) {
	if !fieldNameRegex.MatchString(key) || !validFieldValue([]byte(value)) {
		return
	}
	h.fields[normalizeKey(key)] = value
}

// Get returns the value for key, or the empty string if absent.
func (h *Headers) Get(key string) string {
	return h.fields[normalizeKey(key)]
}

// Remove deletes a header field.
func (h *Headers) Remove(key string) {
	delete(h.fields, normalizeKey(key))
}

// Size returns the number of header fields.
func (h *Headers) Size() int {
	return len(h.fields)
}

// All returns an iterator over all header fields.
func (h *Headers) All() iter.Seq2[string, string] {
	return maps.All(h.fields)
}

// ParseFieldLine parses one `key: value` line into the collection. The key
// may carry leading whitespace but not a space before the colon.
func (h *Headers) ParseFieldLine(data []byte) error {
	colonPos := bytes.IndexByte(data, ':')
	if colonPos == -1 {
		return ErrMalformedHeader
	}

	hkey := bytes.TrimLeft(data[:colonPos], " \t")
	hvalue := bytes.Trim(data[colonPos+1:], " \t")

	if !bytes.Equal(hkey, bytes.TrimRight(hkey, " ")) {
		return ErrMalformedHeader
	}

	if !fieldNameRegex.Match(hkey) || !validFieldValue(hvalue) {
		return ErrMalformedHeader
	}

	h.Add(string(hkey), string(hvalue))
	return nil
}
