package response

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var buf bytes.Buffer
	resp := New(&buf)

	assert.Equal(t, StatusOK, resp.StatusCode())
	assert.Equal(t, "close", resp.Headers().Get("connection"))
	assert.False(t, resp.Flushed())
}

func TestFlushWritesWireFormat(t *testing.T) {
	var buf bytes.Buffer
	resp := New(&buf)
	resp.Status(StatusCreated).Header("x-server", "sleipnir").Text("made it")

	require.NoError(t, resp.Flush())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 201 Created\r\n"))
	assert.Contains(t, out, "x-server: sleipnir\r\n")
	assert.Contains(t, out, "content-length: 7\r\n")
	assert.Contains(t, out, "content-type: text/plain\r\n")
	assert.True(t, strings.HasSuffix(out, "\r\n\r\nmade it"))
}

func TestStatusMutableUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	resp := New(&buf)

	// body first, then a later handler changes the status
	resp.Write([]byte("partial"))
	resp.Status(StatusConflict)

	require.NoError(t, resp.Flush())
	assert.True(t, strings.HasPrefix(buf.String(), "HTTP/1.1 409 Conflict\r\n"))
}

func TestFlushIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	resp := New(&buf)
	resp.Text("once")

	require.NoError(t, resp.Flush())
	first := buf.String()
	require.NoError(t, resp.Flush())
	assert.Equal(t, first, buf.String())
	assert.True(t, resp.Flushed())
}

func TestEmptyBodyFlush(t *testing.T) {
	var buf bytes.Buffer
	resp := New(&buf)
	resp.Status(StatusNoContent)

	require.NoError(t, resp.Flush())
	assert.Contains(t, buf.String(), "content-length: 0\r\n")
}

func TestWireWriterRefusesOutOfOrder(t *testing.T) {
	var buf bytes.Buffer
	ww := newWireWriter(&buf)

	require.ErrorIs(t, ww.writeBody([]byte("early")), ErrInvalidWriterState)
	require.NoError(t, ww.writeStatusLine(StatusOK))
	require.ErrorIs(t, ww.writeStatusLine(StatusOK), ErrInvalidWriterState)
}
