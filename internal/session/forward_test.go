package session

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForwarderPassesThrough(t *testing.T) {
	fwd := newForwarder(strings.NewReader("abcdef"))

	got, err := io.ReadAll(fwd)

	assert.NoError(t, err)
	assert.Equal(t, "abcdef", string(got))
}

func TestForwarderCancelReportsEOF(t *testing.T) {
	// data is still pending, but a canceled forwarder must not deliver it
	fwd := newForwarder(bytes.NewReader(bytes.Repeat([]byte{1}, 1024)))

	buf := make([]byte, 16)
	n, err := fwd.Read(buf)
	assert.Equal(t, 16, n)
	assert.NoError(t, err)

	fwd.Cancel()

	n, err = fwd.Read(buf)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

// chunkAfterCancel simulates a source whose Read completes after the
// cancel flag was raised mid-read.
type chunkAfterCancel struct {
	fwd *forwarder
}

func (c *chunkAfterCancel) Read(p []byte) (int, error) {
	c.fwd.Cancel()
	p[0] = 42
	return 1, nil
}

func TestForwarderDropsChunkReadDuringCancel(t *testing.T) {
	src := &chunkAfterCancel{}
	fwd := newForwarder(src)
	src.fwd = fwd

	buf := make([]byte, 16)
	n, err := fwd.Read(buf)

	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}
