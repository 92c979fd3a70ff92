package session

import (
	"io"
	"sync/atomic"
)

// forwarder passes stream chunks through until canceled. After Cancel
// every Read reports EOF, so the consumer sees a clean end of stream
// instead of a torn-down connection; no chunk read after the cancel flag
// is set gets delivered.
type forwarder struct {
	src      io.Reader
	canceled atomic.Bool
}

func newForwarder(src io.Reader) *forwarder {
	return &forwarder{src: src}
}

func (f *forwarder) Read(p []byte) (int, error) {
	if f.canceled.Load() {
		return 0, io.EOF
	}
	n, err := f.src.Read(p)
	if f.canceled.Load() {
		return 0, io.EOF
	}
	return n, err
}

func (f *forwarder) Cancel() {
	f.canceled.Store(true)
}
