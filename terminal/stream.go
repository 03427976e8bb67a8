package terminal

import (
	"errors"
	"io"
	"net"
	"os"
	"sync"

	"github.com/lixenwraith/vt-tetris/core"
)

// streamBackend adapts any io.ReadWriteCloser (socket, tty file, serial port).
// A reader goroutine turns blocking reads into chunks so Read can honor stopCh.
type streamBackend struct {
	name string
	rwc  io.ReadWriteCloser

	chunks chan []byte
	doneCh chan struct{}

	mu      sync.Mutex
	err     error
	started bool
	closed  bool
}

// NewStream wraps rwc as a Backend. Fini closes rwc.
func NewStream(name string, rwc io.ReadWriteCloser) Backend {
	return newStream(name, rwc)
}

func newStream(name string, rwc io.ReadWriteCloser) *streamBackend {
	return &streamBackend{
		name:   name,
		rwc:    rwc,
		chunks: make(chan []byte, 64),
		doneCh: make(chan struct{}),
	}
}

func (b *streamBackend) Name() string {
	return b.name
}

func (b *streamBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return nil
	}
	b.started = true
	core.Go(b.readLoop)
	return nil
}

// readLoop runs until the stream errors or Fini closes it.
// Zero-byte reads without error (timed serial reads) just loop.
func (b *streamBackend) readLoop() {
	defer close(b.chunks)

	buf := make([]byte, 256)
	for {
		n, err := b.rwc.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case b.chunks <- data:
			case <-b.doneCh:
				return
			}
		}
		if err != nil {
			b.mu.Lock()
			b.err = err
			b.mu.Unlock()
			return
		}
		select {
		case <-b.doneCh:
			return
		default:
		}
	}
}

func (b *streamBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case data, ok := <-b.chunks:
		if !ok {
			return nil, b.readErr()
		}
		return data, nil
	case <-stopCh:
		return nil, nil
	}
}

// readErr maps the terminal read error; anything caused by our own shutdown reads as EOF
func (b *streamBackend) readErr() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err == nil || b.closed || errors.Is(b.err, io.EOF) ||
		errors.Is(b.err, os.ErrClosed) || errors.Is(b.err, net.ErrClosed) || errors.Is(b.err, os.ErrDeadlineExceeded) {
		return io.EOF
	}
	return b.err
}

func (b *streamBackend) Write(p []byte) error {
	_, err := b.rwc.Write(p)
	return err
}

func (b *streamBackend) Fini() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	close(b.doneCh)
	b.rwc.Close()
}
