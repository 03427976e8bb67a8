package terminal

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/lixenwraith/vt-tetris/core"
)

// framingBit is set by some serial keyboards (Apple-1 PIA) on every received byte
const framingBit = 0x80

// Port is a polled byte link over a Backend.
// A reader goroutine fills an internal buffer; Ready never blocks, ReadByte does.
type Port struct {
	backend      Backend
	stripHighBit bool

	mu     sync.Mutex
	buf    []byte
	closed bool
	err    error // link failure other than end of stream

	notify  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// PortOption configures a Port
type PortOption func(*Port)

// WithStripHighBit masks bit 7 of every received byte
func WithStripHighBit(on bool) PortOption {
	return func(p *Port) {
		p.stripHighBit = on
	}
}

// NewPort wraps a backend; call Open before use
func NewPort(b Backend, opts ...PortOption) *Port {
	p := &Port{
		backend:      b,
		stripHighBit: true,
		buf:          make([]byte, 0, 64),
		notify:       make(chan struct{}, 1),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the backend name
func (p *Port) Name() string {
	return p.backend.Name()
}

// Open initializes the backend and starts reading
func (p *Port) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return nil
	}
	if err := p.backend.Init(); err != nil {
		return fmt.Errorf("%s init: %w", p.backend.Name(), err)
	}
	p.running = true
	core.Go(p.readLoop)
	return nil
}

// Close stops reading, resets attributes and releases the backend. Safe to call twice.
func (p *Port) Close() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopCh)
	// Wait with timeout - don't block forever if read is stuck
	select {
	case <-p.doneCh:
	case <-time.After(100 * time.Millisecond):
	}

	p.backend.Write(SeqReset)
	p.backend.Fini()
	p.markClosed()
}

func (p *Port) readLoop() {
	defer close(p.doneCh)

	for {
		data, err := p.backend.Read(p.stopCh)
		if err != nil {
			if err == io.EOF {
				err = nil
			} else {
				log.Printf("terminal: %s read: %v", p.backend.Name(), err)
			}
			p.fail(err)
			return
		}
		if len(data) == 0 {
			select {
			case <-p.stopCh:
				return
			default:
				continue
			}
		}
		p.push(data)
	}
}

func (p *Port) push(data []byte) {
	p.mu.Lock()
	for _, b := range data {
		if p.stripHighBit {
			b &^= framingBit
		}
		p.buf = append(p.buf, b)
	}
	p.mu.Unlock()
	p.signal()
}

func (p *Port) markClosed() {
	p.fail(nil)
}

// fail closes the link, keeping the first non-nil cause
func (p *Port) fail(err error) {
	p.mu.Lock()
	p.closed = true
	if p.err == nil {
		p.err = err
	}
	p.mu.Unlock()
	p.signal()
}

func (p *Port) signal() {
	select {
	case p.notify <- struct{}{}:
	default:
	}
}

// Ready reports whether a byte is buffered or the link has closed
func (p *Port) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buf) > 0 || p.closed
}

// WaitReady blocks until Ready or d elapses
func (p *Port) WaitReady(d time.Duration) bool {
	if p.Ready() {
		return true
	}
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case <-p.notify:
			if p.Ready() {
				return true
			}
		case <-timer.C:
			return p.Ready()
		}
	}
}

// ReadByte blocks for the next byte. Once the link closed and the buffer drained
// it returns the read failure, or io.EOF for an orderly close.
func (p *Port) ReadByte() (byte, error) {
	for {
		p.mu.Lock()
		if len(p.buf) > 0 {
			b := p.buf[0]
			p.buf = p.buf[1:]
			p.mu.Unlock()
			return b, nil
		}
		if p.closed {
			err := p.err
			p.mu.Unlock()
			if err == nil {
				err = io.EOF
			}
			return 0, err
		}
		p.mu.Unlock()
		<-p.notify
	}
}

// Write implements io.Writer on the terminal output
func (p *Port) Write(b []byte) (int, error) {
	if err := p.backend.Write(b); err != nil {
		return 0, err
	}
	return len(b), nil
}
