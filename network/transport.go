package network

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vt-tetris/core"
	"github.com/lixenwraith/vt-tetris/terminal"
)

// ErrStopped is returned by Accept after Stop
var ErrStopped = errors.New("network: transport stopped")

// Session is one accepted remote terminal
type Session struct {
	ID      uint32
	Addr    string
	Backend terminal.Backend
}

// Transport listens for remote terminals and hands them out one at a time
type Transport struct {
	config   *Config
	listener net.Listener
	server   *http.Server

	pending chan *Session
	nextID  atomic.Uint32

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewTransport creates a transport with the given configuration
func NewTransport(cfg *Config) *Transport {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Transport{
		config:  cfg,
		pending: make(chan *Session, max(cfg.MaxPending, 0)),
		stopCh:  make(chan struct{}),
	}
}

// Start binds the listener and begins accepting
func (t *Transport) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return nil // Already running
	}

	var ln net.Listener
	var err error

	if t.config.TLS != nil {
		ln, err = tls.Listen("tcp", t.config.Address, t.config.TLS)
	} else {
		ln, err = net.Listen("tcp", t.config.Address)
	}
	if err != nil {
		t.running.Store(false)
		return err
	}
	t.listener = ln

	t.wg.Add(1)
	switch t.config.Kind {
	case KindWebSocket:
		mux := http.NewServeMux()
		mux.Handle(t.config.Path, t.websocketHandler())
		t.server = &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: t.config.HandshakeTimeout,
		}
		core.Go(t.serveHTTP)
	default:
		core.Go(t.acceptLoop)
	}

	log.Printf("network: %s listening on %s", t.config.Kind, ln.Addr())
	return nil
}

// Addr returns the bound address, nil before Start
func (t *Transport) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

// acceptLoop handles incoming raw connections
func (t *Transport) acceptLoop() {
	defer t.wg.Done()

	for {
		conn, err := t.listener.Accept()
		if err != nil {
			select {
			case <-t.stopCh:
				return
			default:
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("network: accept: %v", err)
			time.Sleep(50 * time.Millisecond)
			continue
		}

		if tc, ok := conn.(*net.TCPConn); ok {
			tc.SetNoDelay(true)
		}
		addr := conn.RemoteAddr().String()
		if !t.offer(addr, terminal.NewStream("tcp:"+addr, conn)) {
			conn.SetWriteDeadline(time.Now().Add(t.config.WriteTimeout))
			conn.Write([]byte(busyMessage))
			conn.Close()
		}
	}
}

func (t *Transport) serveHTTP() {
	defer t.wg.Done()
	if err := t.server.Serve(t.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("network: http serve: %v", err)
	}
}

// offer queues a session; false when stopped or the queue is full
func (t *Transport) offer(addr string, b terminal.Backend) bool {
	s := &Session{
		ID:      t.nextID.Add(1),
		Addr:    addr,
		Backend: b,
	}
	select {
	case <-t.stopCh:
		return false
	default:
	}
	select {
	case t.pending <- s:
		log.Printf("network: session %d from %s queued", s.ID, addr)
		return true
	default:
		log.Printf("network: refusing %s, %d sessions pending", addr, len(t.pending))
		return false
	}
}

// Accept blocks for the next session, ctx cancellation or Stop
func (t *Transport) Accept(ctx context.Context) (*Session, error) {
	select {
	case s := <-t.pending:
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.stopCh:
		return nil, ErrStopped
	}
}

// Stop closes the listener and every session still queued
func (t *Transport) Stop() error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}

	close(t.stopCh)

	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		t.server.Shutdown(ctx)
		cancel()
	}
	if t.listener != nil {
		t.listener.Close()
	}
	t.wg.Wait()

	for {
		select {
		case s := <-t.pending:
			s.Backend.Fini()
		default:
			return nil
		}
	}
}

// IsRunning returns transport state
func (t *Transport) IsRunning() bool {
	return t.running.Load()
}
