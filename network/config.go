package network

import (
	"crypto/tls"
	"net/http"
	"time"
)

// Kind selects the wire carrying terminal bytes
type Kind uint8

const (
	KindTCP       Kind = iota // raw socket, telnet/nc style
	KindWebSocket             // binary websocket frames, browser terminals
)

func (k Kind) String() string {
	if k == KindWebSocket {
		return "ws"
	}
	return "tcp"
}

// Config holds listener configuration
type Config struct {
	Kind Kind

	// Address to bind
	Address string

	// Path served by the websocket endpoint
	Path string

	// CheckOrigin vets websocket handshakes (nil = same-origin only)
	CheckOrigin func(r *http.Request) bool

	// TLS configuration (nil = plaintext)
	TLS *tls.Config

	// Connections waiting behind the active session; more are turned away
	MaxPending int

	// Timing
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Kind:             KindTCP,
		Address:          "127.0.0.1:2323",
		Path:             "/",
		TLS:              nil,
		MaxPending:       4,
		HandshakeTimeout: 5 * time.Second,
		WriteTimeout:     5 * time.Second,
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
	}
}

// busyMessage is written to connections refused while the queue is full
const busyMessage = "\r\nvt-tetris: all terminals busy, try again later\r\n"
