// Package input turns raw terminal bytes into game commands.
//
// Single uppercase letters and VT100 cursor-key sequences (ESC [ A..D) are
// recognized. Everything else, including malformed or timed-out escape
// sequences, decodes to CommandNone and is dropped.
package input

import (
	"time"

	"github.com/lixenwraith/vt-tetris/constants"
)

// Decoder reads one command at a time from a Source
type Decoder struct {
	src      Source
	timeout  time.Duration
	foldCase bool
}

// Option configures a Decoder
type Option func(*Decoder)

// WithEscapeTimeout bounds the wait for each escape follow byte
func WithEscapeTimeout(d time.Duration) Option {
	return func(dec *Decoder) {
		if d > 0 {
			dec.timeout = d
		}
	}
}

// WithFoldCase accepts lowercase letters as their uppercase commands
func WithFoldCase(on bool) Option {
	return func(dec *Decoder) {
		dec.foldCase = on
	}
}

// NewDecoder creates a decoder over src
func NewDecoder(src Source, opts ...Option) *Decoder {
	d := &Decoder{
		src:     src,
		timeout: constants.EscapeTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Poll reports whether input is pending. No side effects.
func (d *Decoder) Poll() bool {
	return d.src.Ready()
}

// Wait blocks until input is pending or d elapses
func (d *Decoder) Wait(timeout time.Duration) bool {
	return d.src.WaitReady(timeout)
}

// ReadCommand consumes one key (a byte or an escape sequence) and decodes it.
// The only error is the Source's, typically io.EOF when the link closes.
func (d *Decoder) ReadCommand() (Command, error) {
	b, err := d.src.ReadByte()
	if err != nil {
		return CommandNone, err
	}
	b &= dataMask

	if b == byteEscape {
		return d.readEscape()
	}

	if d.foldCase && b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	if cmd, ok := letterTable[b]; ok {
		return cmd, nil
	}
	return CommandNone, nil
}

// readEscape handles the two bytes after ESC; a missing or wrong byte discards the sequence
func (d *Decoder) readEscape() (Command, error) {
	c2, ok, err := d.follow()
	if err != nil || !ok || c2 != byteCSI {
		return CommandNone, err
	}

	c3, ok, err := d.follow()
	if err != nil || !ok {
		return CommandNone, err
	}

	if cmd, ok := cursorTable[c3]; ok {
		return cmd, nil
	}
	return CommandNone, nil
}

// follow waits up to the escape timeout for the next byte
func (d *Decoder) follow() (byte, bool, error) {
	if !d.src.WaitReady(d.timeout) {
		return 0, false, nil
	}
	b, err := d.src.ReadByte()
	if err != nil {
		return 0, false, err
	}
	return b & dataMask, true, nil
}
