package input

import "time"

// Source is a polled byte input: a readiness query plus a blocking read.
// terminal.Port is the production implementation.
type Source interface {
	// Ready reports whether a byte (or end of input) is available without blocking
	Ready() bool

	// WaitReady blocks until Ready would return true or d elapses
	WaitReady(d time.Duration) bool

	// ReadByte blocks for the next byte; io.EOF once the link is closed and drained
	ReadByte() (byte, error)
}
