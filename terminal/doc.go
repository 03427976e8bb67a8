// Package terminal provides the byte link between the game and a VT100-compatible terminal.
//
// Features:
//   - Backends for the local console (raw stdin/stdout), a named tty device,
//     a serial UART, and any io.ReadWriteCloser (network connections)
//   - Port: polled, non-blocking readiness with a blocking single-byte read,
//     optional stripping of the high framing bit
//   - Pre-built VT100 sequences and allocation-free integer/cursor writers
//   - Best-effort terminal restoration after a crash
//
// No terminfo lookup or capability negotiation is done; output is plain
// VT100 cursor positioning and SGR attributes.
package terminal
