//go:build !linux

package terminal

// resetTerminalMode is a no-op where termios ioctls differ; Fini restores saved state instead
func resetTerminalMode() {}
