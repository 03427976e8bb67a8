package terminal

import (
	"io"
	"os"
)

// EmergencyReset restores a usable terminal after a crash: attributes, cursor, cooked mode
func EmergencyReset(w io.Writer) {
	w.Write(SeqReset)
	w.Write(csiCursorShow)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
