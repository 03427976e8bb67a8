package terminal

import (
	"bufio"
)

// Pre-allocated VT100 sequence fragments
var (
	csi = []byte("\x1b[")

	// SeqClear erases the screen and homes the cursor
	SeqClear = []byte("\x1b[2J\x1b[H")
	// SeqReset clears all SGR attributes
	SeqReset = []byte("\x1b[0m")
	// SeqBold sets bold intensity
	SeqBold = []byte("\x1b[1m")

	csiCursorShow = []byte("\x1b[?25h")
	csiRIS        = []byte("\x1bc") // Reset to Initial State (emergency)
)

// WriteInt writes a decimal integer without allocation
func WriteInt(w *bufio.Writer, n int) {
	if n < 0 {
		w.WriteByte('-')
		n = -n
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// WriteCursorPos writes ESC[row;colH (1-based, as the terminal expects)
func WriteCursorPos(w *bufio.Writer, row, col int) {
	w.Write(csi)
	WriteInt(w, row)
	w.WriteByte(';')
	WriteInt(w, col)
	w.WriteByte('H')
}

// WriteSGR writes ESC[<code>m, e.g. a foreground color 30-37
func WriteSGR(w *bufio.Writer, code int) {
	w.Write(csi)
	WriteInt(w, code)
	w.WriteByte('m')
}
