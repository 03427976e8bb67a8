package terminal

import (
	"fmt"
	"io"

	"github.com/jacobsa/go-serial/serial"
)

// DefaultBaud matches a common VT100 serial setting
const DefaultBaud = 9600

// serialBackend talks to a hardware terminal over a UART (8N1)
type serialBackend struct {
	path string
	baud uint
	*streamBackend
}

// NewSerial returns a backend on the serial device at path
func NewSerial(path string, baud uint) Backend {
	if baud == 0 {
		baud = DefaultBaud
	}
	return &serialBackend{path: path, baud: baud}
}

func (b *serialBackend) Name() string {
	return fmt.Sprintf("serial:%s@%d", b.path, b.baud)
}

func (b *serialBackend) Init() error {
	options := serial.OpenOptions{
		PortName: b.path,
		BaudRate: b.baud,
		DataBits: 8,
		StopBits: 1,
		// Timed reads so the reader goroutine observes shutdown
		MinimumReadSize:       0,
		InterCharacterTimeout: 100,
	}

	port, err := serial.Open(options)
	if err != nil {
		return fmt.Errorf("serial open %s: %w", b.path, err)
	}

	b.streamBackend = newStream(b.Name(), timedPort{port})
	return b.streamBackend.Init()
}

func (b *serialBackend) Fini() {
	if b.streamBackend != nil {
		b.streamBackend.Fini()
	}
}

// timedPort reports an expired inter-character timeout as an empty read.
// The device file returns io.EOF for a zero-byte read, but the line is still up.
type timedPort struct {
	io.ReadWriteCloser
}

func (p timedPort) Read(buf []byte) (int, error) {
	n, err := p.ReadWriteCloser.Read(buf)
	if n == 0 && err == io.EOF {
		return 0, nil
	}
	return n, err
}
