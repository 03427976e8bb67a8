package terminal

// Backend abstracts a physical or virtual terminal link.
// Implementations: console (stdio), tty device, serial port, generic stream.
type Backend interface {
	// Lifecycle
	Init() error
	Fini()

	// Write writes raw bytes to the terminal output.
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed, or an error occurs.
	// Returns (nil, nil) when stopped and io.EOF when the link has closed.
	Read(stopCh <-chan struct{}) ([]byte, error)

	// Name identifies the link in logs
	Name() string
}
