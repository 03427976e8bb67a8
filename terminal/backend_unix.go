//go:build unix

package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// stdioBackend drives the controlling console through stdin/stdout in raw mode
type stdioBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	oldTerm *term.State
	buf     []byte
}

// NewStdio returns a backend on the process's stdin and stdout
func NewStdio() Backend {
	return &stdioBackend{
		in:   os.Stdin,
		out:  os.Stdout,
		inFd: int(os.Stdin.Fd()),
		buf:  make([]byte, 256),
	}
}

func (b *stdioBackend) Name() string {
	return "stdio"
}

func (b *stdioBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("stdin is not a terminal")
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	b.oldTerm = old
	return nil
}

func (b *stdioBackend) Fini() {
	if b.oldTerm != nil {
		term.Restore(b.inFd, b.oldTerm)
		b.oldTerm = nil
	}
}

func (b *stdioBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// Read polls stdin in 100ms slices so a closed stopCh is noticed
func (b *stdioBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		fds := []unix.PollFd{
			{Fd: int32(b.inFd), Events: unix.POLLIN},
		}

		n, err := unix.Poll(fds, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, err
		}

		if n == 0 {
			continue // Timeout
		}

		rn, err := unix.Read(b.inFd, b.buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return nil, err
		}

		if rn == 0 {
			return nil, io.EOF
		}

		ret := make([]byte, rn)
		copy(ret, b.buf[:rn])
		return ret, nil
	}
}
