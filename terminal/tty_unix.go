//go:build unix

package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// ttyBackend opens a terminal device through tcell's Tty, which handles raw mode
type ttyBackend struct {
	path string
	tty  tcell.Tty
	*streamBackend
}

// NewTTY returns a backend on the named device, or the controlling tty when path is empty
func NewTTY(path string) Backend {
	return &ttyBackend{path: path}
}

func (b *ttyBackend) Name() string {
	if b.path == "" {
		return "tty:/dev/tty"
	}
	return "tty:" + b.path
}

func (b *ttyBackend) Init() error {
	var (
		tty tcell.Tty
		err error
	)
	if b.path == "" {
		tty, err = tcell.NewDevTty()
	} else {
		tty, err = tcell.NewDevTtyFromDev(b.path)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", b.Name(), err)
	}
	if err := tty.Start(); err != nil {
		tty.Close()
		return fmt.Errorf("start %s: %w", b.Name(), err)
	}

	b.tty = tty
	b.streamBackend = newStream(b.Name(), tty)
	return b.streamBackend.Init()
}

func (b *ttyBackend) Fini() {
	if b.tty == nil {
		return
	}
	// Drain unblocks the pending read before the device is restored and closed
	b.tty.Drain()
	b.tty.Stop()
	b.streamBackend.Fini()
	b.tty = nil
}
