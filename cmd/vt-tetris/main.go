// Command vt-tetris plays falling-block Tetris on a VT100-compatible terminal
// attached to the console, a tty device, a serial line or a network socket.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/vt-tetris/core"
	"github.com/lixenwraith/vt-tetris/terminal"
)

func main() {
	os.Exit(realMain(os.Args[1:], os.Stderr))
}

// realMain returns the exit status so deferred cleanup runs before os.Exit
func realMain(args []string, stderr io.Writer) int {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	core.SetCrashReset(func() { terminal.EmergencyReset(os.Stdout) })

	cfg, err := resolveConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "vt-tetris: %v\n", err)
		return 2
	}

	if logger := setupLogging(cfg.Debug); logger != nil {
		defer closeLogging(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("vt-tetris: %v", err)
		fmt.Fprintf(stderr, "vt-tetris: %v\n", err)
		return 1
	}
	return 0
}
