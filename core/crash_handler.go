// Package core holds process-wide crash handling.
package core

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"sync"
)

// Closer is a terminal link that can restore itself
type Closer interface {
	Close()
}

var (
	crashMu      sync.Mutex
	crashLink    Closer
	crashReset   func()
	crashHandler func(r any)

	// Overridable in tests
	crashOut  io.Writer = os.Stderr
	crashExit           = os.Exit
)

// SetCrashTerminal registers the active terminal link so a crash can restore it.
// nil unregisters.
func SetCrashTerminal(c Closer) {
	crashMu.Lock()
	crashLink = c
	crashMu.Unlock()
}

// SetCrashReset sets the fallback run when no terminal link is registered
func SetCrashReset(fn func()) {
	crashMu.Lock()
	crashReset = fn
	crashMu.Unlock()
}

// SetCrashHandler replaces the handler used by Go; nil restores HandleCrash
func SetCrashHandler(fn func(r any)) {
	crashMu.Lock()
	crashHandler = fn
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	link, reset := crashLink, crashReset
	crashMu.Unlock()

	// Terminal cleanup if available
	if link != nil {
		link.Close()
	} else if reset != nil {
		reset()
	}

	log.Printf("CRASH: %v\n%s", r, debug.Stack())
	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())
	if f, ok := crashOut.(*os.File); ok {
		f.Sync()
	}

	crashExit(1)
}

func handle(r any) {
	crashMu.Lock()
	fn := crashHandler
	crashMu.Unlock()
	if fn == nil {
		fn = HandleCrash
	}
	fn(r)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				handle(r)
			}
		}()
		fn()
	}()
}
