package engine

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/lixenwraith/vt-tetris/constants"
	"github.com/lixenwraith/vt-tetris/input"
)

// Loop drives a Game from a command decoder and a clock.
// Each pass handles at most one pending command, then runs a fall step if
// the current interval has elapsed since the previous one.
type Loop struct {
	game  *Game
	dec   *input.Decoder
	clock TimeProvider
	slice time.Duration
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithClock replaces the monotonic clock
func WithClock(tp TimeProvider) LoopOption {
	return func(l *Loop) {
		l.clock = tp
	}
}

// WithWaitSlice bounds a single idle wait so cancellation is noticed
func WithWaitSlice(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.slice = d
		}
	}
}

// NewLoop binds a game to its input
func NewLoop(game *Game, dec *input.Decoder, opts ...LoopOption) *Loop {
	l := &Loop{
		game:  game,
		dec:   dec,
		clock: NewMonotonicTimeProvider(),
		slice: constants.WaitSlice,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Game returns the driven session
func (l *Loop) Game() *Game { return l.game }

// Run plays until game over, Quit, end of input or ctx cancellation, then
// draws the final screen. A closed input link ends the game like Quit.
func (l *Loop) Run(ctx context.Context) error {
	g := l.game
	g.Start()

	var runErr error
	lastFall := l.clock.Now()

	for !g.Over() {
		if err := ctx.Err(); err != nil {
			g.Quit()
			runErr = err
			break
		}

		if l.dec.Poll() {
			cmd, err := l.dec.ReadCommand()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.Printf("engine: input error: %v", err)
					runErr = err
				}
				g.Quit()
				break
			}
			if cmd == input.CommandNone {
				g.ignored.Add(1)
			} else {
				g.Apply(cmd)
			}
			if g.Over() {
				break
			}
		}

		// Gravity is checked on every pass, input or not
		elapsed := l.clock.Now().Sub(lastFall)
		interval := g.FallInterval()
		if elapsed >= interval {
			g.Fall()
			lastFall = l.clock.Now()
			continue
		}

		l.dec.Wait(min(interval-elapsed, l.slice))
	}

	g.Finish()
	log.Printf("engine: game over, score %d lines %d level %d", g.score.Points, g.score.Lines, g.score.Level)
	return runErr
}
