package engine

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vt-tetris/board"
	"github.com/lixenwraith/vt-tetris/constants"
	"github.com/lixenwraith/vt-tetris/input"
	"github.com/lixenwraith/vt-tetris/piece"
	"github.com/lixenwraith/vt-tetris/render"
	"github.com/lixenwraith/vt-tetris/status"
)

// Display receives every visible state change. render.Renderer implements it.
type Display interface {
	Clear()
	DrawFrame()
	DrawBoard(b *board.Board)
	DrawSidebar(info render.Info)
	DrawPiece(k piece.Kind, rotation, row, col int, erase bool)
	DrawGameOver(score int)
}

// Phase is the game state machine position
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseSpawning
	PhaseFalling
	PhaseLocking
	PhaseLineClearing
	PhaseGameOver
)

var phaseNames = [...]string{"idle", "spawning", "falling", "locking", "line-clearing", "game-over"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Active is the falling piece: kind, rotation and anchor
type Active struct {
	Kind     piece.Kind
	Rotation int
	Row      int
	Col      int
}

// Game owns all state of one session: board, active and next piece, score
type Game struct {
	board   *board.Board
	rng     *RNG
	display Display

	active Active
	next   piece.Kind
	score  Score
	phase  Phase

	fallBase  time.Duration
	fallFloor time.Duration

	spawned  *atomic.Int64
	locked   *atomic.Int64
	cleared  *atomic.Int64
	rejected *atomic.Int64
	ignored  *atomic.Int64
}

// GameOption configures a Game
type GameOption func(*Game)

// WithSeed sets the piece generator seed
func WithSeed(seed uint32) GameOption {
	return func(g *Game) {
		g.rng = NewRNG(seed)
	}
}

// WithFallTiming sets the level 0 fall interval and its floor
func WithFallTiming(base, floor time.Duration) GameOption {
	return func(g *Game) {
		if base > 0 {
			g.fallBase = base
		}
		if floor > 0 {
			g.fallFloor = floor
		}
	}
}

// WithBoard starts from an existing board instead of an empty one
func WithBoard(b *board.Board) GameOption {
	return func(g *Game) {
		g.board = b
	}
}

// WithStats records session counters into reg
func WithStats(reg *status.Registry) GameOption {
	return func(g *Game) {
		g.bindStats(reg)
	}
}

// NewGame creates a session drawing to display
func NewGame(display Display, opts ...GameOption) *Game {
	g := &Game{
		board:     board.New(),
		rng:       NewRNG(constants.DefaultSeed),
		display:   display,
		fallBase:  constants.FallBase,
		fallFloor: constants.FallFloor,
		phase:     PhaseIdle,
	}
	g.bindStats(status.NewRegistry())
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) bindStats(reg *status.Registry) {
	g.spawned = reg.Counter(status.PiecesSpawned)
	g.locked = reg.Counter(status.PiecesLocked)
	g.cleared = reg.Counter(status.LinesCleared)
	g.rejected = reg.Counter(status.MovesRejected)
	g.ignored = reg.Counter(status.KeysIgnored)
}

// Board exposes the locked grid
func (g *Game) Board() *board.Board { return g.board }

// Active returns the falling piece
func (g *Game) Active() Active { return g.active }

// Next returns the preview kind
func (g *Game) Next() piece.Kind { return g.next }

// Score returns the current score state
func (g *Game) Score() Score { return g.score }

// Phase returns the state machine position
func (g *Game) Phase() Phase { return g.phase }

// Over reports the terminal state
func (g *Game) Over() bool { return g.phase == PhaseGameOver }

// FallInterval is the current level's fall delay
func (g *Game) FallInterval() time.Duration {
	return FallInterval(g.score.Level, g.fallBase, g.fallFloor)
}

// Start draws the initial screen and spawns the first piece.
// Only an idle game starts; later calls do nothing.
func (g *Game) Start() {
	if g.phase != PhaseIdle {
		return
	}
	g.display.Clear()
	g.next = g.rng.Next()
	g.display.DrawFrame()
	g.spawn()
	g.display.DrawBoard(g.board)
	g.display.DrawSidebar(g.info())
	if !g.Over() {
		g.drawActive(false)
	}
}

// spawn promotes next to active at the top-center anchor. Collision at spawn ends the game.
func (g *Game) spawn() bool {
	g.phase = PhaseSpawning
	g.active = Active{
		Kind: g.next,
		Row:  constants.SpawnRow,
		Col:  constants.SpawnCol,
	}
	g.next = g.rng.Next()
	g.spawned.Add(1)

	if !g.fits(g.active) {
		log.Printf("engine: spawn collision for %s, game over", g.active.Kind)
		g.phase = PhaseGameOver
		return false
	}
	g.phase = PhaseFalling
	return true
}

func (g *Game) fits(a Active) bool {
	return g.board.IsValid(a.Kind, a.Rotation, a.Row, a.Col)
}

func (g *Game) drawActive(erase bool) {
	a := g.active
	g.display.DrawPiece(a.Kind, a.Rotation, a.Row, a.Col, erase)
}

func (g *Game) info() render.Info {
	return render.Info{
		Score: g.score.Points,
		Lines: g.score.Lines,
		Level: g.score.Level,
		Next:  g.next,
	}
}

// Apply performs one player command. Returns false when the command was
// rejected or had no effect; state is unchanged in that case.
func (g *Game) Apply(cmd input.Command) bool {
	if g.phase != PhaseFalling {
		return false
	}

	if cmd == input.CommandQuit {
		g.phase = PhaseGameOver
		return true
	}
	if !cmd.Moves() {
		return false
	}

	next := g.active
	switch cmd {
	case input.CommandLeft:
		next.Col--
	case input.CommandRight:
		next.Col++
	case input.CommandRotate:
		next.Rotation = piece.NextRotation(next.Rotation)
	case input.CommandDrop:
		probe := next
		for {
			probe.Row++
			if !g.fits(probe) {
				break
			}
			next.Row = probe.Row
		}
	}

	if next == g.active || !g.fits(next) {
		g.rejected.Add(1)
		return false
	}

	g.drawActive(true)
	g.active = next
	g.drawActive(false)
	return true
}

// Fall runs one gravity step: move down, or lock, clear lines and respawn
func (g *Game) Fall() {
	if g.phase != PhaseFalling {
		return
	}

	down := g.active
	down.Row++
	if g.fits(down) {
		g.drawActive(true)
		g.active = down
		g.drawActive(false)
		return
	}

	g.phase = PhaseLocking
	a := g.active
	g.board.Lock(a.Kind, a.Rotation, a.Row, a.Col)
	g.locked.Add(1)
	g.display.DrawBoard(g.board)

	g.phase = PhaseLineClearing
	if n := g.board.ClearFullLines(); n > 0 {
		pts := g.score.Award(n)
		g.cleared.Add(int64(n))
		log.Printf("engine: cleared %d lines for %d points, level %d", n, pts, g.score.Level)
		g.display.DrawBoard(g.board)
	}

	g.spawn()
	g.display.DrawSidebar(g.info())
	if !g.Over() {
		g.drawActive(false)
	}
}

// Quit ends the game without locking the active piece
func (g *Game) Quit() {
	g.phase = PhaseGameOver
}

// Finish shows the final score
func (g *Game) Finish() {
	g.display.DrawGameOver(g.score.Points)
}
