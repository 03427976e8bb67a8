package engine

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vt-tetris/board"
	"github.com/lixenwraith/vt-tetris/constants"
	"github.com/lixenwraith/vt-tetris/input"
	"github.com/lixenwraith/vt-tetris/piece"
	"github.com/lixenwraith/vt-tetris/status"
)

// scriptedLoop wires a game to a virtual-clock source with a mock time provider in lockstep
func scriptedLoop(t *testing.T, reg *status.Registry, chunks ...input.Chunk) (*Loop, *recordingDisplay, *MockTimeProvider) {
	t.Helper()
	clock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	src := input.NewScriptSource(chunks...)
	src.OnAdvance = clock.Advance

	d := &recordingDisplay{}
	g := NewGame(d, WithStats(reg))
	return NewLoop(g, input.NewDecoder(src), WithClock(clock)), d, clock
}

func TestLoopGravityLocksPiece(t *testing.T) {
	reg := status.NewRegistry()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	loop, d, clock := scriptedLoop(t, reg, input.Chunk{At: 30 * time.Second, Data: []byte("Q")})

	require.NoError(t, loop.Run(context.Background()))

	assert.Equal(t, 30*time.Second, clock.Now().Sub(start))
	g := loop.Game()
	assert.True(t, g.Over())

	// O falls one row per second, locks on the 19th expiry, and the T after it is still falling
	b := g.Board()
	col := constants.SpawnCol
	for _, rc := range [][2]int{{18, col}, {18, col + 1}, {19, col}, {19, col + 1}} {
		assert.Equal(t, board.Cell(piece.O.Color()), b.At(rc[0], rc[1]), "cell %v", rc)
	}
	assert.Equal(t, 4, b.Occupied())
	assert.Equal(t, piece.T, g.Active().Kind)
	assert.Equal(t, 10, g.Active().Row)

	assert.Equal(t, int64(1), reg.Value(status.PiecesLocked))
	assert.Equal(t, int64(2), reg.Value(status.PiecesSpawned))
	assert.Equal(t, "gameover", d.ops[len(d.ops)-1])
}

func TestLoopAppliesKeysBeforeFalling(t *testing.T) {
	loop, _, _ := scriptedLoop(t, status.NewRegistry(),
		input.Keys("AA\x1b[D"),
		input.Chunk{At: 500 * time.Millisecond, Data: []byte("Q")},
	)

	require.NoError(t, loop.Run(context.Background()))
	a := loop.Game().Active()
	assert.Equal(t, constants.SpawnCol-3, a.Col)
	assert.Equal(t, 0, a.Row, "no fall before the first interval")
}

func TestLoopEndOfInputQuits(t *testing.T) {
	loop, d, _ := scriptedLoop(t, status.NewRegistry(), input.Keys("S"))

	require.NoError(t, loop.Run(context.Background()))
	assert.True(t, loop.Game().Over())
	assert.Equal(t, 0, loop.Game().Board().Occupied(), "dropped piece is not locked on quit")
	assert.Equal(t, "gameover", d.ops[len(d.ops)-1])
}

func TestLoopContextCancel(t *testing.T) {
	loop, d, _ := scriptedLoop(t, status.NewRegistry(), input.Chunk{At: time.Hour, Data: []byte("Q")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := loop.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, loop.Game().Over())
	assert.Equal(t, 0, d.finalScore)
}

func TestLoopIgnoresUnknownKeys(t *testing.T) {
	reg := status.NewRegistry()
	loop, _, _ := scriptedLoop(t, reg, input.Keys("xyz\x1b[ZQ"))

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, constants.SpawnCol, loop.Game().Active().Col)
	assert.Equal(t, int64(0), reg.Value(status.MovesRejected))
	assert.Equal(t, int64(4), reg.Value(status.KeysIgnored))
}

// floodSource always has a byte pending; each read costs a millisecond on clock.
// After n filler bytes it sends Q, or fails with err when set.
type floodSource struct {
	clock *MockTimeProvider
	n     int
	fill  byte
	err   error
}

func (f *floodSource) Ready() bool                  { return true }
func (f *floodSource) WaitReady(time.Duration) bool { return true }

func (f *floodSource) ReadByte() (byte, error) {
	f.clock.Advance(time.Millisecond)
	if f.n == 0 {
		if f.err != nil {
			return 0, f.err
		}
		return 'Q', nil
	}
	f.n--
	return f.fill, nil
}

func TestLoopGravityRunsDuringInputFlood(t *testing.T) {
	reg := status.NewRegistry()
	clock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	src := &floodSource{clock: clock, n: 5000, fill: 'X'}

	g := NewGame(&recordingDisplay{}, WithStats(reg))
	loop := NewLoop(g, input.NewDecoder(src), WithClock(clock))
	require.NoError(t, loop.Run(context.Background()))

	// 5000 reads at 1ms each span five fall intervals
	assert.Equal(t, 5, g.Active().Row)
	assert.Equal(t, int64(5000), reg.Value(status.KeysIgnored))
}

func TestLoopReturnsInputError(t *testing.T) {
	clock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	lineErr := errors.New("framing error")
	src := &floodSource{clock: clock, n: 2, fill: 'A', err: lineErr}

	d := &recordingDisplay{}
	g := NewGame(d)
	err := NewLoop(g, input.NewDecoder(src), WithClock(clock)).Run(context.Background())

	assert.ErrorIs(t, err, lineErr)
	assert.False(t, errors.Is(err, io.EOF))
	assert.True(t, g.Over())
	assert.Equal(t, constants.SpawnCol-2, g.Active().Col)
	assert.Equal(t, "gameover", d.ops[len(d.ops)-1])
}
