package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/vt-tetris/board"
	"github.com/lixenwraith/vt-tetris/piece"
)

func TestDrawCell(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.DrawCell(0, 0, 36)
	assert.Equal(t, "\x1b[2;2H\x1b[36m[]\x1b[0m", buf.String())

	buf.Reset()
	r.DrawCell(19, 9, 0)
	assert.Equal(t, "\x1b[21;20H\x1b[0m  \x1b[0m", buf.String())
}

func TestDrawPieceAndErase(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.DrawPiece(piece.O, 0, 0, 3, false)
	out := buf.String()
	assert.Equal(t, 4, strings.Count(out, "\x1b[33m[]"))
	assert.Contains(t, out, "\x1b[2;8H")
	assert.Contains(t, out, "\x1b[3;10H")

	buf.Reset()
	r.DrawPiece(piece.O, 0, 0, 3, true)
	out = buf.String()
	assert.Equal(t, 4, strings.Count(out, "\x1b[0m  "))
	assert.NotContains(t, out, "[]")
}

func TestDrawPieceIsItsCells(t *testing.T) {
	var viaPiece, viaCells bytes.Buffer

	New(&viaPiece).DrawPiece(piece.T, 1, 5, 4, false)

	cells := New(&viaCells)
	for _, c := range piece.Cells(piece.T, 1, 5, 4) {
		cells.DrawCell(c.Row, c.Col, piece.T.Color())
	}
	assert.Equal(t, viaCells.String(), viaPiece.String())
}

func TestDrawFrame(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).DrawFrame()
	out := buf.String()

	edge := "+" + strings.Repeat("-", 20) + "+"
	assert.True(t, strings.HasPrefix(out, "\x1b[1m\x1b[1;1H"+edge))
	assert.Contains(t, out, "\x1b[22;1H"+edge)
	assert.Contains(t, out, "\x1b[2;1H|\x1b[2;22H|")
	assert.Contains(t, out, "\x1b[21;1H|\x1b[21;22H|")
	assert.True(t, strings.HasSuffix(out, "\x1b[0m"))
}

func TestDrawBoard(t *testing.T) {
	var buf bytes.Buffer
	b := board.New()
	b.Set(19, 0, 31)

	New(&buf).DrawBoard(b)
	out := buf.String()

	assert.Equal(t, 1, strings.Count(out, "[]"))
	assert.Contains(t, out, "\x1b[21;2H\x1b[31m[]")
	assert.Equal(t, board.Rows*board.Cols-1, strings.Count(out, "\x1b[0m  "))
}

func TestDrawSidebar(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).DrawSidebar(Info{Score: 1200, Lines: 12, Level: 1, Next: piece.O})
	out := buf.String()

	assert.Contains(t, out, "\x1b[2;25HTETRIS")
	assert.Contains(t, out, "\x1b[4;25HSCORE\x1b[5;25H1200     ")
	assert.Contains(t, out, "\x1b[7;25HLINES\x1b[8;25H12     ")
	assert.Contains(t, out, "\x1b[10;25HLEVEL\x1b[11;25H1     ")
	assert.Contains(t, out, "\x1b[13;25HNEXT")
	assert.Contains(t, out, "\x1b[14;25H        ")
	assert.Contains(t, out, "\x1b[14;25H\x1b[33m[]")
	assert.Contains(t, out, "\x1b[15;27H\x1b[33m[]")
	assert.Contains(t, out, "\x1b[19;25HKEYS")
	assert.Contains(t, out, "\x1b[23;25HQ    QUIT")
}

func TestDrawGameOver(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).DrawGameOver(300)

	assert.Equal(t, "\x1b[12;3H\x1b[1mGAME OVER\x1b[0m\x1b[13;3HSCORE: 300\x1b[24;1H", buf.String())
}

func TestClear(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Clear()
	assert.Equal(t, "\x1b[2J\x1b[H", buf.String())
}

type failWriter struct{}

var errLinkDown = errors.New("link down")

func (failWriter) Write(p []byte) (int, error) { return 0, errLinkDown }

func TestWriteErrorIsSticky(t *testing.T) {
	r := New(failWriter{})
	assert.NoError(t, r.Err())

	r.DrawCell(0, 0, 31)
	r.DrawFrame()

	assert.ErrorIs(t, r.Err(), errLinkDown)
}
