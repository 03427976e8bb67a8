// Package render draws the playfield and info block with raw VT100 sequences.
//
// Every call writes immediately and flushes; there is no frame buffer and no
// diffing. Coordinates passed in are board cells (row, col from 0), converted
// here to 1-based terminal positions.
package render

import (
	"bufio"
	"io"

	"github.com/lixenwraith/vt-tetris/board"
	"github.com/lixenwraith/vt-tetris/constants"
	"github.com/lixenwraith/vt-tetris/piece"
	"github.com/lixenwraith/vt-tetris/terminal"
)

// Info is the sidebar content
type Info struct {
	Score int
	Lines int
	Level int
	Next  piece.Kind
}

// Renderer writes to a single terminal stream
type Renderer struct {
	w   *bufio.Writer
	err error
}

// New creates a renderer on w
func New(w io.Writer) *Renderer {
	return &Renderer{w: bufio.NewWriterSize(w, 4096)}
}

// Err returns the first write error; drawing after an error is silently dropped
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) flush() {
	if err := r.w.Flush(); err != nil && r.err == nil {
		r.err = err
	}
}

func (r *Renderer) moveTo(row, col int) {
	terminal.WriteCursorPos(r.w, row, col)
}

// cellPos converts a board cell to its terminal position
func cellPos(row, col int) (int, int) {
	return constants.BoardTop + row, constants.BoardLeft + col*constants.CellWidth
}

func (r *Renderer) cell(row, col int, color uint8) {
	r.moveTo(cellPos(row, col))
	if color != 0 {
		terminal.WriteSGR(r.w, int(color))
		r.w.WriteString(constants.GlyphCell)
	} else {
		r.w.Write(terminal.SeqReset)
		r.w.WriteString(constants.GlyphEmpty)
	}
	r.w.Write(terminal.SeqReset)
}

// Clear erases the screen
func (r *Renderer) Clear() {
	r.w.Write(terminal.SeqClear)
	r.flush()
}

// DrawCell draws one board cell; color 0 erases it
func (r *Renderer) DrawCell(row, col int, color uint8) {
	r.cell(row, col, color)
	r.flush()
}

// DrawPiece draws or erases the four cells of a piece
func (r *Renderer) DrawPiece(k piece.Kind, rotation, row, col int, erase bool) {
	color := k.Color()
	if erase {
		color = 0
	}
	for _, c := range piece.Cells(k, rotation, row, col) {
		r.DrawCell(c.Row, c.Col, color)
	}
}

// DrawFrame draws the bold border around the board
func (r *Renderer) DrawFrame() {
	left := constants.BoardLeft - 1
	right := constants.BoardLeft + constants.BoardCols*constants.CellWidth

	r.w.Write(terminal.SeqBold)
	r.horizontalEdge(constants.BoardTop-1, left)
	for row := 0; row < constants.BoardRows; row++ {
		r.moveTo(constants.BoardTop+row, left)
		r.w.WriteByte('|')
		r.moveTo(constants.BoardTop+row, right)
		r.w.WriteByte('|')
	}
	r.horizontalEdge(constants.BoardTop+constants.BoardRows, left)
	r.w.Write(terminal.SeqReset)
	r.flush()
}

func (r *Renderer) horizontalEdge(row, col int) {
	r.moveTo(row, col)
	r.w.WriteByte('+')
	for c := 0; c < constants.BoardCols; c++ {
		r.w.WriteString("--")
	}
	r.w.WriteByte('+')
}

// DrawBoard redraws every grid cell from the locked state
func (r *Renderer) DrawBoard(b *board.Board) {
	grid := b.Snapshot()
	for row := range grid {
		for col, c := range grid[row] {
			r.cell(row, col, uint8(c))
		}
	}
	r.flush()
}

// DrawSidebar redraws score, lines, level, next preview and the key legend
func (r *Renderer) DrawSidebar(info Info) {
	r.label(constants.SidebarTitleRow, "TETRIS")
	r.label(constants.SidebarScoreRow, "SCORE")
	r.number(constants.SidebarScoreRow+1, info.Score)
	r.label(constants.SidebarLinesRow, "LINES")
	r.number(constants.SidebarLinesRow+1, info.Lines)
	r.label(constants.SidebarLevelRow, "LEVEL")
	r.number(constants.SidebarLevelRow+1, info.Level)
	r.label(constants.SidebarNextRow, "NEXT")
	r.preview(info.Next)

	r.label(constants.SidebarKeysRow, "KEYS")
	for i, line := range constants.KeyLegend {
		r.label(constants.SidebarKeysRow+1+i, line)
	}
	r.flush()
}

func (r *Renderer) label(row int, text string) {
	r.moveTo(constants.BoardTop+row, constants.SidebarCol)
	r.w.WriteString(text)
}

// number pads with spaces so a shorter value overwrites a longer one
func (r *Renderer) number(row, n int) {
	r.moveTo(constants.BoardTop+row, constants.SidebarCol)
	terminal.WriteInt(r.w, n)
	r.w.WriteString("     ")
}

func (r *Renderer) preview(k piece.Kind) {
	top := constants.BoardTop + constants.SidebarPreviewRow
	for row := 0; row < constants.PreviewRows; row++ {
		r.moveTo(top+row, constants.SidebarCol)
		for i := 0; i < constants.PreviewWidth; i++ {
			r.w.WriteByte(' ')
		}
	}
	if !k.Valid() {
		return
	}
	for _, c := range k.Shape(0) {
		r.moveTo(top+c.Row, constants.SidebarCol+c.Col*constants.CellWidth)
		terminal.WriteSGR(r.w, int(k.Color()))
		r.w.WriteString(constants.GlyphCell)
		r.w.Write(terminal.SeqReset)
	}
}

// DrawGameOver prints the final message over the board and parks the cursor below it
func (r *Renderer) DrawGameOver(score int) {
	row := constants.BoardTop + constants.BoardRows/2
	col := constants.BoardLeft + 1

	r.moveTo(row, col)
	r.w.Write(terminal.SeqBold)
	r.w.WriteString("GAME OVER")
	r.w.Write(terminal.SeqReset)

	r.moveTo(row+1, col)
	r.w.WriteString("SCORE: ")
	terminal.WriteInt(r.w, score)

	r.moveTo(constants.BoardTop+constants.BoardRows+2, 1)
	r.flush()
}
