// Package board models the locked-cell playfield and the single legality
// test every move, rotation, and fall step goes through.
package board

import (
	"github.com/lixenwraith/vt-tetris/constants"
	"github.com/lixenwraith/vt-tetris/piece"
)

const (
	Rows = constants.BoardRows
	Cols = constants.BoardCols
)

// Cell is the color tag of a locked piece, 0 when empty
type Cell uint8

// Empty marks an unoccupied cell
const Empty Cell = 0

// Board is the fixed grid of locked cells. The active piece is never stored here until it locks.
type Board struct {
	cells [Rows][Cols]Cell
}

// New returns an empty board
func New() *Board {
	return &Board{}
}

// Reset empties every cell
func (b *Board) Reset() {
	b.cells = [Rows][Cols]Cell{}
}

// InBounds reports whether (row, col) lies on the grid
func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// At returns the cell at (row, col); out of range reads as Empty
func (b *Board) At(row, col int) Cell {
	if !InBounds(row, col) {
		return Empty
	}
	return b.cells[row][col]
}

// Set writes a cell; out of range writes are ignored
func (b *Board) Set(row, col int, c Cell) {
	if !InBounds(row, col) {
		return
	}
	b.cells[row][col] = c
}

// IsValid reports whether the piece fits: all four cells on the grid and unoccupied
func (b *Board) IsValid(k piece.Kind, rotation, row, col int) bool {
	for _, c := range piece.Cells(k, rotation, row, col) {
		if !InBounds(c.Row, c.Col) {
			return false
		}
		if b.cells[c.Row][c.Col] != Empty {
			return false
		}
	}
	return true
}

// Lock writes the piece's color tag into its four cells
func (b *Board) Lock(k piece.Kind, rotation, row, col int) {
	tag := Cell(k.Color())
	for _, c := range piece.Cells(k, rotation, row, col) {
		b.Set(c.Row, c.Col, tag)
	}
}

// RowFull reports whether every column of row is occupied
func (b *Board) RowFull(row int) bool {
	for c := 0; c < Cols; c++ {
		if b.cells[row][c] == Empty {
			return false
		}
	}
	return true
}

// ClearFullLines removes full rows bottom to top, shifting everything above down by one
// and re-examining the same index. Returns the number of rows removed.
func (b *Board) ClearFullLines() int {
	cleared := 0
	for r := Rows - 1; r >= 0; {
		if !b.RowFull(r) {
			r--
			continue
		}
		for dst := r; dst > 0; dst-- {
			b.cells[dst] = b.cells[dst-1]
		}
		b.cells[0] = [Cols]Cell{}
		cleared++
		// row 0 is blank after every shift, so even a completely full board terminates
	}
	return cleared
}

// Snapshot returns a copy of the grid for rendering and inspection
func (b *Board) Snapshot() [Rows][Cols]Cell {
	return b.cells
}

// Occupied counts non-empty cells
func (b *Board) Occupied() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if b.cells[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// FillRow occupies every column of row except those listed in holes
func (b *Board) FillRow(row int, tag Cell, holes ...int) {
	if row < 0 || row >= Rows {
		return
	}
	for c := 0; c < Cols; c++ {
		b.cells[row][c] = tag
	}
	for _, h := range holes {
		b.Set(row, h, Empty)
	}
}
