// Package piece holds the static tetromino geometry: seven kinds, four
// rotations each, four cells per rotation, and one display color per kind.
package piece

// Kind identifies one of the seven tetrominoes
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	L
	J
)

// Count is the number of piece kinds
const Count = 7

// Rotations is the number of rotation states per kind
const Rotations = 4

// Size is the number of cells in every piece
const Size = 4

// Offset is a (row, col) pair relative to a piece anchor
type Offset struct {
	Row int
	Col int
}

// Shape is the four cells of one rotation state
type Shape [Size]Offset

// ANSI foreground color per kind, also used as the locked board cell tag
var colors = [Count]uint8{36, 33, 35, 32, 31, 34, 37}

var names = [Count]string{"I", "O", "T", "S", "Z", "L", "J"}

// shapes[kind][rotation] in rows down, cols right
var shapes = [Count][Rotations]Shape{
	I: {
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
	},
	O: {
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	T: {
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 1}},
	},
	S: {
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
	},
	Z: {
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
	},
	L: {
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	},
	J: {
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
	},
}

// Valid reports whether k names a defined kind
func (k Kind) Valid() bool {
	return k < Count
}

// Color returns the ANSI foreground code for the kind
func (k Kind) Color() uint8 {
	return colors[k]
}

func (k Kind) String() string {
	if !k.Valid() {
		return "?"
	}
	return names[k]
}

// Shape returns the relative cells of a rotation state.
// Rotation is taken modulo Rotations.
func (k Kind) Shape(rotation int) Shape {
	return shapes[k][rotation&(Rotations-1)]
}

// Cells returns the absolute board cells of kind k at the given rotation and anchor
func Cells(k Kind, rotation, row, col int) Shape {
	cells := k.Shape(rotation)
	for i := range cells {
		cells[i].Row += row
		cells[i].Col += col
	}
	return cells
}

// NextRotation returns the clockwise successor of rotation
func NextRotation(rotation int) int {
	return (rotation + 1) % Rotations
}
