package constants

import "time"

// Board dimensions
const (
	BoardRows = 20
	BoardCols = 10
)

// Spawn anchor (top-center for a 4-wide bounding box)
const (
	SpawnRow = 0
	SpawnCol = BoardCols/2 - 2
)

// DefaultSeed is the generator seed used when none is configured
const DefaultSeed uint32 = 42

// Game Loop Timing
const (
	// FallBase is the level 0 fall interval
	FallBase = 1000 * time.Millisecond

	// FallFloor is the minimum fall interval regardless of level
	FallFloor = 25 * time.Millisecond

	// FallLevelDivider is the fraction of FallBase removed per level
	FallLevelDivider = 10

	// LinesPerLevel is the number of cleared lines per level step
	LinesPerLevel = 10

	// EscapeTimeout bounds the wait for each follow byte of an escape sequence
	EscapeTimeout = 50 * time.Millisecond

	// WaitSlice caps a single idle wait so cancellation is observed promptly
	WaitSlice = 100 * time.Millisecond
)

// LineScores is indexed by lines cleared at once
var LineScores = [5]int{0, 100, 300, 500, 800}
