package engine

import (
	"time"

	"github.com/lixenwraith/vt-tetris/constants"
)

// Score tracks points, total lines and level for one game
type Score struct {
	Points int
	Lines  int
	Level  int
}

// Award adds a simultaneous clear of n lines and returns the points gained.
// Clears beyond four score as four.
func (s *Score) Award(n int) int {
	if n <= 0 {
		return 0
	}
	idx := min(n, len(constants.LineScores)-1)
	pts := constants.LineScores[idx] * (s.Level + 1)
	s.Points += pts
	s.Lines += n
	s.Level = s.Lines / constants.LinesPerLevel
	return pts
}

// FallInterval returns max(floor, base - level*(base/10)).
// Signed arithmetic: high levels clamp to floor instead of wrapping.
func FallInterval(level int, base, floor time.Duration) time.Duration {
	step := base / constants.FallLevelDivider
	d := base - time.Duration(level)*step
	if d < floor {
		return floor
	}
	return d
}
