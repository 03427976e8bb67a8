// Package status keeps named session counters.
// Callers cache the counter pointer once and increment it lock-free.
package status

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// Counter names used by the game session
const (
	PiecesSpawned = "pieces_spawned"
	PiecesLocked  = "pieces_locked"
	LinesCleared  = "lines_cleared"
	MovesRejected = "moves_rejected"
	KeysIgnored   = "keys_ignored"
)

// Registry is the central counters facade
type Registry struct {
	Ints *MetricMap[atomic.Int64]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints: NewMetricMap[atomic.Int64](),
	}
}

// Counter returns the counter for key, creating it at zero
func (r *Registry) Counter(key string) *atomic.Int64 {
	return r.Ints.Get(key)
}

// Value reads a counter; absent keys read as zero
func (r *Registry) Value(key string) int64 {
	if !r.Ints.Has(key) {
		return 0
	}
	return r.Ints.Get(key).Load()
}

// String renders counters as "k=v" pairs in key order
func (r *Registry) String() string {
	var sb strings.Builder
	r.Ints.Range(func(key string, v *atomic.Int64) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatInt(v.Load(), 10))
	})
	return sb.String()
}
