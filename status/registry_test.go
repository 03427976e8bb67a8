package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterPointerIsCached(t *testing.T) {
	r := NewRegistry()
	c := r.Counter(PiecesLocked)
	c.Add(2)

	assert.Same(t, c, r.Counter(PiecesLocked))
	assert.Equal(t, int64(2), r.Value(PiecesLocked))
	assert.Zero(t, r.Value("missing"))
	assert.False(t, r.Ints.Has("missing"), "Value must not create keys")
}

func TestConcurrentIncrements(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Counter(LinesCleared).Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), r.Value(LinesCleared))
}

func TestStringSorted(t *testing.T) {
	r := NewRegistry()
	r.Counter(PiecesSpawned).Add(3)
	r.Counter(LinesCleared).Add(1)

	assert.Equal(t, "lines_cleared=1 pieces_spawned=3", r.String())
	assert.Equal(t, 2, r.Ints.Count())
}
