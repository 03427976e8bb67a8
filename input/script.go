package input

import (
	"io"
	"time"
)

// Chunk is a burst of bytes that becomes readable At a virtual offset
type Chunk struct {
	At   time.Duration
	Data []byte
}

// ScriptSource is a deterministic Source driven by a virtual clock.
// Waiting advances the clock instead of sleeping; OnAdvance mirrors each step
// so a mock time provider can stay in lockstep.
type ScriptSource struct {
	chunks    []Chunk
	buf       []byte
	now       time.Duration
	OnAdvance func(d time.Duration)
}

// NewScriptSource creates a source from chunks ordered by At
func NewScriptSource(chunks ...Chunk) *ScriptSource {
	return &ScriptSource{chunks: chunks}
}

// Keys is a single chunk available immediately
func Keys(s string) Chunk {
	return Chunk{Data: []byte(s)}
}

// Now returns the virtual elapsed time
func (s *ScriptSource) Now() time.Duration {
	return s.now
}

func (s *ScriptSource) advanceTo(t time.Duration) {
	if t <= s.now {
		return
	}
	d := t - s.now
	s.now = t
	if s.OnAdvance != nil {
		s.OnAdvance(d)
	}
}

func (s *ScriptSource) release() {
	for len(s.chunks) > 0 && s.chunks[0].At <= s.now {
		s.buf = append(s.buf, s.chunks[0].Data...)
		s.chunks = s.chunks[1:]
	}
}

// Ready implements Source. An exhausted script reports ready so the reader sees EOF.
func (s *ScriptSource) Ready() bool {
	s.release()
	return len(s.buf) > 0 || len(s.chunks) == 0
}

// WaitReady implements Source
func (s *ScriptSource) WaitReady(d time.Duration) bool {
	if s.Ready() {
		return true
	}
	target := s.now + d
	if s.chunks[0].At <= target {
		s.advanceTo(s.chunks[0].At)
		s.release()
		return true
	}
	s.advanceTo(target)
	return false
}

// ReadByte implements Source
func (s *ScriptSource) ReadByte() (byte, error) {
	s.release()
	if len(s.buf) == 0 {
		if len(s.chunks) == 0 {
			return 0, io.EOF
		}
		s.advanceTo(s.chunks[0].At)
		s.release()
	}
	b := s.buf[0]
	s.buf = s.buf[1:]
	return b, nil
}
