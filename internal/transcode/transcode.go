// Package transcode handles seeking in streams the host transcodes on the
// fly. Such streams cannot seek past what has been produced, so a seek is
// turned into a new request starting at the target offset.
package transcode

import (
	"math"
	"slices"
	"sync"
	"time"

	"github.com/llehouerou/lanshelf/internal/config"
	"github.com/llehouerou/lanshelf/internal/media"
)

const (
	// Debounce is the minimum interval between two reissued requests.
	Debounce = time.Second
	// MinTarget is the offset below which a seek is treated as a reset.
	MinTarget = 0.1

	selfSeekTolerance = 0.5
)

// Applies reports whether items of kind with extension ext are served
// transcoded under cfg.
func Applies(kind media.Kind, ext string, cfg config.KindConfig) bool {
	if !kind.Timed() || !cfg.Transcode {
		return false
	}
	return !slices.Contains(cfg.Passthrough, ext)
}

// Reissue asks for the stream to be requested again from Target. Resume is
// true when playback was running at the time of the seek.
type Reissue struct {
	Target float64
	Resume bool
}

// Seeker turns seeking signals on a transcoded stream into reissues.
type Seeker struct {
	mu         sync.Mutex
	last       time.Time
	pending    *Reissue
	applying   bool
	applyingAt float64
}

func NewSeeker() *Seeker {
	return &Seeker{}
}

// OnSeeking handles a seeking signal to target. It returns a reissue unless
// the target is a reset, a reissue was made less than Debounce ago, or the
// seek is the one issued while applying a previous reissue.
func (s *Seeker) OnSeeking(target float64, paused bool, now time.Time) (Reissue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.applying {
		s.applying = false
		if math.Abs(target-s.applyingAt) < selfSeekTolerance {
			return Reissue{}, false
		}
	}
	if target < MinTarget {
		return Reissue{}, false
	}
	if !s.last.IsZero() && now.Sub(s.last) < Debounce {
		return Reissue{}, false
	}
	s.last = now
	r := Reissue{Target: target, Resume: !paused}
	s.pending = &r
	return r, true
}

// TakePending returns and clears the pending reissue. The next seeking
// signal near its target is treated as self-induced.
func (s *Seeker) TakePending() (Reissue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Reissue{}, false
	}
	r := *s.pending
	s.pending = nil
	s.applying = true
	s.applyingAt = r.Target
	return r, true
}

// Pending reports whether a reissue is waiting for the new stream.
func (s *Seeker) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Reset forgets all state, for a new selection.
func (s *Seeker) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = time.Time{}
	s.pending = nil
	s.applying = false
	s.applyingAt = 0
}
