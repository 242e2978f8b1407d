package model

import (
	"math"
	"math/big"
)

// Hit is an oasis prime found next to a desert boundary.
type Hit struct {
	Label uint64   // position index in range mode, desert multiplier in indexed mode
	Sign  int      // -1 for pit-1, +1 for pit+1
	Value *big.Int // the probable prime
	Twin  bool     // plus side whose minus side was prime at the same position
}

// Stats holds the running counters of one search. Counters never decrease.
type Stats struct {
	Tries uint64 `json:"tries" yaml:"tries"`
	Hits  uint64 `json:"hits" yaml:"hits"`
	Twins uint32 `json:"twins" yaml:"twins"`
}

// AddTwin increments the twin counter. It errors rather than wraps around.
func (s *Stats) AddTwin() error {
	if s.Twins == math.MaxUint32 {
		return ErrCounterOverflow
	}
	s.Twins++
	return nil
}

// HitRate returns hits/tries in percent, 0 when nothing was tried.
func (s Stats) HitRate() float64 {
	if s.Tries == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Tries) * 100.0
}
