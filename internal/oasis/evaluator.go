// Package oasis tests the neighbours of desert boundaries for primality.
package oasis

import (
	"math/big"

	"github.com/primeoasis/oasis/internal/candidate"
	"github.com/primeoasis/oasis/internal/model"
)

// Evaluator tests pit-1 and pit+1 of consecutive positions. It remembers
// the previous pit+1 so the same integer is never tested twice when two
// deserts touch (step 2), and counts tries, hits and twins.
//
// An Evaluator belongs to a single search run and is not safe for
// concurrent use.
type Evaluator struct {
	rounds   int
	prevPlus *big.Int // nil until the first plus side is computed
	stats    model.Stats
	one      *big.Int
}

// New returns an Evaluator using rounds Miller-Rabin rounds per test.
func New(rounds int) *Evaluator {
	if rounds < 1 {
		rounds = model.DefaultRounds
	}
	return &Evaluator{
		rounds: rounds,
		one:    big.NewInt(1),
	}
}

// Evaluate tests the position and calls emit for every prime found, minus
// side first, right after each test returns. An emit error stops the
// evaluation and is returned unchanged.
func (e *Evaluator) Evaluate(pos candidate.Position, emit func(model.Hit) error) error {
	twin := false

	if pos.HasLeft {
		m1 := new(big.Int).Sub(pos.Pit, e.one)
		if e.prevPlus == nil || m1.Cmp(e.prevPlus) != 0 {
			e.stats.Tries++
			if m1.ProbablyPrime(e.rounds) {
				e.stats.Hits++
				twin = true
				if err := emit(model.Hit{Label: pos.Label, Sign: -1, Value: m1}); err != nil {
					return err
				}
			}
		}
	}

	if pos.HasRight {
		p1 := new(big.Int).Add(pos.Pit, e.one)
		e.prevPlus = p1
		e.stats.Tries++
		if p1.ProbablyPrime(e.rounds) {
			e.stats.Hits++
			if twin {
				if err := e.stats.AddTwin(); err != nil {
					return err
				}
			}
			if err := emit(model.Hit{Label: pos.Label, Sign: +1, Value: p1, Twin: twin}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats returns a copy of the counters accumulated so far.
func (e *Evaluator) Stats() model.Stats {
	return e.stats
}
