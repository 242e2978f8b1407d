// Package candidate produces the desert boundary positions (pits) a search
// walks through.
//
// Two shapes exist. A Range walks start, start+step, ... up to and including
// end; the first position has no left neighbour and a position equal to end
// has no right neighbour. An Indexed sequence walks desert*offset,
// desert*(offset+1), ... for count positions and is unbounded on both sides.
package candidate

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/big"
)

// Position is one desert boundary. Pit is freshly allocated for every
// position, consumers may keep it but must not modify it.
type Position struct {
	Index    uint64 // 0 based sequence number
	Label    uint64 // Index for Range, offset+Index for Indexed
	Pit      *big.Int
	HasLeft  bool // pit-1 is worth testing
	HasRight bool // pit+1 is worth testing
}

var ErrInvalid = errors.New("invalid candidate sequence")

// Range is the start/end/step sequence. End is inclusive.
type Range struct {
	start *big.Int
	end   *big.Int
	step  *big.Int
}

func NewRange(start, end, step *big.Int) (Range, error) {
	switch {
	case start == nil || end == nil || step == nil:
		return Range{}, fmt.Errorf("%w: nil bound", ErrInvalid)
	case start.Sign() <= 0:
		return Range{}, fmt.Errorf("%w: start %s is not positive", ErrInvalid, start)
	case step.Sign() <= 0:
		return Range{}, fmt.Errorf("%w: step %s is not positive", ErrInvalid, step)
	case end.Cmp(start) < 0:
		return Range{}, fmt.Errorf("%w: end is below start", ErrInvalid)
	}
	return Range{
		start: new(big.Int).Set(start),
		end:   new(big.Int).Set(end),
		step:  new(big.Int).Set(step),
	}, nil
}

// Len returns the number of positions, floor((end-start)/step)+1.
func (r Range) Len() *big.Int {
	n := new(big.Int).Sub(r.end, r.start)
	n.Quo(n, r.step)
	return n.Add(n, big.NewInt(1))
}

// All yields the positions in ascending order.
func (r Range) All() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		pit := new(big.Int).Set(r.start)
		for i := uint64(0); pit.Cmp(r.end) <= 0; i++ {
			pos := Position{
				Index:    i,
				Label:    i,
				Pit:      pit,
				HasLeft:  pit.Cmp(r.start) != 0,
				HasRight: pit.Cmp(r.end) != 0,
			}
			if !yield(pos) {
				return
			}
			pit = new(big.Int).Add(pit, r.step)
		}
	}
}

// Indexed is the desert*(offset+i) sequence for i in [0,count).
type Indexed struct {
	desert *big.Int
	offset uint64
	count  uint64
}

// NewIndexed requires desert >= 2, so desert*offset-1 is never below 1.
func NewIndexed(desert *big.Int, offset, count uint64) (Indexed, error) {
	switch {
	case desert == nil || desert.Cmp(big.NewInt(2)) < 0:
		return Indexed{}, fmt.Errorf("%w: desert must be at least 2", ErrInvalid)
	case offset < 1:
		return Indexed{}, fmt.Errorf("%w: offset must be at least 1", ErrInvalid)
	case count < 1:
		return Indexed{}, fmt.Errorf("%w: count must be at least 1", ErrInvalid)
	case count-1 > math.MaxUint64-offset:
		return Indexed{}, fmt.Errorf("%w: offset %d + count %d overflows", ErrInvalid, offset, count)
	}
	return Indexed{
		desert: new(big.Int).Set(desert),
		offset: offset,
		count:  count,
	}, nil
}

func (x Indexed) Len() uint64 {
	return x.count
}

// All yields the positions in ascending order. The running pit is advanced
// by addition, only the first one is a multiplication.
func (x Indexed) All() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		pit := new(big.Int).SetUint64(x.offset)
		pit.Mul(pit, x.desert)
		for i := uint64(0); i < x.count; i++ {
			pos := Position{
				Index:    i,
				Label:    x.offset + i,
				Pit:      pit,
				HasLeft:  true,
				HasRight: true,
			}
			if !yield(pos) {
				return
			}
			pit = new(big.Int).Add(pit, x.desert)
		}
	}
}
