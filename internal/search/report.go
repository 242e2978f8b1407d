package search

import (
	"fmt"
	"io"
	"math/big"

	"github.com/primeoasis/oasis/internal/model"
)

// Reporter renders the output of one search mode.
type Reporter interface {
	Hit(w io.Writer, h model.Hit) error
	Interrupted(w io.Writer, pit *big.Int) error
	Summary(w io.Writer, s model.Stats) error
}

// RangeReporter prints range mode output:
//
//	oasis prime  = 11
//	oasis primes = 13
//	(try=18, hit=14, twin=4)
type RangeReporter struct{}

func (RangeReporter) Hit(w io.Writer, h model.Hit) error {
	marker := ' '
	if h.Twin {
		marker = 's'
	}
	_, err := fmt.Fprintf(w, "oasis prime%c = %s\n", marker, h.Value)
	return err
}

func (RangeReporter) Interrupted(w io.Writer, pit *big.Int) error {
	return interrupted(w, pit)
}

func (RangeReporter) Summary(w io.Writer, s model.Stats) error {
	_, err := fmt.Fprintf(w, "(try=%d, hit=%d, twin=%d)\n", s.Tries, s.Hits, s.Twins)
	return err
}

// DesertReporter prints indexed mode output:
//
//	d6*1-1 = 59
//	d6*1+1 = 61
//	{ oases d6 x1 1: try=2, hit=2(100.0%) }
type DesertReporter struct {
	N      int
	Offset uint64
	Count  uint64
}

func (r DesertReporter) Hit(w io.Writer, h model.Hit) error {
	sign := '+'
	if h.Sign < 0 {
		sign = '-'
	}
	_, err := fmt.Fprintf(w, "d%d*%d%c1 = %s\n", r.N, h.Label, sign, h.Value)
	return err
}

func (DesertReporter) Interrupted(w io.Writer, pit *big.Int) error {
	return interrupted(w, pit)
}

func (r DesertReporter) Summary(w io.Writer, s model.Stats) error {
	_, err := fmt.Fprintf(w, "{ oases d%d x%d %d: try=%d, hit=%d(%2.1f%%) }\n",
		r.N, r.Offset, r.Count, s.Tries, s.Hits, s.HitRate())
	return err
}

func interrupted(w io.Writer, pit *big.Int) error {
	_, err := fmt.Fprintf(w, "\n\n*** Interrupted by user ***\nCurrent position: pit = %s\n", pit)
	return err
}
