// Package search drives a desert/oasis search: it pulls positions from a
// candidate sequence, hands them to the oasis evaluator, writes every hit as
// soon as it is found and polls for interruption at a fixed cadence.
package search

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"math/big"
	"time"

	"github.com/primeoasis/oasis/internal/candidate"
	"github.com/primeoasis/oasis/internal/model"
	"github.com/primeoasis/oasis/internal/oasis"
)

// Poller reports whether the search has to stop. It must not block.
type Poller interface {
	Poll() bool
}

// Options tune a Search. Zero values select the defaults.
type Options struct {
	Rounds     int
	CheckEvery int
	MaxHits    uint64
}

// Result is the outcome of Run.
type Result struct {
	Stats       model.Stats
	Positions   uint64   // positions evaluated
	Last        *big.Int // pit of the last position reached, nil if none
	Interrupted bool     // stopped by the poller
	Truncated   bool     // stopped by MaxHits
	Elapsed     time.Duration
}

type Search struct {
	positions iter.Seq[candidate.Position]
	eval      *oasis.Evaluator
	poller    Poller
	reporter  Reporter
	opts      Options
}

func New(positions iter.Seq[candidate.Position], poller Poller, reporter Reporter, opts Options) *Search {
	if opts.Rounds < 1 {
		opts.Rounds = model.DefaultRounds
	}
	if opts.CheckEvery < 1 {
		opts.CheckEvery = model.DefaultCheckEvery
	}
	return &Search{
		positions: positions,
		eval:      oasis.New(opts.Rounds),
		poller:    poller,
		reporter:  reporter,
		opts:      opts,
	}
}

// Run executes the search and writes hits, an optional interruption notice
// and the summary line to w. The poller is consulted before every
// CheckEvery-th position, including the first one. Errors are only returned
// for failing writes and counter overflows, an interruption is reported in
// Result.
func (s *Search) Run(ctx context.Context, w io.Writer) (Result, error) {
	var res Result
	start := time.Now()
	every := uint64(s.opts.CheckEvery)

	emit := func(h model.Hit) error {
		return s.reporter.Hit(w, h)
	}

	for pos := range s.positions {
		res.Last = pos.Pit
		if pos.Index%every == 0 {
			stats := s.eval.Stats()
			slog.DebugContext(ctx, "progress",
				"position", pos.Index,
				"tries", stats.Tries,
				"hits", stats.Hits,
				"twins", stats.Twins,
				"elapsed", time.Since(start),
			)
			if s.poller != nil && s.poller.Poll() {
				res.Interrupted = true
				break
			}
		}

		if err := s.eval.Evaluate(pos, emit); err != nil {
			res.Stats = s.eval.Stats()
			return res, fmt.Errorf("evaluating position %d: %w", pos.Index, err)
		}
		res.Positions++

		if s.opts.MaxHits > 0 && s.eval.Stats().Hits >= s.opts.MaxHits {
			res.Truncated = true
			break
		}
	}

	res.Stats = s.eval.Stats()
	res.Elapsed = time.Since(start)

	if res.Interrupted {
		slog.InfoContext(ctx, "search interrupted", "pit", res.Last.String())
		if err := s.reporter.Interrupted(w, res.Last); err != nil {
			return res, fmt.Errorf("writing interruption notice: %w", err)
		}
	}
	if res.Truncated {
		slog.WarnContext(ctx, "hit limit reached", "max_hits", s.opts.MaxHits)
	}
	if err := s.reporter.Summary(w, res.Stats); err != nil {
		return res, fmt.Errorf("writing summary: %w", err)
	}
	slog.DebugContext(ctx, "search done",
		"positions", res.Positions,
		"tries", res.Stats.Tries,
		"hits", res.Stats.Hits,
		"twins", res.Stats.Twins,
		"elapsed", res.Elapsed,
	)
	return res, nil
}
