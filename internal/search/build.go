package search

import (
	"fmt"

	"github.com/primeoasis/oasis/internal/candidate"
	"github.com/primeoasis/oasis/internal/model"
)

// Mode names a command shape.
type Mode string

const (
	ModeRange  Mode = "range"
	ModeDesert Mode = "desert"
)

// ForRange builds the search of `range <start> [<end>] <step>`.
func ForRange(a model.RangeArgs, poller Poller, opts Options) (*Search, error) {
	r, err := candidate.NewRange(a.Start, a.End, a.Step)
	if err != nil {
		return nil, err
	}
	return New(r.All(), poller, RangeReporter{}, opts), nil
}

// ForDesert builds the search of `desert d<n> [x<offset>] [<count>]`.
func ForDesert(a model.DesertArgs, poller Poller, opts Options) (*Search, error) {
	x, err := candidate.NewIndexed(a.Desert, a.Offset, a.Count)
	if err != nil {
		return nil, err
	}
	rep := DesertReporter{N: a.N, Offset: a.Offset, Count: a.Count}
	return New(x.All(), poller, rep, opts), nil
}

// Parse builds a search from a mode and its positional arguments.
// Argument problems are returned as *model.ConfigError.
func Parse(mode Mode, args []string, poller Poller, opts Options) (*Search, error) {
	switch mode {
	case ModeRange:
		a, err := model.ParseRange(args)
		if err != nil {
			return nil, err
		}
		return ForRange(a, poller, opts)
	case ModeDesert:
		a, err := model.ParseDesert(args)
		if err != nil {
			return nil, err
		}
		return ForDesert(a, poller, opts)
	default:
		return nil, &model.ConfigError{Code: model.CodeText, Msg: fmt.Sprintf("unknown mode %q", mode)}
	}
}
