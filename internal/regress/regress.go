// Package regress runs a table of searches in-process and checks that the
// expected hit and summary lines appear in their output.
package regress

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/primeoasis/oasis/internal/interrupt"
	"github.com/primeoasis/oasis/internal/log"
	"github.com/primeoasis/oasis/internal/model"
	"github.com/primeoasis/oasis/internal/search"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var defaultScenarios []byte

// Scenario is one search invocation. Args[0] is the mode, the rest are its
// positional arguments. Expect lists line prefixes which must appear in the
// output in that order; other lines in between are ignored.
type Scenario struct {
	Number int      `yaml:"number"`
	Name   string   `yaml:"name"`
	Args   []string `yaml:"args"`
	Expect []string `yaml:"expect"`
	Long   bool     `yaml:"long,omitempty"`
}

// Status of a finished scenario.
type Status int

const (
	Passed Status = iota
	Failed
	Skipped
	Interrupted
)

func (s Status) String() string {
	switch s {
	case Passed:
		return "ok"
	case Failed:
		return "FAIL"
	case Skipped:
		return "skip"
	case Interrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the result of running one Scenario.
type Outcome struct {
	Scenario Scenario
	Status   Status
	Got      string // last line printed by the search
	Missing  string // first expected prefix not found
	Err      error
	Elapsed  time.Duration
}

// Default returns the embedded scenario table.
func Default() ([]Scenario, error) {
	return Load(bytes.NewReader(defaultScenarios))
}

// Load decodes a YAML list of scenarios.
func Load(r io.Reader) ([]Scenario, error) {
	var ret []Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ret); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding scenarios: %w", err)
	}
	for i, s := range ret {
		if len(s.Args) == 0 {
			return nil, fmt.Errorf("scenario %d %q: no arguments", s.Number, s.Name)
		}
		if len(s.Expect) == 0 {
			return nil, fmt.Errorf("scenario %d %q: empty expect", s.Number, s.Name)
		}
		for _, e := range s.Expect {
			if e == "" {
				return nil, fmt.Errorf("scenario %d %q: empty expected line", s.Number, s.Name)
			}
		}
		if s.Number == 0 {
			ret[i].Number = i + 1
		}
	}
	return ret, nil
}

// Runner executes scenarios with bounded parallelism. Each search is
// single threaded and owns its evaluator, so scenarios share nothing.
type Runner struct {
	Jobs    int  // <1 means runtime.NumCPU
	Long    bool // run scenarios marked long
	Options search.Options
}

// Run executes all scenarios and returns their outcomes in input order.
// Cancelling ctx interrupts the running searches at their next poll.
func (r Runner) Run(ctx context.Context, scenarios []Scenario) []Outcome {
	jobs := r.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	ret := make([]Outcome, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, s := range scenarios {
		if s.Long && !r.Long {
			ret[i] = Outcome{Scenario: s, Status: Skipped}
			continue
		}
		g.Go(func() error {
			ret[i] = r.run(gctx, s)
			return nil
		})
	}
	_ = g.Wait()
	return ret
}

func (r Runner) run(ctx context.Context, s Scenario) (ret Outcome) {
	ctx = log.ContextAttrs(ctx, slog.Group("scenario",
		slog.Int("number", s.Number),
		slog.String("name", s.Name),
	))
	ret.Scenario = s
	start := time.Now()
	defer func() {
		ret.Elapsed = time.Since(start)
	}()

	srch, err := search.Parse(search.Mode(s.Args[0]), s.Args[1:], interrupt.New(ctx, nil), r.Options)
	if err != nil {
		ret.Status, ret.Err = Failed, err
		return ret
	}

	var out bytes.Buffer
	res, err := srch.Run(ctx, &out)
	if err != nil {
		ret.Status, ret.Err = Failed, err
		return ret
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	ret.Got = lines[len(lines)-1]
	ret.Missing = missing(lines, s.Expect)
	switch {
	case res.Interrupted:
		ret.Status, ret.Err = Interrupted, model.ErrInterrupted
	case ret.Missing == "":
		ret.Status = Passed
	default:
		ret.Status = Failed
	}
	slog.DebugContext(ctx, "scenario done", "status", ret.Status.String(), "elapsed", time.Since(start))
	return ret
}

// missing returns the first expected prefix that does not match a line
// after the one matched by its predecessor, or "" when all of them match.
func missing(lines, expect []string) string {
	i := 0
	for _, e := range expect {
		for i < len(lines) && !strings.HasPrefix(lines[i], e) {
			i++
		}
		if i == len(lines) {
			return e
		}
		i++
	}
	return ""
}

// Summary counts outcomes per status.
type Summary struct {
	Passed, Failed, Skipped, Interrupted int
}

// OK reports whether nothing failed or was interrupted.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Interrupted == 0
}

// Print writes one block per outcome followed by a totals line, and returns
// the counts.
//
//	====< 0001 range:twins-six
//	ok (try=18, hit=14, twin=4)
func Print(w io.Writer, outcomes []Outcome) (Summary, error) {
	var sum Summary
	for _, o := range outcomes {
		if _, err := fmt.Fprintf(w, "====< %04d %s\n", o.Scenario.Number, o.Scenario.Name); err != nil {
			return sum, err
		}
		var err error
		switch o.Status {
		case Passed:
			sum.Passed++
			_, err = fmt.Fprintf(w, "ok %s\n", o.Got)
		case Skipped:
			sum.Skipped++
			_, err = fmt.Fprintln(w, "skip (long)")
		case Interrupted:
			sum.Interrupted++
			_, err = fmt.Fprintln(w, "interrupted")
		default:
			sum.Failed++
			if o.Err != nil {
				_, err = fmt.Fprintf(w, "FAIL: %s\n", o.Err)
			} else {
				_, err = fmt.Fprintf(w, "FAIL: missing %q, last line %q\n", o.Missing, o.Got)
			}
		}
		if err != nil {
			return sum, err
		}
	}
	_, err := fmt.Fprintf(w, "passed=%d failed=%d skipped=%d interrupted=%d\n",
		sum.Passed, sum.Failed, sum.Skipped, sum.Interrupted)
	return sum, err
}
