package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/primeoasis/oasis/internal/interrupt"
	"github.com/primeoasis/oasis/internal/log"
	"github.com/primeoasis/oasis/internal/model"
	"github.com/primeoasis/oasis/internal/search"

	"github.com/spf13/cobra"
)

var rangeCmd = &cobra.Command{
	Use:   "range <start> [<end>] <step>",
	Short: "search primes next to the multiples of lcm(1..step) between lcm(1..start) and lcm(1..end)",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doSearch(cmd, search.ModeRange, args, rangeUsage)
	},
}

var desertCmd = &cobra.Command{
	Use:   "desert d<n> [x<offset>] [<count>]",
	Short: "search primes next to count consecutive multiples of lcm(1..n)",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doSearch(cmd, search.ModeDesert, args, desertUsage)
	},
}

const rangeUsage = `---< USAGE:
       oasis range <start> [<end>] <step>

---< DESCRIPTION:
       <start>  Start position: n for LCM(1,2,3,...,n)
       <end>    End position: n for LCM(1,2,3,...,n) (optional, defaults to start*2)
       <step>   Search step: n for LCM(1,2,3,...,n)
---< CAUTION:
       1) The value specified in the parameter is the value of n in lcm(1,2,3,...n).
       2) If you omit <end>, it will be set to <start>*2 (search from <start> to <start>*2).
       3) Both ends are searched, <start>-1 and <end>+1 are not.
---
`

const desertUsage = `---< USAGE:
       oasis desert d<n> [x<offset>] [<count>]

---< DESCRIPTION:
       d<n>       The central coordinates of the desert, LCM(1,2,3,...,n)
       x<offset>  First multiple of the desert to search (optional, defaults to 1)
       <count>    Number of deserts to search (optional, defaults to 1)
---< CAUTION:
       1) Since d<n> is a least common multiple, it may be the same value even if n changes.
       2) Both sides of every multiple are searched.
---< EXAMPLES:
       oasis desert d3
       oasis desert d691 701
       oasis desert d683 x484391 484391
---
`

func doSearch(cmd *cobra.Command, mode search.Mode, args []string, usage string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.ContextAttrs(ctx, slog.Group("oasis",
		slog.String("cmd", string(mode)),
		slog.String("run_id", runID.String()),
		slog.Int("pid", os.Getpid()),
	))

	keys, restore := openKeys(ctx, interrupt.OpenStdin)
	defer restore()
	return runSearch(ctx, os.Stdout, mode, args, usage, interrupt.New(ctx, keys), keys != nil)
}

// openKeys switches the terminal to raw mode for key interruption. Without
// a terminal the search only stops on signals; that is logged at info.
func openKeys(ctx context.Context, open func() (*interrupt.Terminal, error)) (interrupt.KeyReader, func()) {
	term, err := open()
	switch {
	case errors.Is(err, interrupt.ErrNotTerminal) || errors.Is(err, interrupt.ErrNotSupported):
		slog.InfoContext(ctx, "keyboard interrupt not available", "error", err)
		return nil, func() {}
	case err != nil:
		slog.WarnContext(ctx, "keyboard interrupt not available", "error", err)
		return nil, func() {}
	}
	return term, func() {
		if err := term.Restore(); err != nil {
			slog.WarnContext(ctx, "restoring terminal", "error", err)
		}
	}
}

func runSearch(ctx context.Context, w io.Writer, mode search.Mode, args []string, usage string, poller search.Poller, keys bool) error {
	if err := banner(w, mode, keys); err != nil {
		return err
	}

	opts := search.Options{
		Rounds:     settings.Rounds,
		CheckEvery: settings.CheckEvery,
		MaxHits:    settings.MaxHits,
	}
	s, err := search.Parse(mode, args, poller, opts)
	if err != nil {
		var cfgErr *model.ConfigError
		if errors.As(err, &cfgErr) {
			return &usageError{err: err, usage: usage}
		}
		return err
	}

	res, err := s.Run(ctx, w)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "search finished",
		"tries", res.Stats.Tries,
		"hits", res.Stats.Hits,
		"twins", res.Stats.Twins,
		"interrupted", res.Interrupted,
		"truncated", res.Truncated,
		"elapsed", res.Elapsed,
	)
	return nil
}

func banner(w io.Writer, mode search.Mode, keys bool) error {
	title := "Prime Oasis"
	if mode == search.ModeDesert {
		title = "Prime Oases"
	}
	how := "Press 'q', ESC, or Ctrl+C to interrupt"
	if !keys {
		how = "Press Ctrl+C to interrupt"
	}
	_, err := fmt.Fprintf(w, "%s - %s\n====================================================\n\n", title, how)
	return err
}
