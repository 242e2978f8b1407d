package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/primeoasis/oasis/internal/log"
	"github.com/primeoasis/oasis/internal/regress"
	"github.com/primeoasis/oasis/internal/search"

	"github.com/spf13/cobra"
)

var (
	flagScenarios string // value of --scenarios
	flagLong      bool   // value of --long
	flagJobs      int    // value of --jobs
)

const exitInterrupted = 130

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "check runs the regression scenarios and compares their summaries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = log.ContextAttrs(ctx, slog.Group("oasis",
			slog.String("cmd", "check"),
			slog.String("run_id", runID.String()),
			slog.Int("pid", os.Getpid()),
		))
		return doCheck(ctx, os.Stdout)
	},
}

func doCheck(ctx context.Context, w io.Writer) error {
	scenarios, err := loadScenarios()
	if err != nil {
		return err
	}

	runner := regress.Runner{
		Jobs: flagJobs,
		Long: flagLong,
		Options: search.Options{
			Rounds:     settings.Rounds,
			CheckEvery: settings.CheckEvery,
		},
	}
	sum, err := regress.Print(w, runner.Run(ctx, scenarios))
	if err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	switch {
	case ctx.Err() != nil || sum.Interrupted > 0:
		return &statusError{code: exitInterrupted, msg: "check interrupted"}
	case !sum.OK():
		return &statusError{code: 1, msg: fmt.Sprintf("%d scenarios failed", sum.Failed)}
	}
	return nil
}

func loadScenarios() ([]regress.Scenario, error) {
	if flagScenarios == "" {
		return regress.Default()
	}
	f, err := os.Open(flagScenarios)
	if err != nil {
		return nil, fmt.Errorf("opening scenarios: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return regress.Load(f)
}
