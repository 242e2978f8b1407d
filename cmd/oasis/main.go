package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/primeoasis/oasis/internal/log"
	"github.com/primeoasis/oasis/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	v        = viper.New()
	settings model.Settings
	trace    log.Trace
	runID    = uuid.New()
)

func main() {
	defaults := model.DefaultSettings()

	// root flags
	flags := rootCmd.PersistentFlags()
	flags.Int("rounds", defaults.Rounds, "Miller-Rabin rounds of every primality test")
	flags.Int("check-every", defaults.CheckEvery, "positions between two interrupt checks")
	flags.Uint64("max-hits", defaults.MaxHits, "stop after this many primes, 0 is unlimited")
	flags.Bool("verbose", false, "verbose logging")

	// never print messages
	rootCmd.SilenceErrors = true

	// read settings, setup logging
	rootCmd.PersistentPreRunE = initOasis

	checkCmd.Flags().StringVar(&flagScenarios, "scenarios", "", "YAML scenario file, the built-in table by default")
	checkCmd.Flags().BoolVar(&flagLong, "long", false, "run long scenarios too")
	checkCmd.Flags().IntVar(&flagJobs, "jobs", 0, "scenarios run in parallel, number of CPUs by default")

	rootCmd.AddCommand(rangeCmd)
	rootCmd.AddCommand(desertCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	os.Exit(exitCode(rootCmd.Execute()))
}

var rootCmd = &cobra.Command{
	Use:          "oasis",
	Short:        "Search primes next to the multiples of lcm(1..n)",
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "version provide version of an oasis",
	Run: func(cmd *cobra.Command, args []string) {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			fmt.Println("oasis: version info not available")
			return
		}
		fmt.Printf("oasis:  %s\n", info.Main.Version)
		fmt.Printf("go:     %s\n", info.GoVersion)
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				fmt.Printf("commit: %s\n", s.Value)
			case "vcs.time":
				fmt.Printf("date:   %s\n", s.Value)
			case "vcs.modified":
				fmt.Printf("dirty:  %s\n", s.Value)
			}
		}
		fmt.Println()
	},
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "(devel)"
	}
	return info.Main.Version
}

func initOasis(_ *cobra.Command, _ []string) error {
	for _, name := range []string{"rounds", "check-every", "max-hits", "verbose"} {
		if err := v.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	v.SetEnvPrefix("OASIS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("trace", "XPT_FLG"); err != nil {
		return fmt.Errorf("binding XPT_FLG: %w", err)
	}

	settings = model.DefaultSettings()
	if err := v.Unmarshal(&settings); err != nil {
		return &model.ConfigError{Code: model.CodeText, Msg: fmt.Sprintf("reading settings: %s", err)}
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	var err error
	trace, err = log.ParseTrace(settings.Trace)
	if err != nil {
		return &model.ConfigError{Code: model.CodeText, Msg: err.Error()}
	}

	// initialize logging
	slog.SetDefault(log.New(os.Stderr, settings.Verbose, trace))

	if trace != 0 {
		fmt.Printf("version: %s\n", version())
	}
	slog.Debug("oasis run", "run_id", runID.String(), "trace", trace.String())
	slog.Debug("oasis run", "settings", settings)
	return nil
}

// exitCode maps the error returned by a command to the process status and
// reports it on stdout.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var st *statusError
	if errors.As(err, &st) {
		return st.code
	}

	fmt.Printf("ERR: %s\n", err)
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Print(ue.usage)
	}
	var cfgErr *model.ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.ExitCode()
	}
	slog.Error("oasis failed", "run_id", runID.String(), "err", err)
	return 1
}

// usageError attaches the usage block of a command to a bad invocation.
type usageError struct {
	err   error
	usage string
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

// statusError ends the process with code after the command already
// reported the outcome.
type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string {
	return e.msg
}
