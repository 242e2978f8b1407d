package oasis_test

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var oasisPath string

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		slog.Warn("integration tests with -short are ignored")
		os.Exit(0)
	}

	if !isExecutable("oasis-ci") {
		slog.Warn("cannot locate oasis-ci binary, integration tests are skipped: run go build -race -cover -covermode=atomic -o oasis-ci ./cmd/oasis/ first")
		os.Exit(0)
	}

	var err error
	oasisPath, err = filepath.Abs("oasis-ci")
	if err != nil {
		slog.Error("can't get abspath for oasis-ci", "error", err)
		os.Exit(1)
	}
	coverDir, err := filepath.Abs("coverage")
	if err != nil {
		slog.Error("can't get value for GOCOVERDIR for oasis-ci", "error", err)
		os.Exit(1)
	}
	err = rmRfMkdirp(coverDir)
	if err != nil {
		slog.Error("can't reset GOCOVERDIR for oasis-ci", "error", err, "coverdir", coverDir)
		os.Exit(1)
	}

	err = os.Setenv("GOCOVERDIR", coverDir)
	if err != nil {
		slog.Error("can't set GOCOVERDIR env variable", "error", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func TestOasis(t *testing.T) {
	t.Parallel()

	type then struct {
		code   int
		stdout []string
	}
	var testCases = []struct {
		scenario string
		args     []string
		env      []string
		then     then
	}{
		{
			"range",
			[]string{"range", "3", "5", "3"},
			nil,
			then{0, []string{
				"Prime Oasis - Press Ctrl+C to interrupt\n",
				"oasis prime  = 11\noasis primes = 13\n",
				"(try=18, hit=14, twin=4)\n",
			}},
		},
		{
			"desert",
			[]string{"desert", "d6"},
			nil,
			then{0, []string{
				"Prime Oases - Press Ctrl+C to interrupt\n",
				"d6*1-1 = 59\nd6*1+1 = 61\n{ oases d6 x1 1: try=2, hit=2(100.0%) }\n",
			}},
		},
		{
			"trace prints version",
			[]string{"desert", "d3", "x1", "10"},
			[]string{"XPT_FLG=0x3"},
			then{0, []string{"version: ", "{ oases d3 x1 10: try=20, hit=16(80.0%) }\n"}},
		},
		{
			"max hits from env",
			[]string{"desert", "d3", "x1", "10"},
			[]string{"OASIS_MAX_HITS=3"},
			then{0, []string{"d3*2-1 = 11\nd3*2+1 = 13\n{ oases d3 x1 10: try=4, hit=4(100.0%) }\n"}},
		},
		{
			"argument count",
			[]string{"range", "5"},
			nil,
			then{1, []string{"ERR: expected 2 or 3 arguments, got 1\n", "---< USAGE:\n       oasis range"}},
		},
		{
			"end below start",
			[]string{"range", "4", "3", "2"},
			nil,
			then{3, []string{"ERR: ", "oasis range <start> [<end>] <step>"}},
		},
		{
			"missing d prefix",
			[]string{"desert", "6"},
			nil,
			then{5, []string{"ERR: desert \"6\" must start with d\n", "oasis desert d<n>"}},
		},
		{
			"not a number",
			[]string{"desert", "dx"},
			nil,
			then{6, []string{"ERR: desert \"x\": not a decimal number\n"}},
		},
		{
			"bad rounds",
			[]string{"desert", "d6", "--rounds", "0"},
			nil,
			then{6, []string{"ERR: rounds must be at least 1, got 0\n"}},
		},
		{
			"check",
			[]string{"check", "--jobs", "2"},
			nil,
			then{0, []string{"====< 0001 range:twins-six\nok (try=18, hit=14, twin=4)\n", "failed=0"}},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.scenario, func(t *testing.T) {
			t.Parallel()
			stdout, _, code := oasis(t, tt.env, tt.args...)
			require.Equal(t, tt.then.code, code, stdout)
			for _, s := range tt.then.stdout {
				require.Contains(t, stdout, s)
			}
		})
	}
}

func TestInterruptSignal(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 60*time.Second)
	t.Cleanup(cancel)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, oasisPath, "range", "701", "683")
	cmd.Stderr = &stderr
	pipe, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	r := bufio.NewReader(pipe)
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "=====") {
			break
		}
	}
	require.NoError(t, cmd.Process.Signal(os.Interrupt))

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	err = cmd.Wait()
	if err != nil {
		t.Logf("%s", stderr.String())
		require.NoError(t, err)
	}
	require.Contains(t, string(rest), "*** Interrupted by user ***\nCurrent position: pit = ")
	require.Contains(t, string(rest), "(try=")
}

func oasis(t *testing.T, env []string, args ...string) (string, string, int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), 60*time.Second)
	t.Cleanup(cancel)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, oasisPath, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return stdout.String(), stderr.String(), 0
	case errors.As(err, &exitErr):
		return stdout.String(), stderr.String(), exitErr.ExitCode()
	default:
		t.Logf("%s", stderr.String())
		require.NoError(t, err)
		return "", "", -1
	}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0111 != 0
}

func rmRfMkdirp(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
