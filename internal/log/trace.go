package log

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Trace is the bit set read from the XPT_FLG environment variable.
type Trace uint32

const (
	TraceErr Trace = 1 << iota // errors
	TraceWrn                   // warnings
	TraceSnp                   // snapshots of the search state
	TraceTst                   // test harness details
)

// ParseTrace parses a hexadecimal bit set, with or without 0x prefix.
// An empty string is no tracing.
func ParseTrace(s string) (Trace, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing trace flags %q: %w", s, err)
	}
	return Trace(v), nil
}

func (t Trace) Has(bit Trace) bool {
	return t&bit != 0
}

// Level maps the most verbose bit to a slog level. Without any bit only
// warnings and errors are logged.
func (t Trace) Level() slog.Level {
	switch {
	case t.Has(TraceTst) || t.Has(TraceSnp):
		return slog.LevelDebug
	case t.Has(TraceWrn):
		return slog.LevelWarn
	case t.Has(TraceErr):
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func (t Trace) String() string {
	return fmt.Sprintf("0x%04x", uint32(t))
}
