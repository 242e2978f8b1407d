package model

import (
	"errors"
	"fmt"
)

var (
	ErrCounterOverflow = errors.New("counter overflow")
	ErrInterrupted     = errors.New("interrupted")
)

// Configuration error codes. Range mode uses ArgCount, RangeShort and
// RangeLong; desert mode uses ArgCount, DesertValue, DesertPrefix,
// DesertSingleValue and DesertSinglePrefix. Text applies to both.
const (
	CodeArgCount           = -1
	CodeRangeShort         = -2 // range: <start> <step>
	CodeRangeLong          = -3 // range: <start> <end> <step>
	CodeDesertValue        = -2 // desert: with offset or count
	CodeDesertPrefix       = -3 // desert: with offset or count
	CodeDesertSingleValue  = -4 // desert: d<n> only
	CodeDesertSinglePrefix = -5 // desert: d<n> only
	CodeText               = -6 // non numeric text, bad flag value
)

// ConfigError is a problem with the command line or settings, detected
// before any search work is done.
type ConfigError struct {
	Code int
	Msg  string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return e.Msg
}

// ExitCode maps the negative error code to a process exit status.
func (e *ConfigError) ExitCode() int {
	return -e.Code
}

func configErrorf(code int, format string, args ...any) error {
	return &ConfigError{Code: code, Msg: fmt.Sprintf(format, args...)}
}
