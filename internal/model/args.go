package model

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/primeoasis/oasis/internal/desert"
)

// RangeArgs are the parameters of `range <start> [<end>] <step>`. All three
// values are n of lcm(1..n); End defaults to 2*Start.
type RangeArgs struct {
	StartN int
	EndN   int // 0 when omitted
	StepN  int

	Start *big.Int
	End   *big.Int
	Step  *big.Int
}

// ParseRange parses and validates the range mode arguments.
func ParseRange(args []string) (RangeArgs, error) {
	var ret RangeArgs
	var code int
	var err error
	switch len(args) {
	case 2:
		code = CodeRangeShort
		if ret.StartN, err = parseN(code, "start", args[0]); err != nil {
			return RangeArgs{}, err
		}
		if ret.StepN, err = parseN(code, "step", args[1]); err != nil {
			return RangeArgs{}, err
		}
		ret.Start = desert.LCM(ret.StartN)
		ret.End = new(big.Int).Add(ret.Start, ret.Start)
		ret.Step = desert.LCM(ret.StepN)
	case 3:
		code = CodeRangeLong
		if ret.StartN, err = parseN(code, "start", args[0]); err != nil {
			return RangeArgs{}, err
		}
		if ret.EndN, err = parseN(code, "end", args[1]); err != nil {
			return RangeArgs{}, err
		}
		if ret.StepN, err = parseN(code, "step", args[2]); err != nil {
			return RangeArgs{}, err
		}
		ret.Start = desert.LCM(ret.StartN)
		ret.End = desert.LCM(ret.EndN)
		ret.Step = desert.LCM(ret.StepN)
		if ret.End.Cmp(big.NewInt(3)) < 0 {
			return RangeArgs{}, configErrorf(code, "end lcm(1..%d) must be at least 3", ret.EndN)
		}
		if ret.End.Cmp(ret.Start) < 0 {
			return RangeArgs{}, configErrorf(code, "end lcm(1..%d) is below start lcm(1..%d)", ret.EndN, ret.StartN)
		}
	default:
		return RangeArgs{}, configErrorf(CodeArgCount, "expected 2 or 3 arguments, got %d", len(args))
	}

	if ret.Start.Cmp(big.NewInt(2)) < 0 {
		return RangeArgs{}, configErrorf(code, "start lcm(1..%d) must be at least 2", ret.StartN)
	}
	if ret.Step.Cmp(big.NewInt(2)) < 0 {
		return RangeArgs{}, configErrorf(code, "step lcm(1..%d) must be at least 2", ret.StepN)
	}
	return ret, nil
}

// DesertArgs are the parameters of `desert d<n> [x<offset>] [<count>]`.
type DesertArgs struct {
	N      int
	Offset uint64
	Count  uint64
	Desert *big.Int
}

// ParseDesert parses and validates the indexed mode arguments.
func ParseDesert(args []string) (DesertArgs, error) {
	valueCode, prefixCode := CodeDesertValue, CodeDesertPrefix
	switch len(args) {
	case 1:
		valueCode, prefixCode = CodeDesertSingleValue, CodeDesertSinglePrefix
	case 2, 3:
	default:
		return DesertArgs{}, configErrorf(CodeArgCount, "expected 1 to 3 arguments, got %d", len(args))
	}

	ret := DesertArgs{Offset: 1, Count: 1}
	d, ok := strings.CutPrefix(args[0], "d")
	if !ok {
		return DesertArgs{}, configErrorf(prefixCode, "desert %q must start with d", args[0])
	}
	var err error
	if ret.N, err = parseN(valueCode, "desert", d); err != nil {
		return DesertArgs{}, err
	}

	rest := args[1:]
	if len(rest) > 0 {
		if x, ok := strings.CutPrefix(rest[0], "x"); ok {
			ret.Offset, err = parseUint(x)
			if err != nil {
				return DesertArgs{}, configErrorf(CodeText, "offset %q: %s", rest[0], err)
			}
			rest = rest[1:]
		} else if len(rest) == 2 {
			return DesertArgs{}, configErrorf(prefixCode, "offset %q must start with x", rest[0])
		}
	}
	if len(rest) == 1 {
		ret.Count, err = parseUint(rest[0])
		if err != nil {
			return DesertArgs{}, configErrorf(CodeText, "count %q: %s", rest[0], err)
		}
	}

	ret.Desert = desert.LCM(ret.N)
	switch {
	case ret.Desert.Cmp(big.NewInt(2)) < 0:
		return DesertArgs{}, configErrorf(valueCode, "desert lcm(1..%d) must be at least 2", ret.N)
	case ret.Offset < 1:
		return DesertArgs{}, configErrorf(valueCode, "offset must be at least 1")
	case ret.Count < 1:
		return DesertArgs{}, configErrorf(valueCode, "count must be at least 1")
	case ret.Count-1 > math.MaxUint64-ret.Offset:
		return DesertArgs{}, configErrorf(valueCode, "offset %d + count %d overflows", ret.Offset, ret.Count)
	}
	return ret, nil
}

// parseN parses n of lcm(1..n), bounded by desert.MaxN.
func parseN(code int, name, s string) (int, error) {
	v, err := parseUint(s)
	if err != nil {
		return 0, configErrorf(CodeText, "%s %q: %s", name, s, err)
	}
	if v > desert.MaxN {
		return 0, configErrorf(code, "%s %d is above the limit %d", name, v, desert.MaxN)
	}
	return int(v), nil
}

var (
	errEmpty    = errors.New("empty value")
	errNotDigit = errors.New("not a decimal number")
	errTooLarge = errors.New("value out of range")
)

func parseUint(s string) (uint64, error) {
	if s == "" {
		return 0, errEmpty
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errNotDigit
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errTooLarge
	}
	return v, nil
}
