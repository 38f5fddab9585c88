package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type unit struct {
	suffix string
	ms     uint64
}

// units are ordered from the largest, FormatTimeout picks the first exact one.
var units = []unit{
	{suffix: "d", ms: 24 * 60 * 60 * 1000},
	{suffix: "h", ms: 60 * 60 * 1000},
	{suffix: "m", ms: 60 * 1000},
	{suffix: "s", ms: 1000},
	{suffix: "ms", ms: 1},
}

// ParseTimeout parses a non-negative integer followed by one of the units ms,
// s, m, h or d, e.g. "10s" or "120000ms". The number may carry a leading "+".
// A bare "0" is accepted. Values that
// do not fit a time.Duration are rejected.
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	offset := strings.LastIndexFunc(s, func(r rune) bool {
		return r >= '0' && r <= '9'
	})
	if offset < 0 {
		return 0, fmt.Errorf("parse timeout %q: %w", s, ErrNoMagnitude)
	}

	rawMagnitude, suffix := s[:offset+1], s[offset+1:]

	// one explicit plus sign is allowed, as in "+5s"
	magnitude, err := strconv.ParseUint(strings.TrimPrefix(rawMagnitude, "+"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse timeout %q: %w", s, err)
	}

	if suffix == "" {
		if magnitude == 0 {
			return 0, nil
		}

		return 0, fmt.Errorf("parse timeout %q: %w: missing unit (expected one of ms, s, m, h or d)", s, ErrInvalidUnit)
	}

	mul, ok := unitMillis(suffix)
	if !ok {
		return 0, fmt.Errorf("parse timeout %q: %w %q (expected one of ms, s, m, h or d)", s, ErrInvalidUnit, suffix)
	}

	const maxMillis = uint64(math.MaxInt64 / int64(time.Millisecond))

	if magnitude > maxMillis/mul {
		return 0, fmt.Errorf("parse timeout %q: %w when converted to ms", s, ErrOverflow)
	}

	return time.Duration(magnitude*mul) * time.Millisecond, nil
}

// FormatTimeout renders d with the largest unit dividing it exactly. Sub
// millisecond precision is truncated.
func FormatTimeout(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	ms := uint64(d / time.Millisecond)
	if ms == 0 {
		return "0ms"
	}

	for _, u := range units {
		if ms%u.ms == 0 {
			return strconv.FormatUint(ms/u.ms, 10) + u.suffix
		}
	}

	return strconv.FormatUint(ms, 10) + "ms"
}

func unitMillis(suffix string) (uint64, bool) {
	for _, u := range units {
		if u.suffix == suffix {
			return u.ms, true
		}
	}

	return 0, false
}

// TimeoutValue is a command line flag holding a duration in the timeout grammar.
type TimeoutValue struct {
	d *time.Duration
}

// NewTimeoutValue binds the flag to d and sets its default.
func NewTimeoutValue(d *time.Duration, defaultValue time.Duration) *TimeoutValue {
	*d = defaultValue

	return &TimeoutValue{d: d}
}

func (v *TimeoutValue) String() string {
	if v == nil || v.d == nil {
		return ""
	}

	return FormatTimeout(*v.d)
}

func (v *TimeoutValue) Set(s string) error {
	d, err := ParseTimeout(s)
	if err != nil {
		return err
	}

	*v.d = d

	return nil
}

func (v *TimeoutValue) Type() string {
	return "duration"
}
