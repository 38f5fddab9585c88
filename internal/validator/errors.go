package validator

import "errors"

var (
	ErrTimeout       = errors.New("validation timed out")
	ErrTerminated    = errors.New("terminated by signal")
	ErrTokenMismatch = errors.New("received token does not match")
	ErrInvalidUnit   = errors.New("invalid duration unit")
	ErrNoMagnitude   = errors.New("no duration value")
	ErrOverflow      = errors.New("duration overflows")
)
