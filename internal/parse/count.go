// Package parse validates user-supplied generation parameters.
package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Bounds of a valid count.
const (
	MinCount = 1
	MaxCount = 100
)

// Count is a pad or key count that passed ParseCount.
type Count uint8

// Int returns the count as an int.
func (c Count) Int() int {
	return int(c)
}

// Reason tells why an input was rejected.
type Reason int

// Rejection reasons, in the order they are checked.
const (
	ReasonNotANumber Reason = iota + 1
	ReasonTooLarge
	ReasonZero
	ReasonOutOfRange
)

// Sentinel errors matched by ValidationError.Is.
var (
	ErrNotANumber     = errors.New("not a number")
	ErrTooLarge       = errors.New("number too large")
	ErrZeroNotAllowed = errors.New("zero not allowed")
	ErrOutOfRange     = errors.New("number out of range")
)

// ValidationError reports a rejected count. Its Error text is shown to the
// user as is.
type ValidationError struct {
	Reason Reason
	Input  string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonNotANumber:
		return fmt.Sprintf("'%s' is not a valid number", e.Input)
	case ReasonTooLarge:
		return fmt.Sprintf("Number too large, must be between %d and %d", MinCount, MaxCount)
	case ReasonZero:
		return "Number of pads cannot be zero"
	case ReasonOutOfRange:
		return fmt.Sprintf("Number of pads must be between %d and %d", MinCount, MaxCount)
	default:
		return fmt.Sprintf("invalid count %q", e.Input)
	}
}

// Is matches the sentinel error for the reason.
func (e *ValidationError) Is(target error) bool {
	switch e.Reason {
	case ReasonNotANumber:
		return target == ErrNotANumber
	case ReasonTooLarge:
		return target == ErrTooLarge
	case ReasonZero:
		return target == ErrZeroNotAllowed
	case ReasonOutOfRange:
		return target == ErrOutOfRange
	default:
		return false
	}
}

// ParseCount parses s as a count in [MinCount, MaxCount].
//
// Input that is a valid 32-bit integer but does not fit in a byte (like
// "1000" or "-1") is reported as too large, not as not-a-number. Values
// that fit in a byte but exceed MaxCount are out of range.
func ParseCount(s string) (Count, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 8)
	if err != nil {
		if _, wideErr := strconv.ParseInt(s, 10, 32); wideErr == nil {
			return 0, &ValidationError{Reason: ReasonTooLarge, Input: s}
		}
		return 0, &ValidationError{Reason: ReasonNotANumber, Input: s}
	}

	switch {
	case v == 0:
		return 0, &ValidationError{Reason: ReasonZero, Input: s}
	case v > MaxCount:
		return 0, &ValidationError{Reason: ReasonOutOfRange, Input: s}
	default:
		return Count(v), nil
	}
}

// MustCount converts a known-good constant to a Count. It panics outside
// [MinCount, MaxCount] and is meant for defaults and tests.
func MustCount(n int) Count {
	if n < MinCount || n > MaxCount {
		panic(fmt.Sprintf("parse: count %d out of range", n))
	}
	return Count(n)
}
