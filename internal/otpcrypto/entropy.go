// Package otpcrypto provides the secure random source used to draw pad
// material, locked memory for secrets, and age encryption of pad files.
package otpcrypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

var (
	// ErrEntropyUnavailable is returned when the operating system entropy source cannot be read.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")

	// ErrInvalidRange is returned when the requested range is empty.
	ErrInvalidRange = errors.New("invalid range: high must be greater than low")
)

// Reader is the cryptographically secure random number generator.
// It wraps crypto/rand.Reader and is only replaced in tests.
//
//nolint:gochecknoglobals // Package-level RNG is required for testability
var Reader io.Reader = rand.Reader

// Source draws uniformly distributed integers from the OS entropy source.
// It holds no seed and cannot be made deterministic by the caller.
type Source struct {
	r io.Reader
}

// NewSource returns a Source backed by Reader.
func NewSource() *Source {
	return &Source{r: Reader}
}

// IntRange returns a uniformly distributed value v with low <= v < high.
func (s *Source) IntRange(low, high uint64) (uint64, error) {
	if high <= low {
		return 0, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, low, high)
	}

	// rand.Int rejects out-of-range samples, so the result carries no modulo bias.
	n, err := rand.Int(s.r, new(big.Int).SetUint64(high-low))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}

	return low + n.Uint64(), nil
}
