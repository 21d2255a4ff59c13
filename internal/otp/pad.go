// Package otp models one-time pads: generation of random key digits, the
// pad collection and its text encoding, and file persistence.
package otp

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

// ErrEmptyKeys is returned when a pad is built without keys.
var ErrEmptyKeys = errors.New("pad must have at least one key")

// Pad is one generated set of key digits. It is immutable once built.
type Pad struct {
	id   string
	keys []uint8
}

// NewPad builds a pad, copying keys.
func NewPad(id string, keys []uint8) (*Pad, error) {
	if len(keys) == 0 {
		return nil, ErrEmptyKeys
	}
	return &Pad{id: id, keys: slices.Clone(keys)}, nil
}

// ID returns the pad identifier.
func (p *Pad) ID() string {
	return p.id
}

// Keys returns a copy of the key sequence.
func (p *Pad) Keys() []uint8 {
	return slices.Clone(p.keys)
}

// Len returns the number of keys.
func (p *Pad) Len() int {
	return len(p.keys)
}

// Groups splits the keys into groups of KeySize digits, the way pads are
// printed for manual use. The last group may be shorter.
func (p *Pad) Groups() []string {
	groups := make([]string, 0, (len(p.keys)+KeySize-1)/KeySize)
	for start := 0; start < len(p.keys); start += KeySize {
		end := min(start+KeySize, len(p.keys))
		var sb strings.Builder
		for _, k := range p.keys[start:end] {
			sb.WriteString(strconv.Itoa(int(k)))
		}
		groups = append(groups, sb.String())
	}
	return groups
}
