package otp

import (
	"fmt"
	"strconv"

	"github.com/u8slvn/otp-76/internal/parse"
)

// Generation constants. Upper bounds are exclusive.
const (
	KeySize = 5
	MinKey  = 0
	MaxKey  = 10
	MinID   = 10000
	MaxID   = 99999
)

// RandomSource draws a uniform integer in [low, high).
type RandomSource interface {
	IntRange(low, high uint64) (uint64, error)
}

// Generator builds pads from a RandomSource.
type Generator struct {
	src RandomSource
}

// NewGenerator returns a Generator drawing from src.
func NewGenerator(src RandomSource) *Generator {
	return &Generator{src: src}
}

// GeneratePad draws an identifier in [MinID, MaxID) and nbKeys*KeySize
// digits in [MinKey, MaxKey). The identifier is drawn independently of
// the key digits.
func (g *Generator) GeneratePad(nbKeys parse.Count) (*Pad, error) {
	id, err := g.src.IntRange(MinID, MaxID)
	if err != nil {
		return nil, fmt.Errorf("drawing pad id: %w", err)
	}

	keys := make([]uint8, nbKeys.Int()*KeySize)
	for i := range keys {
		k, err := g.src.IntRange(MinKey, MaxKey)
		if err != nil {
			return nil, fmt.Errorf("drawing key %d: %w", i, err)
		}
		keys[i] = uint8(k) //nolint:gosec // G115: k < MaxKey
	}

	return NewPad(strconv.FormatUint(id, 10), keys)
}

// GeneratePads returns nbPads pads in generation order. Any failure aborts
// the whole batch.
func (g *Generator) GeneratePads(nbPads, nbKeys parse.Count) ([]*Pad, error) {
	pads := make([]*Pad, 0, nbPads.Int())
	for i := 0; i < nbPads.Int(); i++ {
		pad, err := g.GeneratePad(nbKeys)
		if err != nil {
			return nil, fmt.Errorf("generating pad %d of %d: %w", i+1, nbPads, err)
		}
		pads = append(pads, pad)
	}
	return pads, nil
}
