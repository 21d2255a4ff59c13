package otp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"sort"

	"github.com/agnivade/levenshtein"
)

// ErrSerialization is returned when a pad collection cannot be encoded or decoded.
var ErrSerialization = errors.New("malformed pad collection")

// maxSuggestDistance is the largest edit distance offered by Suggest.
const maxSuggestDistance = 2

// Collection is an ordered group of pads.
//
// Identifiers are not required to be unique: Get returns the first match
// and Delete removes every match. A Collection is not safe for concurrent
// use; callers sharing one must serialize access.
type Collection struct {
	pads []*Pad
}

// NewCollection returns a collection holding pads in the given order.
func NewCollection(pads ...*Pad) *Collection {
	return &Collection{pads: slices.Clone(pads)}
}

// Add appends a pad. No duplicate check is made.
func (c *Collection) Add(pad *Pad) {
	c.pads = append(c.pads, pad)
}

// Get returns the first pad with the given id.
func (c *Collection) Get(id string) (*Pad, bool) {
	for _, pad := range c.pads {
		if pad.ID() == id {
			return pad, true
		}
	}
	return nil, false
}

// Delete removes every pad with the given id and returns how many were removed.
func (c *Collection) Delete(id string) int {
	before := len(c.pads)
	c.pads = slices.DeleteFunc(c.pads, func(pad *Pad) bool {
		return pad.ID() == id
	})
	return before - len(c.pads)
}

// IsEmpty reports whether the collection holds no pads.
func (c *Collection) IsEmpty() bool {
	return len(c.pads) == 0
}

// Len returns the number of pads.
func (c *Collection) Len() int {
	return len(c.pads)
}

// Pads returns the pads in insertion order.
func (c *Collection) Pads() []*Pad {
	return slices.Clone(c.pads)
}

// IDs returns the pad identifiers in insertion order.
func (c *Collection) IDs() []string {
	ids := make([]string, len(c.pads))
	for i, pad := range c.pads {
		ids[i] = pad.ID()
	}
	return ids
}

// Suggest returns the identifiers closest to an unknown id, nearest first.
func (c *Collection) Suggest(id string) []string {
	type candidate struct {
		id       string
		distance int
	}

	seen := make(map[string]bool)
	var candidates []candidate
	for _, pad := range c.pads {
		if seen[pad.ID()] {
			continue
		}
		seen[pad.ID()] = true

		if d := levenshtein.ComputeDistance(id, pad.ID()); d <= maxSuggestDistance {
			candidates = append(candidates, candidate{id: pad.ID(), distance: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	suggestions := make([]string, len(candidates))
	for i, cand := range candidates {
		suggestions[i] = cand.id
	}
	return suggestions
}

// collectionJSON is the persisted layout. Field names must not change.
type collectionJSON struct {
	Pads *[]padJSON `json:"pads"`
}

// padJSON stores keys as []int so they encode as a JSON number list
// rather than base64.
type padJSON struct {
	ID   string `json:"id"`
	Keys []int  `json:"keys"`
}

// MarshalJSON implements json.Marshaler.
func (c *Collection) MarshalJSON() ([]byte, error) {
	pads := make([]padJSON, len(c.pads))
	for i, pad := range c.pads {
		keys := make([]int, len(pad.keys))
		for j, k := range pad.keys {
			keys[j] = int(k)
		}
		pads[i] = padJSON{ID: pad.id, Keys: keys}
	}
	return json.Marshal(collectionJSON{Pads: &pads})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var raw collectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	if raw.Pads == nil {
		return fmt.Errorf("%w: missing pads field", ErrSerialization)
	}

	pads := make([]*Pad, 0, len(*raw.Pads))
	for i, p := range *raw.Pads {
		if p.ID == "" {
			return fmt.Errorf("%w: pad %d has no id", ErrSerialization, i)
		}

		keys := make([]uint8, len(p.Keys))
		for j, k := range p.Keys {
			if k < 0 || k > math.MaxUint8 {
				return fmt.Errorf("%w: pad %s key %d out of range: %d", ErrSerialization, p.ID, j, k)
			}
			keys[j] = uint8(k)
		}

		pad, err := NewPad(p.ID, keys)
		if err != nil {
			return fmt.Errorf("%w: pad %s: %w", ErrSerialization, p.ID, err)
		}
		pads = append(pads, pad)
	}

	c.pads = pads
	return nil
}

// ToText encodes the collection as JSON, preserving pad and key order.
func (c *Collection) ToText() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return string(data), nil
}

// FromText decodes a collection produced by ToText. Trailing data after the
// JSON document is rejected.
func FromText(text string) (*Collection, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))

	var c Collection
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, ErrSerialization) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after collection", ErrSerialization)
	}

	return &c, nil
}
