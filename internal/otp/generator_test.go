package otp_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/u8slvn/otp-76/internal/otp"
	"github.com/u8slvn/otp-76/internal/otpcrypto"
	"github.com/u8slvn/otp-76/internal/parse"
)

var errEntropyGone = errors.New("entropy gone")

// failingSource fails after a fixed number of successful draws.
type failingSource struct {
	remaining int
	draws     int
}

func (s *failingSource) IntRange(low, _ uint64) (uint64, error) {
	s.draws++
	if s.remaining == 0 {
		return 0, errEntropyGone
	}
	s.remaining--
	return low, nil
}

// recordingSource returns low for every draw and records the ranges asked for.
type recordingSource struct {
	ranges [][2]uint64
}

func (s *recordingSource) IntRange(low, high uint64) (uint64, error) {
	s.ranges = append(s.ranges, [2]uint64{low, high})
	return low, nil
}

func assertValidPad(t *testing.T, pad *otp.Pad, nbKeys int) {
	t.Helper()

	assert.Equal(t, nbKeys*otp.KeySize, pad.Len())

	id, err := strconv.Atoi(pad.ID())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, id, otp.MinID)
	assert.Less(t, id, otp.MaxID)

	for _, k := range pad.Keys() {
		assert.GreaterOrEqual(t, int(k), otp.MinKey)
		assert.Less(t, int(k), otp.MaxKey)
	}
}

func TestGeneratePad(t *testing.T) {
	t.Parallel()

	gen := otp.NewGenerator(otpcrypto.NewSource())

	for _, n := range []int{1, 5, 20, 100} {
		pad, err := gen.GeneratePad(parse.MustCount(n))
		require.NoError(t, err)
		assertValidPad(t, pad, n)
	}
}

func TestGeneratePads(t *testing.T) {
	t.Parallel()

	gen := otp.NewGenerator(otpcrypto.NewSource())

	pads, err := gen.GeneratePads(parse.MustCount(2), parse.MustCount(5))
	require.NoError(t, err)
	require.Len(t, pads, 2)
	for _, pad := range pads {
		assertValidPad(t, pad, 5)
	}

	pads, err = gen.GeneratePads(parse.MustCount(100), parse.MustCount(1))
	require.NoError(t, err)
	assert.Len(t, pads, 100)
}

func TestGeneratePad_DrawRanges(t *testing.T) {
	t.Parallel()

	src := &recordingSource{}
	pad, err := otp.NewGenerator(src).GeneratePad(parse.MustCount(2))
	require.NoError(t, err)

	require.Len(t, src.ranges, 1+2*otp.KeySize)
	assert.Equal(t, [2]uint64{otp.MinID, otp.MaxID}, src.ranges[0], "id is drawn first")
	for _, r := range src.ranges[1:] {
		assert.Equal(t, [2]uint64{otp.MinKey, otp.MaxKey}, r)
	}

	assert.Equal(t, strconv.Itoa(otp.MinID), pad.ID())
	assert.Equal(t, make([]uint8, 10), pad.Keys(), "id must not be taken from key material")
}

func TestGeneratePad_EntropyFailure(t *testing.T) {
	t.Parallel()

	t.Run("id draw", func(t *testing.T) {
		t.Parallel()
		pad, err := otp.NewGenerator(&failingSource{}).GeneratePad(parse.MustCount(1))
		require.ErrorIs(t, err, errEntropyGone)
		assert.Nil(t, pad)
	})

	t.Run("key draw", func(t *testing.T) {
		t.Parallel()
		pad, err := otp.NewGenerator(&failingSource{remaining: 3}).GeneratePad(parse.MustCount(1))
		require.ErrorIs(t, err, errEntropyGone)
		assert.Nil(t, pad)
	})
}

func TestGeneratePads_AbortsWholeBatch(t *testing.T) {
	t.Parallel()

	// Enough draws for exactly one pad of 1*KeySize keys plus its id.
	src := &failingSource{remaining: 1 + otp.KeySize}
	pads, err := otp.NewGenerator(src).GeneratePads(parse.MustCount(3), parse.MustCount(1))
	require.ErrorIs(t, err, errEntropyGone)
	assert.Nil(t, pads)
	assert.Contains(t, err.Error(), "pad 2 of 3")
}
