package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/steane/pkg/types"
)

func sampleData(t *testing.T) *Data {
	t.Helper()
	d := New()
	appendAll(t, d,
		round(0, []int{0, 1, 0}, []int{0, 0, 0}),
		round(1, []int{0, 0, 1}, []int{0, 1, 0}),
		round(0, []int{1, 0, 0}, []int{0, 0, 0}),
		round(1, []int{0, 0, 1}, []int{1, 0, 0}),
	)
	return d
}

func TestToVectorLayout(t *testing.T) {
	v, err := sampleData(t).ToVector()
	require.NoError(t, err)
	want := types.Vector{
		{0, 1, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0},
		{1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0},
	}
	assert.Equal(t, want, v)
}

func TestToVectorPadding(t *testing.T) {
	d := sampleData(t)

	v, err := d.ToVector(WithPadding(4, -1))
	require.NoError(t, err)
	require.Len(t, v, 4)
	assert.True(t, v[2].Masked())
	assert.True(t, v[3].Masked())
	assert.False(t, v[1].Masked())

	v, err = d.ToVector(WithPadding(2, 0))
	require.NoError(t, err)
	assert.Len(t, v, 2)

	_, err = d.ToVector(WithPadding(1, 0))
	assert.ErrorIs(t, err, types.ErrPadTooShort)
}

func TestFromVectorRoundTrip(t *testing.T) {
	d := sampleData(t)
	v, err := d.ToVector(WithPadding(5, -1))
	require.NoError(t, err)

	back, err := FromVector(v)
	require.NoError(t, err)
	for _, p := range types.Bases {
		want, _ := d.Syndromes(p)
		got, _ := back.Syndromes(p)
		assert.Equal(t, want, got)
		wantFlags, _ := d.Flags(p)
		gotFlags, _ := back.Flags(p)
		assert.Equal(t, wantFlags, gotFlags)
	}
}

func TestFromVectorRejectsInvalidEntries(t *testing.T) {
	_, err := FromVector(types.Vector{{0, 0, 2}})
	assert.ErrorIs(t, err, types.ErrInvalidBit)
}

func TestHistoryRoundTrip(t *testing.T) {
	d := sampleData(t)
	back, err := FromHistory(d.History())
	require.NoError(t, err)
	assert.Equal(t, d, back)

	h := d.History()
	h.ZFlags = h.ZFlags[:1]
	_, err = FromHistory(h)
	assert.ErrorIs(t, err, types.ErrLengthMismatch)

	h = d.History()
	h.XSyndromes[1] = []int{1, 1}
	_, err = FromHistory(h)
	assert.ErrorIs(t, err, types.ErrInvalidShape)
}
