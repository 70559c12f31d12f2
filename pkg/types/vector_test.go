package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowAccessors(t *testing.T) {
	r := Row{1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 1, 0}
	assert.Equal(t, Bits{1, 0, 0}, r.Increments(PauliX))
	assert.Equal(t, Bits{0, 1, 0}, r.Flags(PauliX))
	assert.Equal(t, Bits{0, 0, 1}, r.Increments(PauliZ))
	assert.Equal(t, Bits{1, 1, 0}, r.Flags(PauliZ))
}

func TestVectorUnmaskedStripsPadding(t *testing.T) {
	pad := Row{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
	v := Vector{{1}, {0, 1}, pad, pad}
	got, err := v.Unmasked()
	require.NoError(t, err)
	assert.Equal(t, Vector{{1}, {0, 1}}, got)
}

func TestVectorUnmaskedRejectsMixedRows(t *testing.T) {
	v := Vector{{1, -1}}
	_, err := v.Unmasked()
	assert.ErrorIs(t, err, ErrInvalidBit)

	v = Vector{{2}}
	_, err = v.Unmasked()
	assert.ErrorIs(t, err, ErrInvalidBit)
}
