package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/steane/internal/code"
	"github.com/mesh-intelligence/steane/pkg/types"
)

func readout(syndrome, flag uint8) Measurement {
	return Measurement{code.AncillaQubit: syndrome, code.FlagQubit: flag, 0: 1}
}

func TestAppendRound(t *testing.T) {
	d := New()
	err := d.AppendRound([]Measurement{
		readout(1, 0), readout(1, 0), readout(0, 0),
		readout(0, 1), readout(0, 0), readout(1, 0),
	})
	require.NoError(t, err)

	xs, _ := d.Syndromes(types.PauliX)
	zs, _ := d.Syndromes(types.PauliZ)
	zf, _ := d.Flags(types.PauliZ)
	assert.Equal(t, []types.Bits{{1, 1, 0}}, xs)
	assert.Equal(t, []types.Bits{{0, 0, 1}}, zs)
	assert.Equal(t, []types.Bits{{1, 0, 0}}, zf)
}

func TestAppendRoundIsAtomic(t *testing.T) {
	d := New()
	round := []Measurement{
		readout(0, 0), readout(0, 0), readout(0, 0),
		readout(0, 0), readout(0, 0), {code.AncillaQubit: 1},
	}
	assert.ErrorIs(t, d.AppendRound(round), types.ErrInvalidShape)

	round[5] = readout(2, 0)
	assert.ErrorIs(t, d.AppendRound(round), types.ErrInvalidBit)

	assert.ErrorIs(t, d.AppendRound(round[:3]), types.ErrInvalidShape)

	n, err := d.Len()
	require.NoError(t, err)
	assert.Zero(t, n)
}
