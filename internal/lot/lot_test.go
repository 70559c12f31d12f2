package lot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/steane/internal/code"
	"github.com/mesh-intelligence/steane/pkg/types"
)

// allSyndromes enumerates the eight three-bit syndromes.
func allSyndromes() []types.Bits {
	out := make([]types.Bits, 0, 8)
	for i := 0; i < 8; i++ {
		out = append(out, types.Bits{uint8(i >> 2 & 1), uint8(i >> 1 & 1), uint8(i & 1)})
	}
	return out
}

func TestDecodeComplementaryPauli(t *testing.T) {
	d := New()

	qs, p, err := d.Decode(types.NewSyndrome(types.SyndromeX, 1, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, types.PauliZ, p)
	assert.Equal(t, types.Qubits{3}, qs)

	qs, p, err = d.Decode(types.NewSyndrome(types.SyndromeZ, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, types.PauliX, p)
	assert.Nil(t, qs)
}

func TestDecodeRejectsUnsupportedTypes(t *testing.T) {
	tests := []struct {
		name    string
		typ     types.SyndromeType
		wantErr error
	}{
		{name: "flag", typ: types.SyndromeFlag, wantErr: types.ErrFlagSyndrome},
		{name: "classical", typ: types.SyndromeClassical, wantErr: types.ErrClassicalSyndrome},
		{name: "unknown", typ: "Y", wantErr: types.ErrUnknownSyndromeType},
		{name: "empty", typ: "", wantErr: types.ErrUnknownSyndromeType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := New().Decode(types.Syndrome{Type: tt.typ, Bits: types.Bits{1, 0, 0}})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// The flagged decoder applies the same type rules.
	f, err := NewFlagged(code.XStabilizers()[code.Top])
	require.NoError(t, err)
	_, _, err = f.Decode(types.Syndrome{Type: types.SyndromeFlag})
	assert.ErrorIs(t, err, types.ErrFlagSyndrome)
}

func TestLookupCompleteness(t *testing.T) {
	d := New()
	for _, s := range allSyndromes() {
		qs := d.Lookup(s)
		if s == (types.Bits{}) {
			assert.Nil(t, qs)
			continue
		}
		require.Len(t, qs, 1, "syndrome %s", s)
		assert.GreaterOrEqual(t, qs[0], 0)
		assert.Less(t, qs[0], types.NumDataQubits)
	}
}

func TestLookupCorrectsEveryWeightOneError(t *testing.T) {
	d := New()
	for q := -1; q < types.NumDataQubits; q++ {
		var errs types.Qubits
		if q >= 0 {
			errs = types.Qubits{q}
		}
		syndrome, err := code.SyndromeOf(errs)
		require.NoError(t, err)

		residual, err := code.SyndromeOf(append(errs, d.Lookup(syndrome)...))
		require.NoError(t, err)
		assert.Equal(t, types.Bits{}, residual, "error on qubit %d", q)
	}
}

func TestFlaggedOverrideLocality(t *testing.T) {
	plain := New()
	for _, p := range types.Bases {
		stabs, err := code.Stabilizers(p)
		require.NoError(t, err)
		for _, stab := range stabs {
			f, err := NewFlagged(stab)
			require.NoError(t, err)
			assert.True(t, f.Flagged())

			key, target, ok := f.Override()
			require.True(t, ok)
			q := stab.Qubits()
			assert.Equal(t, types.Qubits{q[2], q[3]}, target, "%s", stab)

			differing := 0
			for _, s := range allSyndromes() {
				if !assert.ObjectsAreEqual(plain.Lookup(s), f.Lookup(s)) {
					differing++
					assert.Equal(t, key, s)
					assert.Equal(t, target, f.Lookup(s))
				}
			}
			assert.LessOrEqual(t, differing, 1, "%s", stab)
		}
	}
}

func TestFlaggedOverrideKeys(t *testing.T) {
	want := map[int]struct {
		key    types.Bits
		target types.Qubits
	}{
		code.Top:         {types.Bits{0, 1, 0}, types.Qubits{2, 3}},
		code.BottomLeft:  {types.Bits{0, 0, 1}, types.Qubits{2, 1}},
		code.BottomRight: {types.Bits{1, 0, 0}, types.Qubits{2, 5}},
	}
	for i, stab := range code.ZStabilizers() {
		f, err := NewFlagged(stab)
		require.NoError(t, err)
		key, target, _ := f.Override()
		assert.Equal(t, want[i].key, key)
		assert.Equal(t, want[i].target, target)
	}
}

func TestNewFlaggedRejectsUntypedStabilizer(t *testing.T) {
	_, err := NewFlagged(types.Stabilizer{Plaquette: code.Plaquettes()[0]})
	assert.ErrorIs(t, err, types.ErrInvalidBasis)
}

func TestLookupReturnsCopies(t *testing.T) {
	d := New()
	qs := d.Lookup(types.Bits{0, 0, 1})
	qs[0] = 0
	assert.Equal(t, types.Qubits{6}, d.Lookup(types.Bits{0, 0, 1}))
}
