package sequential

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/steane/internal/sequence"
	"github.com/mesh-intelligence/steane/pkg/types"
)

func corr(t *testing.T, qs ...int) types.Correction {
	t.Helper()
	c, err := types.CorrectionFromQubits(qs)
	require.NoError(t, err)
	return c
}

// zRows builds rows carrying only Z increments and X flags, the inputs of
// the X correction.
func zRows(increments, xFlags [][3]int8) types.Vector {
	v := make(types.Vector, len(increments))
	for t := range increments {
		for i := 0; i < 3; i++ {
			v[t][types.ColZIncrements+i] = increments[t][i]
			v[t][types.ColXFlags+i] = xFlags[t][i]
		}
	}
	return v
}

// fixture is a five-step history with a Z error on qubit 1 and an X error
// on qubit 6 at step 1, an X-syndrome change on plaquette left at step 3
// and a single Z flag on the top plaquette at step 3.
func fixture(t *testing.T) types.Vector {
	t.Helper()
	xs := [][]int{{0, 0, 0}, {1, 1, 0}, {1, 1, 0}, {1, 0, 0}, {1, 1, 0}}
	zs := [][]int{{0, 0, 0}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	zf := [][]int{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {1, 0, 0}, {0, 0, 0}}
	d := sequence.New()
	for i := range xs {
		require.NoError(t, d.Append(types.PauliX, xs[i], []int{0, 0, 0}))
		require.NoError(t, d.Append(types.PauliZ, zs[i], zf[i]))
	}
	v, err := d.ToVector()
	require.NoError(t, err)
	return v
}

func TestQuietStepEmitsNothing(t *testing.T) {
	res, err := New().Decode(zRows([][3]int8{{0, 0, 0}}, [][3]int8{{0, 0, 0}}))
	require.NoError(t, err)
	assert.True(t, res.X.Correction.IsZero())
	assert.Empty(t, res.X.Events)
	assert.Equal(t, SignalNone, res.X.Pending)
}

func TestWeightTwoIncrementIsNotASignal(t *testing.T) {
	res, err := New().Decode(zRows(
		[][3]int8{{0, 0, 0}, {1, 1, 0}},
		[][3]int8{{0, 0, 0}, {0, 0, 0}},
	))
	require.NoError(t, err)
	assert.True(t, res.X.Correction.IsZero())
	assert.Empty(t, res.X.Events)
	assert.Equal(t, SignalNone, res.X.Pending)
}

func TestDanglingIncrement(t *testing.T) {
	v := zRows(
		[][3]int8{{0, 0, 0}, {1, 0, 0}},
		[][3]int8{{0, 0, 0}, {0, 0, 0}},
	)

	res, err := New().Decode(v)
	require.NoError(t, err)
	assert.True(t, res.X.Correction.IsZero(), "dropped without finalize")
	assert.Equal(t, SignalIncrement, res.X.Pending)

	res, err = New(WithFinalize(true)).Decode(v)
	require.NoError(t, err)
	assert.Equal(t, corr(t, 0), res.X.Correction)
	assert.Equal(t, SignalNone, res.X.Pending)
	require.Len(t, res.X.Events, 1)
	assert.True(t, res.X.Events[0].Finalized)
	assert.Equal(t, 1, res.X.Events[0].Step)
}

func TestDanglingFlag(t *testing.T) {
	v := zRows(
		[][3]int8{{0, 0, 0}, {0, 1, 0}},
		[][3]int8{{0, 0, 0}, {1, 0, 0}},
	)

	res, err := New().Decode(v)
	require.NoError(t, err)
	assert.Equal(t, SignalFlag, res.X.Pending)
	assert.True(t, res.X.Correction.IsZero())

	res, err = New(WithFinalize(true)).Decode(v)
	require.NoError(t, err)
	require.Len(t, res.X.Events, 1)
	e := res.X.Events[0]
	assert.Equal(t, SignalFlag, e.Signal)
	assert.Equal(t, 0, e.Plaquette)
	// The window [0, 1] sums to 010, which the flagged top table maps to
	// the two middle qubits.
	assert.Equal(t, corr(t, 2, 3), res.X.Correction)
}

func TestFlagResolvesWithFlaggedTable(t *testing.T) {
	v := zRows(
		[][3]int8{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}},
		[][3]int8{{1, 0, 0}, {0, 0, 0}, {0, 0, 0}},
	)
	res, err := New().Decode(v)
	require.NoError(t, err)
	require.Len(t, res.X.Events, 1)
	e := res.X.Events[0]
	assert.Equal(t, SignalFlag, e.Signal)
	assert.Equal(t, 1, e.Step)
	assert.Equal(t, types.Bits{0, 1, 0}, e.Syndrome)
	assert.Equal(t, corr(t, 2, 3), res.X.Correction)
	assert.Equal(t, SignalNone, res.X.Pending)
}

func TestFlagTakesPrecedenceOverIncrement(t *testing.T) {
	v := zRows(
		[][3]int8{{0, 0, 1}, {0, 0, 0}},
		[][3]int8{{0, 0, 1}, {0, 0, 0}},
	)
	res, err := New().Decode(v)
	require.NoError(t, err)
	require.Len(t, res.X.Events, 1)
	assert.Equal(t, SignalFlag, res.X.Events[0].Signal)
	assert.Equal(t, 2, res.X.Events[0].Plaquette)
	// 001 is not the override key of the right plaquette, so the plain
	// entry applies.
	assert.Equal(t, corr(t, 6), res.X.Correction)
}

func TestMultipleFlagsFallThrough(t *testing.T) {
	v := zRows(
		[][3]int8{{0, 0, 0}, {0, 0, 0}},
		[][3]int8{{1, 1, 0}, {0, 0, 0}},
	)
	res, err := New().Decode(v)
	require.NoError(t, err)
	assert.Empty(t, res.X.Events)
	assert.Equal(t, SignalNone, res.X.Pending)
}

func TestIncrementAccumulatesFromSettledStep(t *testing.T) {
	// A fluke on the top plaquette at step 1 disappears at step 2; the
	// window [0, 2] sums to zero and nothing is corrected.
	v := zRows(
		[][3]int8{{0, 0, 0}, {1, 0, 0}, {1, 0, 0}},
		[][3]int8{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
	)
	res, err := New().Decode(v)
	require.NoError(t, err)
	require.Len(t, res.X.Events, 1)
	assert.Equal(t, types.Bits{0, 0, 0}, res.X.Events[0].Syndrome)
	assert.True(t, res.X.Correction.IsZero())
}

func TestStepCorrectionsOnFixture(t *testing.T) {
	v := fixture(t)
	d := New()

	tests := []struct {
		step int
		x    types.Correction
		z    types.Correction
	}{
		{0, corr(t), corr(t)},
		{1, corr(t, 6), corr(t, 1)},
		{2, corr(t), corr(t)},
		{3, corr(t), corr(t, 4)},
		{4, corr(t), corr(t, 2, 3)},
	}
	for _, tt := range tests {
		got, err := d.StepCorrections(v, tt.step)
		require.NoError(t, err)
		assert.Equal(t, tt.x, got.X, "X correction at step %d", tt.step)
		assert.Equal(t, tt.z, got.Z, "Z correction at step %d", tt.step)
	}

	_, err := d.StepCorrections(v, len(v))
	assert.ErrorIs(t, err, types.ErrInvalidStep)
	_, err = d.StepCorrections(v, -1)
	assert.ErrorIs(t, err, types.ErrInvalidStep)
}

func TestDecodeFixture(t *testing.T) {
	res, err := New().Decode(fixture(t))
	require.NoError(t, err)

	assert.Equal(t, corr(t, 6), res.X.Correction)
	require.Len(t, res.X.Events, 1)
	assert.Equal(t, SignalIncrement, res.X.Events[0].Signal)
	assert.Equal(t, 2, res.X.Events[0].Step)

	// The flag at step 3 opens a window whose increments cancel.
	assert.True(t, res.Z.Correction.IsZero())
	require.Len(t, res.Z.Events, 1)
	assert.Equal(t, SignalFlag, res.Z.Events[0].Signal)
	assert.Equal(t, 0, res.Z.Events[0].Plaquette)

	assert.Equal(t, types.Corrections{X: corr(t, 6), Z: corr(t)}, res.Corrections())
	assert.Equal(t, res.X, res.Get(types.PauliX))
}

func TestDecodeIgnoresPadding(t *testing.T) {
	v := fixture(t)
	padded := append(types.Vector(nil), v...)
	var mask types.Row
	for i := range mask {
		mask[i] = -1
	}
	padded = append(padded, mask, mask)

	d := New()
	want, err := d.Decode(v)
	require.NoError(t, err)
	got, err := d.Decode(padded)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	v := fixture(t)
	v[2][5] = 2
	res, err := New().Decode(v)
	assert.ErrorIs(t, err, types.ErrInvalidBit)
	assert.Equal(t, Result{}, res)

	_, err = New().DecodeData(nil)
	assert.ErrorIs(t, err, types.ErrNilSequence)
}

func TestDecodeIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	d := New()
	for trial := 0; trial < 25; trial++ {
		v := make(types.Vector, rng.Intn(10)+1)
		for step := range v {
			for c := range v[step] {
				if rng.Intn(4) == 0 {
					v[step][c] = 1
				}
			}
		}
		first, err := d.Decode(v)
		require.NoError(t, err)
		second, err := d.Decode(v)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestDecodeData(t *testing.T) {
	data := sequence.New()
	require.NoError(t, data.Append(types.PauliX, []int{0, 0, 0}, []int{0, 0, 0}))
	require.NoError(t, data.Append(types.PauliZ, []int{0, 0, 0}, []int{0, 0, 0}))
	res, err := New().DecodeData(data)
	require.NoError(t, err)
	assert.Equal(t, types.Corrections{}, res.Corrections())

	require.NoError(t, data.Append(types.PauliX, []int{0, 0, 0}, []int{0, 0, 0}))
	_, err = New().DecodeData(data)
	assert.ErrorIs(t, err, types.ErrLengthMismatch)
}

func TestDecodeToParity(t *testing.T) {
	d := New()
	flagged := zRows(
		[][3]int8{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}},
		[][3]int8{{1, 0, 0}, {0, 0, 0}, {0, 0, 0}},
	)

	// A weight-2 correction on {2,3} is cleaned up to the logical {2,3,4}.
	got, err := d.DecodeToParity(flagged, 0)
	require.NoError(t, err)
	assert.Equal(t, types.Parities{X: 1, Z: 0}, got)

	got, err = d.DecodeToParity(flagged, 1)
	require.NoError(t, err)
	assert.Equal(t, types.Parities{X: 0, Z: 1}, got)

	// Single-qubit corrections never change the logical value.
	got, err = d.DecodeToParity(fixture(t), 1)
	require.NoError(t, err)
	assert.Equal(t, types.Parities{X: 1, Z: 1}, got)

	_, err = d.DecodeToParity(flagged, 2)
	assert.ErrorIs(t, err, types.ErrInvalidParity)
}

func TestCompile(t *testing.T) {
	assert.Equal(t, types.Correction{}, Compile())
	assert.Equal(t, corr(t, 1, 2), Compile(corr(t, 0, 1), corr(t, 0, 2)))
	assert.Equal(t, corr(t), Compile(corr(t, 5), corr(t, 5)))
}

func TestSources(t *testing.T) {
	inc, flags, err := Sources(types.PauliX)
	require.NoError(t, err)
	assert.Equal(t, types.PauliZ, inc)
	assert.Equal(t, types.PauliX, flags)

	_, _, err = Sources("Y")
	assert.ErrorIs(t, err, types.ErrInvalidBasis)
}

func TestSignalString(t *testing.T) {
	assert.Equal(t, "NONE", SignalNone.String())
	assert.Equal(t, "INCREMENT", SignalIncrement.String())
	assert.Equal(t, "FLAG", SignalFlag.String())
	assert.Equal(t, "UNKNOWN", Signal(9).String())
}
