package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func history(rounds int) History {
	zeros := func() [][]int {
		out := make([][]int, rounds)
		for i := range out {
			out[i] = []int{0, 0, 0}
		}
		return out
	}
	return History{XSyndromes: zeros(), XFlags: zeros(), ZSyndromes: zeros(), ZFlags: zeros()}
}

func TestTrialValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Trial)
		wantErr error
	}{
		{name: "valid", mutate: func(*Trial) {}},
		{name: "empty history", mutate: func(tr *Trial) { tr.History = History{} }},
		{name: "bad readout basis", mutate: func(tr *Trial) { tr.ReadoutBasis = "Y" }, wantErr: ErrInvalidData},
		{name: "bad input parity", mutate: func(tr *Trial) { tr.InputParity = 2 }, wantErr: ErrInvalidData},
		{name: "bad final parity", mutate: func(tr *Trial) { tr.FinalParity = 3 }, wantErr: ErrInvalidData},
		{name: "short row", mutate: func(tr *Trial) { tr.History.XFlags[0] = []int{0, 1} }, wantErr: ErrInvalidData},
		{name: "non-binary entry", mutate: func(tr *Trial) { tr.History.ZSyndromes[1][2] = 2 }, wantErr: ErrInvalidData},
		{name: "ragged bases", mutate: func(tr *Trial) {
			tr.History.ZFlags = tr.History.ZFlags[:1]
		}, wantErr: ErrLengthMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Trial{ReadoutBasis: PauliZ, History: history(2)}
			tt.mutate(tr)
			err := tr.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTrialDecodeBasis(t *testing.T) {
	tr := &Trial{ReadoutBasis: PauliZ}
	b, err := tr.DecodeBasis()
	require.NoError(t, err)
	assert.Equal(t, PauliX, b)

	tr.ReadoutBasis = PauliX
	b, err = tr.DecodeBasis()
	require.NoError(t, err)
	assert.Equal(t, PauliZ, b)

	tr.ReadoutBasis = ""
	_, err = tr.DecodeBasis()
	assert.ErrorIs(t, err, ErrInvalidBasis)
}

func TestStabilizer(t *testing.T) {
	p := NewPlaquette(0, 1, 2, 3)
	assert.True(t, p.Contains(2))
	assert.False(t, p.Contains(4))

	s, err := NewStabilizer(p, PauliX)
	require.NoError(t, err)
	assert.Equal(t, "X stabilizer on qubits [0 1 2 3]", s.String())

	_, err = NewStabilizer(p, "flag")
	assert.ErrorIs(t, err, ErrInvalidBasis)
}
