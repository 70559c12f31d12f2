package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrectionQubitsRoundTrip(t *testing.T) {
	c, err := CorrectionFromQubits(Qubits{2, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, Correction{0, 0, 1, 0, 0, 1, 1}, c)
	assert.Equal(t, Qubits{2, 5, 6}, c.Qubits())
	assert.Equal(t, 3, c.Weight())
}

func TestCorrectionFromNilQubits(t *testing.T) {
	c, err := CorrectionFromQubits(nil)
	require.NoError(t, err)
	assert.True(t, c.IsZero())
	assert.Nil(t, c.Qubits())
}

func TestCorrectionFromQubitsOutOfRange(t *testing.T) {
	_, err := CorrectionFromQubits(Qubits{7})
	assert.ErrorIs(t, err, ErrInvalidQubit)
	_, err = CorrectionFromQubits(Qubits{-1})
	assert.ErrorIs(t, err, ErrInvalidQubit)
}

func TestCorrectionXor(t *testing.T) {
	a := Correction{1, 0, 0, 1, 0, 0, 0}
	b := Correction{1, 0, 1, 0, 0, 0, 0}
	assert.Equal(t, Correction{0, 0, 1, 1, 0, 0, 0}, a.Xor(b))
	assert.True(t, a.Xor(a).IsZero())
}
