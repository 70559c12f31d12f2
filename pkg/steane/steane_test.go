package steane

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/steane/pkg/types"
)

func TestNewDecoder(t *testing.T) {
	v := types.Vector{
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0},
	}

	got, err := NewDecoder(false).DecodeToCorrection(v)
	require.NoError(t, err)
	assert.True(t, got.X.IsZero(), "a dangling increment is dropped")

	got, err = NewDecoder(true).DecodeToCorrection(v)
	require.NoError(t, err)
	assert.Equal(t, types.Qubits{0}, got.X.Qubits())
}

func TestNewBackend(t *testing.T) {
	store := NewBackend()
	require.NoError(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer store.Detach()

	s, err := store.Summary()
	require.NoError(t, err)
	assert.Equal(t, types.Summary{}, s)
}
