// Package steane is the public entry point to the Steane decoding core. It
// exposes factories for the sequential decoder and the trial store while
// keeping their implementations internal.
package steane

import (
	"github.com/mesh-intelligence/steane/internal/sequential"
	"github.com/mesh-intelligence/steane/internal/sqlite"
	"github.com/mesh-intelligence/steane/pkg/types"
)

// Version is the release version of the module.
const Version = "0.1.0"

// NewDecoder returns the lookup-table sequential decoder. With finalize set,
// a signal still pending when a history ends is resolved against the last
// step instead of being dropped.
//
// Example:
//
//	dec := steane.NewDecoder(false)
//	corrections, err := dec.DecodeToCorrection(vector)
func NewDecoder(finalize bool) types.SequenceDecoder {
	return sequential.New(sequential.WithFinalize(finalize))
}

// NewBackend creates a new SQLite trial store.
// The store is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := steane.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".steane-db",
//	})
//	defer store.Detach()
func NewBackend() types.Store {
	return sqlite.NewBackend()
}
