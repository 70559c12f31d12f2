// Package lot implements the Steane lookup-table decoders: the single-shot
// decoder mapping a three-bit syndrome to one data qubit, the flagged
// variant that overrides one entry for a flagged stabilizer circuit, and the
// classical decoder used to read a logical bit out of a measured data word.
package lot

import (
	"fmt"

	"github.com/mesh-intelligence/steane/internal/code"
	"github.com/mesh-intelligence/steane/pkg/types"
)

// baseTable maps every syndrome to the single data qubit whose error
// produces it. The all-zero syndrome needs no correction.
var baseTable = map[types.Bits]types.Qubits{
	{0, 0, 0}: nil,
	{0, 0, 1}: {6},
	{0, 1, 0}: {4},
	{0, 1, 1}: {5},
	{1, 0, 0}: {0},
	{1, 0, 1}: {3},
	{1, 1, 0}: {1},
	{1, 1, 1}: {2},
}

// Decoder is a lookup-table decoder. The zero value is not usable; build one
// with New or NewFlagged. A Decoder is immutable after construction and safe
// for concurrent use.
type Decoder struct {
	override map[types.Bits]types.Qubits
	flagged  *types.Stabilizer
}

// New returns the plain single-shot decoder.
func New() *Decoder {
	return &Decoder{}
}

// NewFlagged returns the decoder used after stab's measurement circuit
// flagged. A flag means a fault on the ancilla may have spread to the last
// two qubits of the plaquette, so the syndrome that weight-2 error leaves
// is remapped to correct exactly those two qubits. All other entries match
// the plain table.
func NewFlagged(stab types.Stabilizer) (*Decoder, error) {
	if !stab.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidBasis, string(stab.Type))
	}
	q := stab.Qubits()
	target := types.Qubits{q[2], q[3]}
	key, err := code.SyndromeOf(target)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		override: map[types.Bits]types.Qubits{key: target},
		flagged:  &stab,
	}, nil
}

// Flagged reports whether d carries a flag override.
func (d *Decoder) Flagged() bool {
	return d.flagged != nil
}

// Override returns the overridden key and its target. ok is false for the
// plain decoder.
func (d *Decoder) Override() (key types.Bits, target types.Qubits, ok bool) {
	for k, v := range d.override {
		return k, append(types.Qubits(nil), v...), true
	}
	return key, nil, false
}

// Lookup returns the qubits to correct for bits, or nil when no correction
// is needed. It does not check a syndrome type.
func (d *Decoder) Lookup(bits types.Bits) types.Qubits {
	if q, ok := d.override[bits]; ok {
		return append(types.Qubits(nil), q...)
	}
	return append(types.Qubits(nil), baseTable[bits]...)
}

// Decode returns the qubits to correct and the Pauli type of the correction
// for an X or Z syndrome. Flag syndromes return ErrFlagSyndrome and
// classical syndromes ErrClassicalSyndrome; any other type returns
// ErrUnknownSyndromeType.
func (d *Decoder) Decode(s types.Syndrome) (types.Qubits, types.Pauli, error) {
	pauli, err := CorrectionType(s.Type)
	if err != nil {
		return nil, "", err
	}
	return d.Lookup(s.Bits), pauli, nil
}

// CorrectionType returns the Pauli type that corrects a syndrome of type t.
func CorrectionType(t types.SyndromeType) (types.Pauli, error) {
	switch t {
	case types.SyndromeX:
		return types.PauliZ, nil
	case types.SyndromeZ:
		return types.PauliX, nil
	case types.SyndromeFlag:
		return "", types.ErrFlagSyndrome
	case types.SyndromeClassical:
		return "", types.ErrClassicalSyndrome
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnknownSyndromeType, string(t))
	}
}

// Correction is Lookup returned as a seven-bit correction vector.
func (d *Decoder) Correction(bits types.Bits) types.Correction {
	c, _ := types.CorrectionFromQubits(d.Lookup(bits))
	return c
}
