package types

import (
	"fmt"
	"sort"
)

// NumDataQubits is the number of data qubits in a Steane code block.
const NumDataQubits = 7

// Qubits is a set of data-qubit indices a decoder wants corrected. A nil
// Qubits means no correction. Single and two-qubit results share this type
// so callers never branch on the result shape.
type Qubits []int

// Correction is a seven-bit vector; a 1 at index i means flip data qubit i
// with the complementary Pauli type.
type Correction [NumDataQubits]uint8

// CorrectionFromQubits returns the correction vector flipping qs. Indices
// outside 0..6 return ErrInvalidQubit.
func CorrectionFromQubits(qs Qubits) (Correction, error) {
	var c Correction
	for _, q := range qs {
		if q < 0 || q >= NumDataQubits {
			return Correction{}, fmt.Errorf("%w: %d", ErrInvalidQubit, q)
		}
		c[q] = 1
	}
	return c, nil
}

// Qubits returns the sorted indices set in c.
func (c Correction) Qubits() Qubits {
	var qs Qubits
	for i, v := range c {
		if v == 1 {
			qs = append(qs, i)
		}
	}
	sort.Ints(qs)
	return qs
}

// Xor returns the mod-2 sum of c and o.
func (c Correction) Xor(o Correction) Correction {
	var out Correction
	for i := range c {
		out[i] = c[i] ^ o[i]
	}
	return out
}

// Weight returns the number of flipped qubits.
func (c Correction) Weight() int {
	n := 0
	for _, v := range c {
		n += int(v)
	}
	return n
}

// IsZero reports whether c flips nothing.
func (c Correction) IsZero() bool {
	return c == Correction{}
}

// Ints returns c as a []int, the form used in JSON records.
func (c Correction) Ints() []int {
	out := make([]int, len(c))
	for i, v := range c {
		out[i] = int(v)
	}
	return out
}

// Corrections holds the net correction of each Pauli type. X is derived
// from Z-syndrome data and Z from X-syndrome data.
type Corrections struct {
	X Correction `json:"x"`
	Z Correction `json:"z"`
}

// Get returns the correction of Pauli type p.
func (c Corrections) Get(p Pauli) Correction {
	if p == PauliZ {
		return c.Z
	}
	return c.X
}

// Parities holds the decoded logical parity per correction basis.
type Parities struct {
	X uint8 `json:"x"`
	Z uint8 `json:"z"`
}

// Get returns the parity of Pauli type p.
func (p Parities) Get(b Pauli) uint8 {
	if b == PauliZ {
		return p.Z
	}
	return p.X
}
