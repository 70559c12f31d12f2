package types

import "fmt"

// Plaquette is the four-qubit support of one Steane stabilizer. The qubit
// order is significant: the flagged decoder derives its override target from
// positions 2 and 3.
type Plaquette struct {
	q [4]int
}

// NewPlaquette returns the plaquette on qubits q1..q4.
func NewPlaquette(q1, q2, q3, q4 int) Plaquette {
	return Plaquette{q: [4]int{q1, q2, q3, q4}}
}

// Qubits returns the plaquette support in construction order.
func (p Plaquette) Qubits() [4]int {
	return p.q
}

// Contains reports whether qubit is in the plaquette support.
func (p Plaquette) Contains(qubit int) bool {
	for _, q := range p.q {
		if q == qubit {
			return true
		}
	}
	return false
}

// Stabilizer is a plaquette tagged with its Pauli type.
type Stabilizer struct {
	Plaquette
	Type Pauli
}

// NewStabilizer tags plaquette p with Pauli type t. Returns ErrInvalidBasis
// when t is neither X nor Z.
func NewStabilizer(p Plaquette, t Pauli) (Stabilizer, error) {
	if !t.Valid() {
		return Stabilizer{}, fmt.Errorf("%w: %q", ErrInvalidBasis, string(t))
	}
	return Stabilizer{Plaquette: p, Type: t}, nil
}

// String implements fmt.Stringer.
func (s Stabilizer) String() string {
	return fmt.Sprintf("%s stabilizer on qubits %v", s.Type, s.q)
}
