package types

import "fmt"

// Pauli names a Pauli operator type. Only X and Z are used by the Steane
// decoding core; Y errors appear as an X and a Z component.
type Pauli string

// Pauli types.
const (
	PauliX Pauli = "X"
	PauliZ Pauli = "Z"
)

// Bases lists the two stabilizer bases in interchange order (X before Z).
var Bases = [2]Pauli{PauliX, PauliZ}

// Complement returns the Pauli type detected by stabilizers of type p.
// X stabilizers are violated by Z errors and vice versa.
func (p Pauli) Complement() (Pauli, error) {
	switch p {
	case PauliX:
		return PauliZ, nil
	case PauliZ:
		return PauliX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBasis, string(p))
	}
}

// ParsePauli converts "X" or "Z" into a Pauli. Any other value returns
// ErrInvalidBasis.
func ParsePauli(s string) (Pauli, error) {
	switch Pauli(s) {
	case PauliX, PauliZ:
		return Pauli(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBasis, s)
}

// Valid reports whether p is X or Z.
func (p Pauli) Valid() bool {
	return p == PauliX || p == PauliZ
}
