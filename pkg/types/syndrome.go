package types

// SyndromeType labels where a syndrome came from.
type SyndromeType string

// Syndrome types. X and Z syndromes are read off the stabilizers of that
// type; flag syndromes come from flag qubits; classical syndromes are
// computed from a measured data word.
const (
	SyndromeX         SyndromeType = "X"
	SyndromeZ         SyndromeType = "Z"
	SyndromeFlag      SyndromeType = "flag"
	SyndromeClassical SyndromeType = "classical"
)

// Syndrome is a typed three-bit stabilizer readout (top, left, right).
type Syndrome struct {
	Type SyndromeType
	Bits Bits
}

// NewSyndrome builds a syndrome from its type and the three parities.
func NewSyndrome(t SyndromeType, top, left, right uint8) Syndrome {
	return Syndrome{Type: t, Bits: Bits{top, left, right}}
}
