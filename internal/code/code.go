// Package code describes the 7-qubit Steane code: the qubit layout, the
// three plaquettes shared by the X and Z stabilizers, the binary stabilizer
// generators and the logical codeword sets.
package code

import (
	"fmt"

	"github.com/mesh-intelligence/steane/pkg/types"
)

// Qubit layout of a Steane block with one ancilla and one flag qubit.
//
//	      0
//	    1 T 3
//	   /L 2 R\
//	  4 - 5 - 6
const (
	CornerTop   = 0
	CornerLeft  = 4
	CornerRight = 6
	EdgeLeft    = 1
	EdgeBottom  = 5
	EdgeRight   = 3
	Center      = 2

	AncillaQubit = 7
	FlagQubit    = 8
	NumQubits    = 9
)

// Plaquette indices in syndrome bit order.
const (
	Top = iota
	BottomLeft
	BottomRight
)

var plaquettes = [3]types.Plaquette{
	types.NewPlaquette(CornerTop, EdgeLeft, Center, EdgeRight),
	types.NewPlaquette(CornerLeft, EdgeBottom, Center, EdgeLeft),
	types.NewPlaquette(CornerRight, EdgeRight, Center, EdgeBottom),
}

// generators are the binary stabilizer generator rows over qubits 0..6.
var generators = [3]Word{
	{1, 1, 1, 1, 0, 0, 0},
	{0, 1, 1, 0, 1, 1, 0},
	{0, 0, 1, 1, 0, 1, 1},
}

// logicalSupports lists the weight-3 supports of the logical operator.
var logicalSupports = [][3]int{
	{0, 1, 4}, {0, 2, 5}, {0, 3, 6},
	{4, 2, 3}, {4, 5, 6},
	{6, 2, 1},
}

// LogicalSupport is the logical operator used for parity readout.
var LogicalSupport = [3]int{0, 1, 4}

// Word is a classical seven-bit data word.
type Word [types.NumDataQubits]uint8

// Plaquettes returns the three plaquettes in syndrome bit order.
func Plaquettes() [3]types.Plaquette {
	return plaquettes
}

// Plaquette returns the plaquette at index i (Top, BottomLeft, BottomRight).
func Plaquette(i int) (types.Plaquette, error) {
	if i < 0 || i >= len(plaquettes) {
		return types.Plaquette{}, fmt.Errorf("%w: plaquette %d", types.ErrInvalidQubit, i)
	}
	return plaquettes[i], nil
}

// Stabilizers returns the three stabilizers of Pauli type p.
func Stabilizers(p types.Pauli) ([3]types.Stabilizer, error) {
	var out [3]types.Stabilizer
	for i, pl := range plaquettes {
		s, err := types.NewStabilizer(pl, p)
		if err != nil {
			return out, err
		}
		out[i] = s
	}
	return out, nil
}

// XStabilizers returns the X-type stabilizers.
func XStabilizers() [3]types.Stabilizer {
	s, _ := Stabilizers(types.PauliX)
	return s
}

// ZStabilizers returns the Z-type stabilizers.
func ZStabilizers() [3]types.Stabilizer {
	s, _ := Stabilizers(types.PauliZ)
	return s
}

// ValidLogicals returns the supports of the weight-3 logical operators.
func ValidLogicals() [][3]int {
	out := make([][3]int, len(logicalSupports))
	copy(out, logicalSupports)
	return out
}

// SyndromeOf returns the syndrome that errors on qubits produce on the
// plaquettes. The plaquettes are shared by both stabilizer types, so the
// result is the same for X errors on Z stabilizers and Z errors on X
// stabilizers.
func SyndromeOf(qubits types.Qubits) (types.Bits, error) {
	var b types.Bits
	for _, q := range qubits {
		if q < 0 || q >= types.NumDataQubits {
			return b, fmt.Errorf("%w: %d", types.ErrInvalidQubit, q)
		}
		for i, p := range plaquettes {
			if p.Contains(q) {
				b[i] ^= 1
			}
		}
	}
	return b, nil
}

// Parity returns the parity of w over plaquette p.
func (w Word) Parity(p types.Plaquette) uint8 {
	var s uint8
	for _, q := range p.Qubits() {
		s ^= w[q]
	}
	return s
}

// Xor returns the elementwise mod-2 sum of w and o.
func (w Word) Xor(o Word) Word {
	var out Word
	for i := range w {
		out[i] = w[i] ^ o[i]
	}
	return out
}

// WordFromInts validates a seven-entry 0/1 slice.
func WordFromInts(bits []int) (Word, error) {
	var w Word
	if len(bits) != len(w) {
		return w, fmt.Errorf("%w: want %d bits, got %d", types.ErrInvalidShape, len(w), len(bits))
	}
	for i, v := range bits {
		if v != 0 && v != 1 {
			return w, fmt.Errorf("%w: entry %d is %d", types.ErrInvalidBit, i, v)
		}
		w[i] = uint8(v)
	}
	return w, nil
}

// WordFromCorrection reinterprets a correction vector as a data word.
func WordFromCorrection(c types.Correction) Word {
	return Word(c)
}

// WordFromQubits returns the word with ones at qubits.
func WordFromQubits(qubits ...int) Word {
	var w Word
	for _, q := range qubits {
		w[q] = 1
	}
	return w
}

// LogicalZeroCodewords returns the 8 codewords of logical zero: every XOR
// combination of the generators, including the all-zero word.
func LogicalZeroCodewords() []Word {
	words := make([]Word, 0, 1<<len(generators))
	for mask := 0; mask < 1<<len(generators); mask++ {
		var w Word
		for i, g := range generators {
			if mask>>i&1 == 1 {
				w = w.Xor(g)
			}
		}
		words = append(words, w)
	}
	return words
}

// LogicalOneCodewords returns the 8 codewords of logical one: each logical
// zero codeword shifted by the logical operator.
func LogicalOneCodewords() []Word {
	logical := WordFromQubits(logicalSupports[0][:]...)
	words := LogicalZeroCodewords()
	for i := range words {
		words[i] = words[i].Xor(logical)
	}
	return words
}

// Codewords returns the codeword set of the given logical value.
func Codewords(logical uint8) ([]Word, error) {
	switch logical {
	case 0:
		return LogicalZeroCodewords(), nil
	case 1:
		return LogicalOneCodewords(), nil
	}
	return nil, fmt.Errorf("%w: %d", types.ErrInvalidParity, logical)
}

// Distance returns the Hamming distance between a and b. Slices of
// different length return ErrLengthMismatch.
func Distance(a, b []uint8) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d and %d", types.ErrLengthMismatch, len(a), len(b))
	}
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d, nil
}

// WordDistance is Distance for two data words.
func WordDistance(a, b Word) int {
	d, _ := Distance(a[:], b[:])
	return d
}

// MinDistance returns the smallest Hamming distance from w to a codeword of
// the given logical value.
func MinDistance(w Word, logical uint8) (int, error) {
	words, err := Codewords(logical)
	if err != nil {
		return 0, err
	}
	best := len(w) + 1
	for _, c := range words {
		if d := WordDistance(w, c); d < best {
			best = d
		}
	}
	return best, nil
}
