package lot

import (
	"github.com/mesh-intelligence/steane/internal/code"
	"github.com/mesh-intelligence/steane/pkg/types"
)

// ClassicalSyndrome returns the three plaquette parities of a measured data
// word.
func ClassicalSyndrome(w code.Word) types.Syndrome {
	var b types.Bits
	for i, p := range code.Plaquettes() {
		b[i] = w.Parity(p)
	}
	return types.Syndrome{Type: types.SyndromeClassical, Bits: b}
}

// ClassicalCorrection flips the bit the plain table assigns to w's
// syndrome. Words with a zero syndrome are returned unchanged.
func ClassicalCorrection(w code.Word) code.Word {
	s := ClassicalSyndrome(w)
	for _, q := range baseTable[s.Bits] {
		w[q] ^= 1
	}
	return w
}

// LogicalParity returns the parity of w over the logical support {0,1,4}.
func LogicalParity(w code.Word) uint8 {
	var p uint8
	for _, q := range code.LogicalSupport {
		p ^= w[q]
	}
	return p
}

// CorrectedLogicalParity corrects w classically and returns its logical
// parity. Any seven-bit word, codeword or not, yields a definite bit.
func CorrectedLogicalParity(w code.Word) uint8 {
	return LogicalParity(ClassicalCorrection(w))
}
