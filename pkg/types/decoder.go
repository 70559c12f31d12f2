package types

// SequenceDecoder turns a 12-column measurement history into corrections.
// The lookup-table sequential decoder implements it; any alternative decoder
// consuming the same Vector layout is a drop-in replacement.
type SequenceDecoder interface {
	// DecodeToCorrection returns the net correction per Pauli type.
	DecodeToCorrection(v Vector) (Corrections, error)

	// DecodeToParity returns, per Pauli type, the logical parity expected
	// after applying the decoded correction to a block that started with
	// inputParity.
	DecodeToParity(v Vector, inputParity uint8) (Parities, error)
}
