// Package types defines the data model shared by the Steane decoding core:
// Pauli labels, plaquettes and stabilizers, syndromes, correction vectors,
// the 12-column sequence vector, the SequenceDecoder interface, the trial
// store interface and the standard error values.
package types
