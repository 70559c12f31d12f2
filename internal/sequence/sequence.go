// Package sequence holds the append-only syndrome history of one experiment:
// per basis, one raw syndrome and one flag readout per measurement round.
// Increments are derived on demand, and the history converts to and from
// the 12-column interchange vector.
package sequence

import (
	"fmt"

	"github.com/mesh-intelligence/steane/pkg/types"
)

// series is the history of one basis. syndromes and flags always have the
// same length because they are only ever appended together.
type series struct {
	syndromes []types.Bits
	flags     []types.Bits
}

func (s *series) clone() series {
	return series{
		syndromes: append([]types.Bits(nil), s.syndromes...),
		flags:     append([]types.Bits(nil), s.flags...),
	}
}

// increments returns the elementwise difference of each syndrome from the
// previous one. The implicit syndrome before step 0 is all zero, so the
// first increment is the first syndrome.
func (s *series) increments() []types.Bits {
	out := make([]types.Bits, len(s.syndromes))
	var prev types.Bits
	for i, syn := range s.syndromes {
		out[i] = syn.Xor(prev)
		prev = syn
	}
	return out
}

// Data is the two-basis syndrome history. The zero value is an empty
// history ready for use. Data is not safe for concurrent mutation; each
// experiment owns its own Data.
type Data struct {
	x series
	z series
}

// New returns an empty history.
func New() *Data {
	return &Data{}
}

func (d *Data) basis(p types.Pauli) (*series, error) {
	switch p {
	case types.PauliX:
		return &d.x, nil
	case types.PauliZ:
		return &d.z, nil
	}
	return nil, fmt.Errorf("%w: %q", types.ErrInvalidBasis, string(p))
}

// Append records one round of basis p. syndrome and flags must each hold
// exactly three 0/1 values. Nothing is recorded when any argument fails.
func (d *Data) Append(p types.Pauli, syndrome, flags []int) error {
	s, err := d.basis(p)
	if err != nil {
		return err
	}
	syn, err := types.ParseBits(syndrome)
	if err != nil {
		return fmt.Errorf("syndrome: %w", err)
	}
	flg, err := types.ParseBits(flags)
	if err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	s.syndromes = append(s.syndromes, syn)
	s.flags = append(s.flags, flg)
	return nil
}

// AppendBits is Append for already validated bits.
func (d *Data) AppendBits(p types.Pauli, syndrome, flags types.Bits) error {
	s, err := d.basis(p)
	if err != nil {
		return err
	}
	s.syndromes = append(s.syndromes, syndrome)
	s.flags = append(s.flags, flags)
	return nil
}

// Syndromes returns a copy of the raw syndromes of basis p.
func (d *Data) Syndromes(p types.Pauli) ([]types.Bits, error) {
	s, err := d.basis(p)
	if err != nil {
		return nil, err
	}
	return append([]types.Bits(nil), s.syndromes...), nil
}

// Flags returns a copy of the flag readouts of basis p.
func (d *Data) Flags(p types.Pauli) ([]types.Bits, error) {
	s, err := d.basis(p)
	if err != nil {
		return nil, err
	}
	return append([]types.Bits(nil), s.flags...), nil
}

// Increments returns the syndrome increments of basis p.
func (d *Data) Increments(p types.Pauli) ([]types.Bits, error) {
	s, err := d.basis(p)
	if err != nil {
		return nil, err
	}
	return s.increments(), nil
}

// Len returns the number of completed rounds. It fails with
// ErrLengthMismatch while one basis is ahead of the other.
func (d *Data) Len() (int, error) {
	if len(d.x.syndromes) != len(d.z.syndromes) {
		return 0, fmt.Errorf("%w: X has %d rounds, Z has %d", types.ErrLengthMismatch,
			len(d.x.syndromes), len(d.z.syndromes))
	}
	return len(d.x.syndromes), nil
}

// Extend appends other's rounds basis by basis. Increments across the seam
// are derived from the raw syndromes, so the first appended increment is
// relative to d's last syndrome.
func (d *Data) Extend(other *Data) error {
	if other == nil {
		return types.ErrNilSequence
	}
	// Copy first so that d.Extend(d) doubles the history.
	x, z := other.x.clone(), other.z.clone()
	d.x.syndromes = append(d.x.syndromes, x.syndromes...)
	d.x.flags = append(d.x.flags, x.flags...)
	d.z.syndromes = append(d.z.syndromes, z.syndromes...)
	d.z.flags = append(d.z.flags, z.flags...)
	return nil
}

// Clone returns an independent copy of d.
func (d *Data) Clone() *Data {
	return &Data{x: d.x.clone(), z: d.z.clone()}
}

// LastFlagged reports whether any basis raised a flag in its last round.
func (d *Data) LastFlagged() bool {
	for _, s := range []*series{&d.x, &d.z} {
		if n := len(s.flags); n > 0 && s.flags[n-1].Weight() > 0 {
			return true
		}
	}
	return false
}

// LastIncremented reports whether any basis' syndrome changed in its last
// round.
func (d *Data) LastIncremented() bool {
	for _, s := range []*series{&d.x, &d.z} {
		inc := s.increments()
		if n := len(inc); n > 0 && inc[n-1].Weight() > 0 {
			return true
		}
	}
	return false
}

// NeedsExtraRound reports whether the last round left something the
// sequential decoder can only resolve with one more round: a syndrome
// increment, or a flag on exactly one plaquette, in either basis.
func (d *Data) NeedsExtraRound() bool {
	for _, s := range []*series{&d.x, &d.z} {
		n := len(s.syndromes)
		if n == 0 {
			continue
		}
		if s.increments()[n-1].Weight() > 0 || s.flags[n-1].Weight() == 1 {
			return true
		}
	}
	return false
}
