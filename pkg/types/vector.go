package types

import "fmt"

// Column offsets of the 12-column interchange row. The layout is
// [X increments(3), X flags(3), Z increments(3), Z flags(3)] and must not
// change: alternative decoders consume exactly this format.
const (
	ColXIncrements = 0
	ColXFlags      = 3
	ColZIncrements = 6
	ColZFlags      = 9
	RowWidth       = 12
)

// Row is one time step of the interchange format. Entries are 0 or 1; a row
// whose entries are all negative is a padding mask.
type Row [RowWidth]int8

// Vector is a time-ordered sequence of rows.
type Vector []Row

func (r Row) bits(off int) Bits {
	return Bits{uint8(r[off]), uint8(r[off+1]), uint8(r[off+2])}
}

// Increments returns the syndrome increment of basis p.
func (r Row) Increments(p Pauli) Bits {
	if p == PauliZ {
		return r.bits(ColZIncrements)
	}
	return r.bits(ColXIncrements)
}

// Flags returns the flag bits of basis p.
func (r Row) Flags(p Pauli) Bits {
	if p == PauliZ {
		return r.bits(ColZFlags)
	}
	return r.bits(ColXFlags)
}

// Masked reports whether every entry of r is negative.
func (r Row) Masked() bool {
	for _, v := range r {
		if v >= 0 {
			return false
		}
	}
	return true
}

// Unmasked validates v and returns a copy without padding-mask rows. A row
// mixing negative and non-negative entries, or containing a value other
// than 0 or 1, returns ErrInvalidBit.
func (v Vector) Unmasked() (Vector, error) {
	out := make(Vector, 0, len(v))
	for t, r := range v {
		if r.Masked() {
			continue
		}
		for c, x := range r {
			if x != 0 && x != 1 {
				return nil, fmt.Errorf("%w: row %d column %d is %d", ErrInvalidBit, t, c, x)
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// Ints returns v as nested int slices, the form used in JSON output.
func (v Vector) Ints() [][]int {
	out := make([][]int, len(v))
	for i, r := range v {
		row := make([]int, RowWidth)
		for j, x := range r {
			row[j] = int(x)
		}
		out[i] = row
	}
	return out
}
