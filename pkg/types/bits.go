package types

import (
	"fmt"
	"strconv"
)

// Bits is one three-bit stabilizer readout ordered (top, left, right),
// matching the fixed plaquette order of the Steane code.
type Bits [3]uint8

// ParseBits validates a slice of exactly three 0/1 values. Any other shape
// returns ErrInvalidShape; any non-binary entry returns ErrInvalidBit.
func ParseBits(values []int) (Bits, error) {
	var b Bits
	if len(values) != len(b) {
		return b, fmt.Errorf("%w: want %d bits, got %d", ErrInvalidShape, len(b), len(values))
	}
	for i, v := range values {
		if v != 0 && v != 1 {
			return b, fmt.Errorf("%w: entry %d is %d", ErrInvalidBit, i, v)
		}
		b[i] = uint8(v)
	}
	return b, nil
}

// ParseBitString parses a key such as "101".
func ParseBitString(s string) (Bits, error) {
	var b Bits
	if len(s) != len(b) {
		return b, fmt.Errorf("%w: want %d bits, got %q", ErrInvalidShape, len(b), s)
	}
	for i, r := range s {
		switch r {
		case '0':
		case '1':
			b[i] = 1
		default:
			return b, fmt.Errorf("%w: entry %d is %q", ErrInvalidBit, i, r)
		}
	}
	return b, nil
}

// Weight returns the number of set bits.
func (b Bits) Weight() int {
	return int(b[0]) + int(b[1]) + int(b[2])
}

// Xor returns the elementwise mod-2 sum of b and o.
func (b Bits) Xor(o Bits) Bits {
	return Bits{b[0] ^ o[0], b[1] ^ o[1], b[2] ^ o[2]}
}

// Key returns the lookup-table key, e.g. "101".
func (b Bits) Key() string {
	return strconv.Itoa(int(b[0])) + strconv.Itoa(int(b[1])) + strconv.Itoa(int(b[2]))
}

// Ints returns the bits as a []int, the form used in JSON records.
func (b Bits) Ints() []int {
	return []int{int(b[0]), int(b[1]), int(b[2])}
}

// String implements fmt.Stringer.
func (b Bits) String() string {
	return b.Key()
}
