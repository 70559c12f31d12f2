package sequence

import (
	"fmt"

	"github.com/mesh-intelligence/steane/pkg/types"
)

type vectorOptions struct {
	padTo  int
	padVal int8
	pad    bool
}

// VectorOption configures ToVector.
type VectorOption func(*vectorOptions)

// WithPadding right-pads the time dimension to n rows filled with val.
func WithPadding(n int, val int8) VectorOption {
	return func(o *vectorOptions) {
		o.padTo = n
		o.padVal = val
		o.pad = true
	}
}

// ToVector returns one 12-column row per round:
// [X increments, X flags, Z increments, Z flags]. It fails with
// ErrLengthMismatch when the bases have different lengths and with
// ErrPadTooShort when the requested padding is shorter than the history.
func (d *Data) ToVector(opts ...VectorOption) (types.Vector, error) {
	var o vectorOptions
	for _, opt := range opts {
		opt(&o)
	}

	n, err := d.Len()
	if err != nil {
		return nil, err
	}
	size := n
	if o.pad {
		if o.padTo < n {
			return nil, fmt.Errorf("%w: pad to %d, have %d rounds", types.ErrPadTooShort, o.padTo, n)
		}
		size = o.padTo
	}

	xi, zi := d.x.increments(), d.z.increments()
	v := make(types.Vector, size)
	for t := 0; t < n; t++ {
		put(&v[t], types.ColXIncrements, xi[t])
		put(&v[t], types.ColXFlags, d.x.flags[t])
		put(&v[t], types.ColZIncrements, zi[t])
		put(&v[t], types.ColZFlags, d.z.flags[t])
	}
	for t := n; t < size; t++ {
		for c := range v[t] {
			v[t][c] = o.padVal
		}
	}
	return v, nil
}

func put(r *types.Row, off int, b types.Bits) {
	for i, x := range b {
		r[off+i] = int8(x)
	}
}

// FromVector rebuilds a history from its interchange vector. Padding-mask
// rows are dropped and raw syndromes are recovered by integrating the
// increments.
func FromVector(v types.Vector) (*Data, error) {
	rows, err := v.Unmasked()
	if err != nil {
		return nil, err
	}
	d := New()
	var xs, zs types.Bits
	for _, r := range rows {
		xs = xs.Xor(r.Increments(types.PauliX))
		zs = zs.Xor(r.Increments(types.PauliZ))
		d.x.syndromes = append(d.x.syndromes, xs)
		d.x.flags = append(d.x.flags, r.Flags(types.PauliX))
		d.z.syndromes = append(d.z.syndromes, zs)
		d.z.flags = append(d.z.flags, r.Flags(types.PauliZ))
	}
	return d, nil
}
