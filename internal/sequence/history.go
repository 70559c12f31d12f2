package sequence

import (
	"fmt"

	"github.com/mesh-intelligence/steane/pkg/types"
)

// FromHistory builds a Data from a stored trial history. Every round of
// both bases is validated before anything is returned.
func FromHistory(h types.History) (*Data, error) {
	if len(h.XSyndromes) != len(h.XFlags) || len(h.ZSyndromes) != len(h.ZFlags) {
		return nil, fmt.Errorf("%w: syndrome and flag rounds differ", types.ErrLengthMismatch)
	}
	d := New()
	for i := range h.XSyndromes {
		if err := d.Append(types.PauliX, h.XSyndromes[i], h.XFlags[i]); err != nil {
			return nil, fmt.Errorf("X round %d: %w", i, err)
		}
	}
	for i := range h.ZSyndromes {
		if err := d.Append(types.PauliZ, h.ZSyndromes[i], h.ZFlags[i]); err != nil {
			return nil, fmt.Errorf("Z round %d: %w", i, err)
		}
	}
	if _, err := d.Len(); err != nil {
		return nil, err
	}
	return d, nil
}

// History returns d in the stored trial form.
func (d *Data) History() types.History {
	conv := func(bs []types.Bits) [][]int {
		out := make([][]int, len(bs))
		for i, b := range bs {
			out[i] = b.Ints()
		}
		return out
	}
	return types.History{
		XSyndromes: conv(d.x.syndromes),
		XFlags:     conv(d.x.flags),
		ZSyndromes: conv(d.z.syndromes),
		ZFlags:     conv(d.z.flags),
	}
}
