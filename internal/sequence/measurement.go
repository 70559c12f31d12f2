package sequence

import (
	"fmt"

	"github.com/mesh-intelligence/steane/internal/code"
	"github.com/mesh-intelligence/steane/pkg/types"
)

// Measurement is the classical readout of one flagged stabilizer circuit,
// keyed by qubit index.
type Measurement map[int]uint8

// CircuitsPerRound is the number of stabilizer circuits measured per round:
// the three X stabilizers followed by the three Z stabilizers.
const CircuitsPerRound = 6

// AppendRound translates one round of circuit readouts into one X and one Z
// entry, reading the ancilla qubit for the syndrome bit and the flag qubit
// for the flag bit. The round is validated as a whole before either basis
// is appended.
func (d *Data) AppendRound(round []Measurement) error {
	if len(round) != CircuitsPerRound {
		return fmt.Errorf("%w: want %d circuit readouts, got %d", types.ErrInvalidShape, CircuitsPerRound, len(round))
	}
	var syn, flg [2]types.Bits
	for i, m := range round {
		b, k := i/3, i%3
		s, err := readQubit(m, code.AncillaQubit)
		if err != nil {
			return fmt.Errorf("circuit %d: %w", i, err)
		}
		f, err := readQubit(m, code.FlagQubit)
		if err != nil {
			return fmt.Errorf("circuit %d: %w", i, err)
		}
		syn[b][k], flg[b][k] = s, f
	}
	if err := d.AppendBits(types.PauliX, syn[0], flg[0]); err != nil {
		return err
	}
	return d.AppendBits(types.PauliZ, syn[1], flg[1])
}

func readQubit(m Measurement, q int) (uint8, error) {
	v, ok := m[q]
	if !ok {
		return 0, fmt.Errorf("%w: no readout for qubit %d", types.ErrInvalidShape, q)
	}
	if v > 1 {
		return 0, fmt.Errorf("%w: qubit %d read %d", types.ErrInvalidBit, q, v)
	}
	return v, nil
}
