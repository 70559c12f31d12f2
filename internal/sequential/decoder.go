// Package sequential decodes a round-by-round syndrome history into one net
// correction per Pauli type. Each basis runs a small state machine that
// waits one step after a weight-1 increment or a single flag before it
// commits to a correction, so a flaky ancilla round or a flagged circuit is
// resolved with the next round's data instead of being corrected blindly.
package sequential

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/steane/internal/code"
	"github.com/mesh-intelligence/steane/internal/lot"
	"github.com/mesh-intelligence/steane/internal/sequence"
	"github.com/mesh-intelligence/steane/pkg/types"
)

// Name identifies this decoder in stored outcomes.
const Name = "lot-sequential"

var _ types.SequenceDecoder = (*Decoder)(nil)

// Option configures a Decoder.
type Option func(*Decoder)

// WithFinalize controls what happens to a signal still pending when the
// history ends. By default it is dropped and reported as Pending; with
// finalize it is resolved against the last available step.
func WithFinalize(finalize bool) Option {
	return func(d *Decoder) {
		d.finalize = finalize
	}
}

// WithLogger sets the logger used for per-step debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Decoder is the lookup-table sequential decoder. It holds no per-run
// state and is safe for concurrent use.
type Decoder struct {
	finalize bool
	logger   *slog.Logger
	plain    *lot.Decoder
	// flagged[b][i] is the flagged table for plaquette i of flag basis b.
	flagged [2][3]*lot.Decoder
}

// New returns a sequential decoder.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		logger: slog.Default(),
		plain:  lot.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	for b, p := range types.Bases {
		stabs, _ := code.Stabilizers(p)
		for i, s := range stabs {
			// Stabilizers built by the code package always carry a valid type.
			d.flagged[b][i], _ = lot.NewFlagged(s)
		}
	}
	return d
}

// Event is one emitted correction.
type Event struct {
	// Step is the time step at which the correction was emitted.
	Step int
	// Signal is the state that was resolved.
	Signal Signal
	// Syndrome is the increment sum over the resolved window.
	Syndrome types.Bits
	// Plaquette is the flagged plaquette for a FLAG event, -1 otherwise.
	Plaquette  int
	Correction types.Correction
	// Finalized marks an event resolved after the history ended.
	Finalized bool
}

// BasisResult is the outcome for one correction basis.
type BasisResult struct {
	Correction types.Correction
	Events     []Event
	// Pending is the signal left unresolved at the end of the history.
	// It is always SignalNone when the decoder finalizes.
	Pending Signal
}

// Result holds the outcome per correction basis.
type Result struct {
	X BasisResult
	Z BasisResult
}

// Get returns the result for correction basis p.
func (r Result) Get(p types.Pauli) BasisResult {
	if p == types.PauliZ {
		return r.Z
	}
	return r.X
}

// Corrections returns the compiled correction per basis.
func (r Result) Corrections() types.Corrections {
	return types.Corrections{X: r.X.Correction, Z: r.Z.Correction}
}

// Sources returns the increment and flag bases that drive corrections of
// type p: X corrections come from Z increments gated by X flags, and Z
// corrections from X increments gated by Z flags.
func Sources(p types.Pauli) (increments, flags types.Pauli, err error) {
	increments, err = p.Complement()
	if err != nil {
		return "", "", err
	}
	return increments, p, nil
}

// Decode validates the whole vector, strips padding rows and runs the state
// machine for both correction bases. Nothing is decoded when any row is
// malformed.
func (d *Decoder) Decode(v types.Vector) (Result, error) {
	rows, err := v.Unmasked()
	if err != nil {
		return Result{}, err
	}
	var res Result
	for _, p := range types.Bases {
		br, err := d.decodeBasis(rows, p)
		if err != nil {
			return Result{}, err
		}
		if p == types.PauliZ {
			res.Z = br
		} else {
			res.X = br
		}
	}
	return res, nil
}

// DecodeData decodes a syndrome history container.
func (d *Decoder) DecodeData(data *sequence.Data) (Result, error) {
	if data == nil {
		return Result{}, types.ErrNilSequence
	}
	v, err := data.ToVector()
	if err != nil {
		return Result{}, err
	}
	return d.Decode(v)
}

// DecodeToCorrection returns the compiled correction per basis.
func (d *Decoder) DecodeToCorrection(v types.Vector) (types.Corrections, error) {
	res, err := d.Decode(v)
	if err != nil {
		return types.Corrections{}, err
	}
	return res.Corrections(), nil
}

// DecodeToParity returns, per correction basis, inputParity plus the
// logical parity of the compiled correction after classical cleanup,
// mod 2.
func (d *Decoder) DecodeToParity(v types.Vector, inputParity uint8) (types.Parities, error) {
	if inputParity > 1 {
		return types.Parities{}, fmt.Errorf("%w: %d", types.ErrInvalidParity, inputParity)
	}
	cs, err := d.DecodeToCorrection(v)
	if err != nil {
		return types.Parities{}, err
	}
	return types.Parities{
		X: Parity(cs.X, inputParity),
		Z: Parity(cs.Z, inputParity),
	}, nil
}

// Parity is the logical parity a block prepared with inputParity carries
// once c has been applied.
func Parity(c types.Correction, inputParity uint8) uint8 {
	return (inputParity + lot.CorrectedLogicalParity(code.WordFromCorrection(c))) % 2
}

// Compile XORs corrections into one vector. No corrections compile to the
// all-zero vector.
func Compile(corrections ...types.Correction) types.Correction {
	var out types.Correction
	for _, c := range corrections {
		out = out.Xor(c)
	}
	return out
}

// StepCorrections decodes step t on its own: the increment at t is looked
// up in the flagged table when the flag basis fired on exactly one
// plaquette at t-1, and in the plain table otherwise.
func (d *Decoder) StepCorrections(v types.Vector, t int) (types.Corrections, error) {
	rows, err := v.Unmasked()
	if err != nil {
		return types.Corrections{}, err
	}
	if t < 0 || t >= len(rows) {
		return types.Corrections{}, fmt.Errorf("%w: %d of %d", types.ErrInvalidStep, t, len(rows))
	}
	var out types.Corrections
	for _, p := range types.Bases {
		incBasis, flagBasis, err := Sources(p)
		if err != nil {
			return types.Corrections{}, err
		}
		table := d.plain
		if t > 0 {
			if i, ok := singleFlag(rows[t-1].Flags(flagBasis)); ok {
				table = d.flaggedTable(flagBasis, i)
			}
		}
		c := table.Correction(rows[t].Increments(incBasis))
		if p == types.PauliZ {
			out.Z = c
		} else {
			out.X = c
		}
	}
	return out, nil
}

func (d *Decoder) flaggedTable(flagBasis types.Pauli, plaquette int) *lot.Decoder {
	b := 0
	if flagBasis == types.PauliZ {
		b = 1
	}
	return d.flagged[b][plaquette]
}

// singleFlag returns the plaquette index when exactly one flag is set.
func singleFlag(flags types.Bits) (int, bool) {
	if flags.Weight() != 1 {
		return -1, false
	}
	for i, f := range flags {
		if f == 1 {
			return i, true
		}
	}
	return -1, false
}

// machine is the per-basis run state.
type machine struct {
	signal    Signal
	s0        int
	plaquette int
}

func (d *Decoder) decodeBasis(rows types.Vector, p types.Pauli) (BasisResult, error) {
	incBasis, flagBasis, err := Sources(p)
	if err != nil {
		return BasisResult{}, err
	}
	inc := make([]types.Bits, len(rows))
	flags := make([]types.Bits, len(rows))
	for t, r := range rows {
		inc[t] = r.Increments(incBasis)
		flags[t] = r.Flags(flagBasis)
	}

	var (
		res BasisResult
		m   = machine{plaquette: -1}
	)
	for t := range rows {
		switch m.signal {
		case SignalNone:
			if i, ok := singleFlag(flags[t]); ok {
				m.signal, m.plaquette = SignalFlag, i
			} else if inc[t].Weight() == 1 {
				m.signal = SignalIncrement
			} else {
				m.s0 = t
			}
		default:
			res.Events = append(res.Events, d.resolve(&m, inc, flagBasis, t, false))
		}
	}

	if m.signal != SignalNone && len(rows) > 0 {
		if d.finalize {
			res.Events = append(res.Events, d.resolve(&m, inc, flagBasis, len(rows)-1, true))
		} else {
			d.logger.Debug("dropping unresolved signal",
				"basis", string(p), "signal", m.signal.String(), "since", m.s0)
			res.Pending = m.signal
		}
	}

	cs := make([]types.Correction, len(res.Events))
	for i, e := range res.Events {
		cs[i] = e.Correction
	}
	res.Correction = Compile(cs...)
	return res, nil
}

// resolve emits the correction for the pending signal from the increments
// accumulated over [s0, t] and resets the machine to NONE at t.
func (d *Decoder) resolve(m *machine, inc []types.Bits, flagBasis types.Pauli, t int, finalized bool) Event {
	var acc types.Bits
	for i := m.s0; i <= t; i++ {
		acc = acc.Xor(inc[i])
	}
	table, plaquette := d.plain, -1
	if m.signal == SignalFlag {
		table, plaquette = d.flaggedTable(flagBasis, m.plaquette), m.plaquette
	}
	e := Event{
		Step:       t,
		Signal:     m.signal,
		Syndrome:   acc,
		Plaquette:  plaquette,
		Correction: table.Correction(acc),
		Finalized:  finalized,
	}
	d.logger.Debug("resolved signal",
		"signal", e.Signal.String(), "step", t, "from", m.s0,
		"syndrome", acc.Key(), "plaquette", plaquette, "qubits", e.Correction.Qubits())
	*m = machine{s0: t, plaquette: -1}
	return e
}
