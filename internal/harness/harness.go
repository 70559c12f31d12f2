// Package harness runs the fault-tolerance check over recorded trials: each
// trial's history is decoded, the decoded logical parity of the basis that
// spoils the readout is compared with the classically measured parity, and
// the result is recorded as an Outcome.
package harness

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/steane/internal/sequence"
	"github.com/mesh-intelligence/steane/pkg/types"
)

// Option configures a Harness.
type Option func(*Harness)

// WithWorkers bounds the number of trials evaluated concurrently. Values
// below one are ignored.
func WithWorkers(n int) Option {
	return func(h *Harness) {
		if n > 0 {
			h.workers = n
		}
	}
}

// WithRegisterer registers the harness metrics on reg instead of a private
// registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(h *Harness) {
		h.reg = reg
	}
}

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithDecoderName sets the decoder name recorded on each Outcome.
func WithDecoderName(name string) Option {
	return func(h *Harness) {
		h.name = name
	}
}

// WithClock overrides the time source used for Outcome.CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(h *Harness) {
		if now != nil {
			h.now = now
		}
	}
}

// Harness evaluates trials against one decoder. Trials share nothing but
// the decoder, which must be safe for concurrent use.
type Harness struct {
	decoder types.SequenceDecoder
	name    string
	workers int
	reg     prometheus.Registerer
	logger  *slog.Logger
	now     func() time.Time
	metrics *metrics
}

// New returns a harness for decoder.
func New(decoder types.SequenceDecoder, opts ...Option) *Harness {
	h := &Harness{
		decoder: decoder,
		name:    "decoder",
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.reg == nil {
		h.reg = prometheus.NewRegistry()
	}
	h.metrics = newMetrics(h.reg)
	return h
}

// Report is the result of one Evaluate call.
type Report struct {
	// Outcomes holds one entry per trial, in input order.
	Outcomes []*types.Outcome
	Passed   int
	Failed   int
}

// PassRate returns the fraction of passed trials, or 0 for an empty report.
func (r Report) PassRate() float64 {
	n := r.Passed + r.Failed
	if n == 0 {
		return 0
	}
	return float64(r.Passed) / float64(n)
}

// Failures returns the outcomes that did not pass.
func (r Report) Failures() []*types.Outcome {
	var out []*types.Outcome
	for _, o := range r.Outcomes {
		if !o.Passed {
			out = append(out, o)
		}
	}
	return out
}

// Evaluate checks every trial, at most WithWorkers at a time. The first
// malformed trial or decoder error cancels the remaining work and is
// returned; no partial report is produced.
func (h *Harness) Evaluate(ctx context.Context, trials []*types.Trial) (Report, error) {
	outcomes := make([]*types.Outcome, len(trials))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers)
	for i, trial := range trials {
		i, trial := i, trial
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			o, err := h.EvaluateTrial(trial)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	r := Report{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Passed {
			r.Passed++
		} else {
			r.Failed++
		}
	}
	h.logger.Info("evaluation complete",
		"decoder", h.name, "trials", len(trials), "passed", r.Passed, "failed", r.Failed)
	return r, nil
}

// EvaluateTrial decodes one trial. The correction checked is the one of
// the basis complementary to the readout basis, and the trial passes when
// its decoded parity equals the measured final parity.
func (h *Harness) EvaluateTrial(trial *types.Trial) (*types.Outcome, error) {
	o, err := h.evaluate(trial)
	if err != nil {
		h.metrics.trials.WithLabelValues(LabelError).Inc()
		return nil, err
	}
	label := LabelFailed
	if o.Passed {
		label = LabelPassed
	}
	h.metrics.trials.WithLabelValues(label).Inc()
	h.metrics.weight.Observe(float64(o.Correction.Weight()))
	return o, nil
}

func (h *Harness) evaluate(trial *types.Trial) (*types.Outcome, error) {
	if trial == nil {
		return nil, fmt.Errorf("%w: nil trial", types.ErrInvalidData)
	}
	if err := trial.Validate(); err != nil {
		return nil, fmt.Errorf("trial %s: %w", trial.TrialID, err)
	}
	basis, err := trial.DecodeBasis()
	if err != nil {
		return nil, err
	}
	data, err := sequence.FromHistory(trial.History)
	if err != nil {
		return nil, fmt.Errorf("trial %s: %w", trial.TrialID, err)
	}
	if data.NeedsExtraRound() {
		h.metrics.open.Inc()
		h.logger.Warn("history ends with an unresolved signal", "trial_id", trial.TrialID)
	}
	v, err := data.ToVector()
	if err != nil {
		return nil, err
	}

	cs, err := h.decoder.DecodeToCorrection(v)
	if err != nil {
		return nil, fmt.Errorf("trial %s: decode: %w", trial.TrialID, err)
	}
	ps, err := h.decoder.DecodeToParity(v, trial.InputParity)
	if err != nil {
		return nil, fmt.Errorf("trial %s: decode parity: %w", trial.TrialID, err)
	}

	decoded := ps.Get(basis)
	o := &types.Outcome{
		TrialID:       trial.TrialID,
		Decoder:       h.name,
		Basis:         basis,
		Correction:    cs.Get(basis),
		DecodedParity: decoded,
		FinalParity:   trial.FinalParity,
		Passed:        decoded == trial.FinalParity,
		CreatedAt:     h.now(),
	}
	h.logger.Debug("trial evaluated",
		"trial_id", trial.TrialID, "basis", string(basis),
		"decoded", decoded, "final", trial.FinalParity, "passed", o.Passed)
	return o, nil
}
