package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// recordValidate checks trial records decoded from JSON.
var recordValidate = validator.New()

// History is the raw measurement record of one trial: per basis, one
// three-bit syndrome and one three-bit flag readout per round.
type History struct {
	XSyndromes [][]int `json:"x_syndromes" validate:"dive,len=3,dive,oneof=0 1"`
	XFlags     [][]int `json:"x_flags" validate:"dive,len=3,dive,oneof=0 1"`
	ZSyndromes [][]int `json:"z_syndromes" validate:"dive,len=3,dive,oneof=0 1"`
	ZFlags     [][]int `json:"z_flags" validate:"dive,len=3,dive,oneof=0 1"`
}

// Trial is one fault-tolerance experiment: the history measured on a block
// prepared with InputParity, and the logical parity FinalParity read out
// classically in ReadoutBasis afterwards.
type Trial struct {
	TrialID      string    `json:"trial_id"`
	ReadoutBasis Pauli     `json:"readout_basis" validate:"oneof=X Z"`
	InputParity  uint8     `json:"input_parity" validate:"oneof=0 1"`
	FinalParity  uint8     `json:"final_parity" validate:"oneof=0 1"`
	History      History   `json:"history"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the trial's field values and that every basis carries the
// same number of syndrome and flag rounds.
func (t *Trial) Validate() error {
	if err := recordValidate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	h := t.History
	n := len(h.XSyndromes)
	for _, l := range []int{len(h.XFlags), len(h.ZSyndromes), len(h.ZFlags)} {
		if l != n {
			return fmt.Errorf("%w: history rounds %d/%d/%d/%d", ErrLengthMismatch,
				len(h.XSyndromes), len(h.XFlags), len(h.ZSyndromes), len(h.ZFlags))
		}
	}
	return nil
}

// DecodeBasis returns the correction basis whose logical parity decides a
// readout in the trial's ReadoutBasis: a Z-basis readout is spoiled by X
// errors, so it is checked against the X correction, and vice versa.
func (t *Trial) DecodeBasis() (Pauli, error) {
	return t.ReadoutBasis.Complement()
}

// Outcome records how one decoder fared on one trial.
type Outcome struct {
	OutcomeID     string     `json:"outcome_id"`
	TrialID       string     `json:"trial_id"`
	Decoder       string     `json:"decoder"`
	Basis         Pauli      `json:"basis"`
	Correction    Correction `json:"correction"`
	DecodedParity uint8      `json:"decoded_parity"`
	FinalParity   uint8      `json:"final_parity"`
	Passed        bool       `json:"passed"`
	CreatedAt     time.Time  `json:"created_at"`
}

// OutcomeFilter narrows Store.Outcomes. Zero-valued fields match anything.
type OutcomeFilter struct {
	TrialID string
	Decoder string
	Passed  *bool
}

// Summary counts stored outcomes.
type Summary struct {
	Trials   int `json:"trials"`
	Outcomes int `json:"outcomes"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
}
