package types

// Store persists trials and decoder outcomes. Callers attach to a backend,
// read and write, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrStoreDetached.
	Detach() error

	// SaveTrial creates or replaces a trial. When TrialID is empty a new
	// UUID v7 is generated. Returns the ID used.
	SaveTrial(t *Trial) (string, error)

	// GetTrial returns the trial with the given ID or ErrNotFound.
	GetTrial(id string) (*Trial, error)

	// SaveOutcome records a decoder outcome. When OutcomeID is empty a new
	// UUID v7 is generated. Returns the ID used.
	SaveOutcome(o *Outcome) (string, error)

	// Outcomes returns stored outcomes matching filter, oldest first.
	Outcomes(filter OutcomeFilter) ([]*Outcome, error)

	// Summary counts stored trials and outcomes.
	Summary() (Summary, error)
}
