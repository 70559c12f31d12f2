package sqlite

// Schema DDL. Bit vectors are stored as JSON arrays in TEXT columns.
const (
	createTrials = `CREATE TABLE trials (
    trial_id TEXT PRIMARY KEY,
    readout_basis TEXT NOT NULL,
    input_parity INTEGER NOT NULL,
    final_parity INTEGER NOT NULL,
    history TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createOutcomes = `CREATE TABLE outcomes (
    outcome_id TEXT PRIMARY KEY,
    trial_id TEXT NOT NULL,
    decoder TEXT NOT NULL,
    basis TEXT NOT NULL,
    correction TEXT NOT NULL,
    decoded_parity INTEGER NOT NULL,
    final_parity INTEGER NOT NULL,
    passed INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (trial_id) REFERENCES trials(trial_id)
);`
)

// Index DDL for outcome queries.
const (
	idxOutcomesTrial   = `CREATE INDEX idx_outcomes_trial ON outcomes(trial_id);`
	idxOutcomesDecoder = `CREATE INDEX idx_outcomes_decoder ON outcomes(decoder, passed);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createTrials,
	createOutcomes,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxOutcomesTrial,
	idxOutcomesDecoder,
}
