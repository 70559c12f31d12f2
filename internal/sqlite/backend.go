// Package sqlite stores trials and decoder outcomes. JSONL files in the
// data directory are the source of truth; SQLite is the query engine and
// is rebuilt from the files on every Attach.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/steane/pkg/types"
)

// dbFile is the SQLite database rebuilt under DataDir.
const dbFile = "steane.db"

var _ types.Store = (*Backend)(nil)

// Backend implements types.Store on SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	now      func() time.Time
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{now: time.Now}
}

// Attach creates DataDir if needed, builds a fresh database and loads the
// JSONL files into it. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, dbFile)
	// The database is derived state; start from scratch every time.
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	for _, ddl := range append(append([]string(nil), schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}
	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	config.DataDir = dataDir
	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. After Detach, all operations return
// ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// SaveTrial validates and upserts a trial, then rewrites trials.jsonl.
func (b *Backend) SaveTrial(t *types.Trial) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrStoreDetached
	}
	if t == nil {
		return "", types.ErrInvalidData
	}
	if err := t.Validate(); err != nil {
		return "", err
	}
	if t.TrialID == "" {
		t.TrialID = generateUUID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = b.now().UTC()
	}
	history, err := json.Marshal(t.History)
	if err != nil {
		return "", fmt.Errorf("marshaling history: %w", err)
	}

	_, err = b.db.Exec(
		`INSERT INTO trials (trial_id, readout_basis, input_parity, final_parity, history, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(trial_id) DO UPDATE SET
		   readout_basis = excluded.readout_basis,
		   input_parity = excluded.input_parity,
		   final_parity = excluded.final_parity,
		   history = excluded.history,
		   created_at = excluded.created_at`,
		t.TrialID, string(t.ReadoutBasis), t.InputParity, t.FinalParity, string(history), formatTime(t.CreatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting trial: %w", err)
	}
	if err := b.persistTrialsJSONL(); err != nil {
		return "", fmt.Errorf("persisting %s: %w", trialsJSONL, err)
	}
	return t.TrialID, nil
}

// GetTrial returns the trial with the given ID or ErrNotFound.
func (b *Backend) GetTrial(id string) (*types.Trial, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	row := b.db.QueryRow(
		"SELECT trial_id, readout_basis, input_parity, final_parity, history, created_at FROM trials WHERE trial_id = ?",
		id,
	)
	t, err := hydrateTrial(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trial %s: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting trial %s: %w", id, err)
	}
	return t, nil
}

// SaveOutcome records a decoder outcome for a stored trial, then rewrites
// outcomes.jsonl. Returns ErrNotFound when the trial is unknown.
func (b *Backend) SaveOutcome(o *types.Outcome) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrStoreDetached
	}
	if o == nil || o.TrialID == "" || o.Decoder == "" || !o.Basis.Valid() {
		return "", types.ErrInvalidData
	}
	if o.DecodedParity > 1 || o.FinalParity > 1 {
		return "", types.ErrInvalidParity
	}

	var exists int
	err := b.db.QueryRow("SELECT 1 FROM trials WHERE trial_id = ?", o.TrialID).Scan(&exists)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("trial %s: %w", o.TrialID, types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("checking trial existence: %w", err)
	}

	if o.OutcomeID == "" {
		o.OutcomeID = generateUUID()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = b.now().UTC()
	}
	correction, err := json.Marshal(o.Correction)
	if err != nil {
		return "", fmt.Errorf("marshaling correction: %w", err)
	}

	_, err = b.db.Exec(
		`INSERT OR REPLACE INTO outcomes
		 (outcome_id, trial_id, decoder, basis, correction, decoded_parity, final_parity, passed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.OutcomeID, o.TrialID, o.Decoder, string(o.Basis), string(correction),
		o.DecodedParity, o.FinalParity, o.Passed, formatTime(o.CreatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting outcome: %w", err)
	}
	if err := b.persistOutcomesJSONL(); err != nil {
		return "", fmt.Errorf("persisting %s: %w", outcomesJSONL, err)
	}
	return o.OutcomeID, nil
}

// Outcomes returns outcomes matching filter, oldest first.
func (b *Backend) Outcomes(filter types.OutcomeFilter) ([]*types.Outcome, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.queryOutcomes(filter)
}

func (b *Backend) queryOutcomes(filter types.OutcomeFilter) ([]*types.Outcome, error) {
	var (
		where []string
		args  []any
	)
	if filter.TrialID != "" {
		where = append(where, "trial_id = ?")
		args = append(args, filter.TrialID)
	}
	if filter.Decoder != "" {
		where = append(where, "decoder = ?")
		args = append(args, filter.Decoder)
	}
	if filter.Passed != nil {
		where = append(where, "passed = ?")
		args = append(args, *filter.Passed)
	}
	query := "SELECT outcome_id, trial_id, decoder, basis, correction, decoded_parity, final_parity, passed, created_at FROM outcomes"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at ASC, outcome_id ASC"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var out []*types.Outcome
	for rows.Next() {
		o, err := hydrateOutcome(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcomes: %w", err)
	}
	return out, nil
}

// Summary counts stored trials and outcomes.
func (b *Backend) Summary() (types.Summary, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.Summary{}, types.ErrStoreDetached
	}
	var s types.Summary
	if err := b.db.QueryRow("SELECT COUNT(*) FROM trials").Scan(&s.Trials); err != nil {
		return types.Summary{}, fmt.Errorf("counting trials: %w", err)
	}
	err := b.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(passed), 0) FROM outcomes",
	).Scan(&s.Outcomes, &s.Passed)
	if err != nil {
		return types.Summary{}, fmt.Errorf("counting outcomes: %w", err)
	}
	s.Failed = s.Outcomes - s.Passed
	return s, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func hydrateTrial(row scanner) (*types.Trial, error) {
	var (
		t                types.Trial
		basis            string
		history, created string
	)
	if err := row.Scan(&t.TrialID, &basis, &t.InputParity, &t.FinalParity, &history, &created); err != nil {
		return nil, err
	}
	t.ReadoutBasis = types.Pauli(basis)
	if err := json.Unmarshal([]byte(history), &t.History); err != nil {
		return nil, fmt.Errorf("%w: trial %s history: %v", types.ErrInvalidData, t.TrialID, err)
	}
	ts, err := parseTime(created)
	if err != nil {
		return nil, fmt.Errorf("%w: trial %s created_at: %v", types.ErrInvalidData, t.TrialID, err)
	}
	t.CreatedAt = ts
	return &t, nil
}

func hydrateOutcome(row scanner) (*types.Outcome, error) {
	var (
		o                   types.Outcome
		basis               string
		correction, created string
	)
	err := row.Scan(&o.OutcomeID, &o.TrialID, &o.Decoder, &basis, &correction,
		&o.DecodedParity, &o.FinalParity, &o.Passed, &created)
	if err != nil {
		return nil, fmt.Errorf("scanning outcome: %w", err)
	}
	o.Basis = types.Pauli(basis)
	if err := json.Unmarshal([]byte(correction), &o.Correction); err != nil {
		return nil, fmt.Errorf("%w: outcome %s correction: %v", types.ErrInvalidData, o.OutcomeID, err)
	}
	ts, err := parseTime(created)
	if err != nil {
		return nil, fmt.Errorf("%w: outcome %s created_at: %v", types.ErrInvalidData, o.OutcomeID, err)
	}
	o.CreatedAt = ts
	return &o, nil
}

// persistTrialsJSONL writes every stored trial to trials.jsonl, oldest
// first. The caller must hold b.mu.
func (b *Backend) persistTrialsJSONL() error {
	rows, err := b.db.Query(
		"SELECT trial_id, readout_basis, input_parity, final_parity, history, created_at FROM trials ORDER BY created_at ASC, trial_id ASC",
	)
	if err != nil {
		return fmt.Errorf("querying trials for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		t, err := hydrateTrial(rows)
		if err != nil {
			return fmt.Errorf("scanning trial for JSONL: %w", err)
		}
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshaling trial for JSONL: %w", err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating trials for JSONL: %w", err)
	}
	return writeJSONL(filepath.Join(b.config.DataDir, trialsJSONL), records)
}

// persistOutcomesJSONL writes every stored outcome to outcomes.jsonl. The
// caller must hold b.mu.
func (b *Backend) persistOutcomesJSONL() error {
	outcomes, err := b.queryOutcomes(types.OutcomeFilter{})
	if err != nil {
		return err
	}
	records := make([]json.RawMessage, 0, len(outcomes))
	for _, o := range outcomes {
		data, err := json.Marshal(o)
		if err != nil {
			return fmt.Errorf("marshaling outcome for JSONL: %w", err)
		}
		records = append(records, data)
	}
	return writeJSONL(filepath.Join(b.config.DataDir, outcomesJSONL), records)
}
