package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTableMapping maps JSONL files to their SQLite tables and columns.
// Tables with foreign keys load after the tables they reference.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{trialsJSONL, "trials", []string{"trial_id", "readout_basis", "input_parity", "final_parity", "history", "created_at"}},
	{outcomesJSONL, "outcomes", []string{"outcome_id", "trial_id", "decoder", "basis", "correction", "decoded_parity", "final_parity", "passed", "created_at"}},
}

// loadAllJSONL reads each JSONL file from dataDir and inserts its records
// into the matching table. Loading is transactional: either every file
// loads or the database stays empty. Malformed lines and unknown fields are
// ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disabling foreign keys for load: %w", err)
	}

	for _, mapping := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, mapping.file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, mapping.table, mapping.columns, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
	}

	if _, err := tx.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("re-enabling foreign keys: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts parsed JSONL records into table. Only the listed
// columns are read; nested JSON values are stored re-serialized.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) error {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			val, ok := obj[col]
			if !ok {
				args[i] = nil
				continue
			}
			switch v := val.(type) {
			case map[string]any, []any:
				b, err := json.Marshal(v)
				if err != nil {
					args[i] = nil
					continue
				}
				args[i] = string(b)
			default:
				args[i] = val
			}
		}

		if _, err := stmt.Exec(args...); err != nil {
			// Records violating NOT NULL constraints are skipped.
			continue
		}
	}
	return nil
}
