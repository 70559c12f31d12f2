package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mesh-intelligence/steane/internal/harness"
	"github.com/mesh-intelligence/steane/pkg/types"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readTrialsFile loads JSONL trials from path, or from in when path is "-".
func readTrialsFile(path string, in io.Reader) ([]*types.Trial, error) {
	if path == "-" {
		trials, err := harness.ReadTrials(in)
		if err != nil {
			return nil, userError(err)
		}
		return trials, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, userError(fmt.Errorf("open trials: %w", err))
	}
	defer f.Close()
	trials, err := harness.ReadTrials(f)
	if err != nil {
		return nil, userError(fmt.Errorf("%s: %w", path, err))
	}
	return trials, nil
}

// qubitsString renders a correction as its flipped qubits, or "none".
func qubitsString(c types.Correction) string {
	if c.IsZero() {
		return "none"
	}
	return fmt.Sprint(c.Qubits())
}
