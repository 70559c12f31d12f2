package harness

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/steane/pkg/types"
)

// ReadTrials decodes one JSON trial per line from r. Blank lines are
// skipped. Every trial is validated; the first bad line fails the read
// with its line number.
func ReadTrials(r io.Reader) ([]*types.Trial, error) {
	var trials []*types.Trial
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var t types.Trial
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, types.ErrInvalidData, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		trials = append(trials, &t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning trials: %w", err)
	}
	return trials, nil
}

// WriteOutcomes writes one JSON outcome per line to w.
func WriteOutcomes(w io.Writer, outcomes []*types.Outcome) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, o := range outcomes {
		if err := enc.Encode(o); err != nil {
			return fmt.Errorf("encoding outcome %s: %w", o.TrialID, err)
		}
	}
	return bw.Flush()
}
