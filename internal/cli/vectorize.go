package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/steane/internal/sequence"
)

type vectorRecord struct {
	TrialID string  `json:"trial_id"`
	Vector  [][]int `json:"vector"`
}

func newVectorizeCmd(e *env) *cobra.Command {
	var pad int
	cmd := &cobra.Command{
		Use:   "vectorize <trials.jsonl|->",
		Short: "Convert trial histories to the 12-column interchange vector",
		Long: "Print each trial's history as rows of\n" +
			"[X increments, X flags, Z increments, Z flags]. With --pad, histories are\n" +
			"right-padded to a fixed length with rows of -1.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trials, err := readTrialsFile(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			var opts []sequence.VectorOption
			if pad > 0 {
				opts = append(opts, sequence.WithPadding(pad, -1))
			}

			records := make([]vectorRecord, 0, len(trials))
			for i, t := range trials {
				data, err := sequence.FromHistory(t.History)
				if err != nil {
					return userError(fmt.Errorf("trial %d: %w", i, err))
				}
				v, err := data.ToVector(opts...)
				if err != nil {
					return userError(fmt.Errorf("trial %d: %w", i, err))
				}
				records = append(records, vectorRecord{TrialID: t.TrialID, Vector: v.Ints()})
			}
			e.logger.Debug("vectorized", "trials", len(records), "pad", pad)

			if e.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), records)
			}
			out := cmd.OutOrStdout()
			for _, r := range records {
				fmt.Fprintf(out, "# %s\n", r.TrialID)
				for _, row := range r.Vector {
					fmt.Fprintln(out, row)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&pad, "pad", 0, "pad every history to this many rows")
	return cmd
}
