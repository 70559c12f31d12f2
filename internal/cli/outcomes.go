package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/steane/pkg/types"
)

type outcomesResult struct {
	Outcomes []*types.Outcome `json:"outcomes"`
	Summary  types.Summary    `json:"summary"`
}

func newOutcomesCmd(e *env) *cobra.Command {
	var (
		trialID string
		decoder string
		passed  bool
		failed  bool
	)
	cmd := &cobra.Command{
		Use:   "outcomes",
		Short: "List stored fault-tolerance outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passed && failed {
				return userError(fmt.Errorf("--passed and --failed are mutually exclusive"))
			}
			filter := types.OutcomeFilter{TrialID: trialID, Decoder: decoder}
			if passed || failed {
				filter.Passed = &passed
			}

			store, err := e.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			outcomes, err := store.Outcomes(filter)
			if err != nil {
				return sysError(fmt.Errorf("list outcomes: %w", err))
			}
			summary, err := store.Summary()
			if err != nil {
				return sysError(fmt.Errorf("summarize store: %w", err))
			}

			if e.flags.jsonMode {
				if outcomes == nil {
					outcomes = []*types.Outcome{}
				}
				return printJSON(cmd.OutOrStdout(), outcomesResult{Outcomes: outcomes, Summary: summary})
			}
			out := cmd.OutOrStdout()
			for _, o := range outcomes {
				verdict := "FAIL"
				if o.Passed {
					verdict = "PASS"
				}
				fmt.Fprintf(out, "%s %s %s basis=%s correction=%s decoded=%d final=%d\n",
					verdict, o.TrialID, o.Decoder, o.Basis, qubitsString(o.Correction), o.DecodedParity, o.FinalParity)
			}
			fmt.Fprintf(out, "%d trials, %d outcomes (%d passed, %d failed)\n",
				summary.Trials, summary.Outcomes, summary.Passed, summary.Failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&trialID, "trial", "", "only outcomes of this trial")
	cmd.Flags().StringVar(&decoder, "decoder", "", "only outcomes of this decoder")
	cmd.Flags().BoolVar(&passed, "passed", false, "only passed outcomes")
	cmd.Flags().BoolVar(&failed, "failed", false, "only failed outcomes")
	return cmd
}
