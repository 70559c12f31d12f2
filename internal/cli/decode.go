package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/steane/internal/sequence"
	"github.com/mesh-intelligence/steane/internal/sequential"
	"github.com/mesh-intelligence/steane/pkg/types"
)

type basisReport struct {
	correction types.Correction
	Qubits     types.Qubits `json:"qubits"`
	Pending    string       `json:"pending"`
	Events     int          `json:"events"`
}

type decodeRecord struct {
	TrialID string      `json:"trial_id"`
	X       basisReport `json:"x"`
	Z       basisReport `json:"z"`
}

func newBasisReport(r sequential.BasisResult) basisReport {
	return basisReport{
		correction: r.Correction,
		Qubits:     r.Correction.Qubits(),
		Pending:    r.Pending.String(),
		Events:     len(r.Events),
	}
}

func newDecodeCmd(e *env) *cobra.Command {
	var finalize bool
	cmd := &cobra.Command{
		Use:   "decode <trials.jsonl|->",
		Short: "Decode trial histories with the sequential decoder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trials, err := readTrialsFile(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("finalize") {
				finalize = e.cfg.GetBool(cfgKeyFinalize)
			}
			dec := sequential.New(sequential.WithFinalize(finalize), sequential.WithLogger(e.logger))

			records := make([]decodeRecord, 0, len(trials))
			for i, t := range trials {
				data, err := sequence.FromHistory(t.History)
				if err != nil {
					return userError(fmt.Errorf("trial %d: %w", i, err))
				}
				res, err := dec.DecodeData(data)
				if err != nil {
					return userError(fmt.Errorf("trial %d: %w", i, err))
				}
				records = append(records, decodeRecord{
					TrialID: t.TrialID,
					X:       newBasisReport(res.X),
					Z:       newBasisReport(res.Z),
				})
			}

			if e.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), records)
			}
			out := cmd.OutOrStdout()
			for _, r := range records {
				fmt.Fprintf(out, "%s: X on %s, Z on %s", r.TrialID, qubitsString(r.X.correction), qubitsString(r.Z.correction))
				for _, b := range []struct {
					name string
					rep  basisReport
				}{{"X", r.X}, {"Z", r.Z}} {
					if b.rep.Pending != sequential.SignalNone.String() {
						fmt.Fprintf(out, " (%s pending %s)", b.name, b.rep.Pending)
					}
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&finalize, "finalize", false, "resolve signals left pending at the end of a history")
	return cmd
}

