package cli

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/steane/internal/harness"
	"github.com/mesh-intelligence/steane/internal/sequential"
	"github.com/mesh-intelligence/steane/internal/sqlite"
)

type evaluateSummary struct {
	Trials   int      `json:"trials"`
	Passed   int      `json:"passed"`
	Failed   int      `json:"failed"`
	PassRate float64  `json:"pass_rate"`
	Failures []string `json:"failures,omitempty"`
}

func newEvaluateCmd(e *env) *cobra.Command {
	var (
		workers     int
		finalize    bool
		save        bool
		outPath     string
		metricsPath string
	)
	cmd := &cobra.Command{
		Use:   "evaluate <trials.jsonl|->",
		Short: "Run the fault-tolerance check over recorded trials",
		Long: "Decode every trial and compare the decoded logical parity with the\n" +
			"measured one. With --save, trials and outcomes are written to the trial store.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trials, err := readTrialsFile(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = e.cfg.GetInt(cfgKeyWorkers)
			}
			if !cmd.Flags().Changed("finalize") {
				finalize = e.cfg.GetBool(cfgKeyFinalize)
			}

			var store *sqlite.Backend
			if save {
				if store, err = e.openStore(); err != nil {
					return err
				}
				defer store.Detach()
				// Trials first, so outcomes reference their IDs.
				for i, t := range trials {
					if _, err := store.SaveTrial(t); err != nil {
						return sysError(fmt.Errorf("save trial %d: %w", i, err))
					}
				}
			}

			reg := prometheus.NewRegistry()
			h := harness.New(
				sequential.New(sequential.WithFinalize(finalize), sequential.WithLogger(e.logger)),
				harness.WithWorkers(workers),
				harness.WithRegisterer(reg),
				harness.WithLogger(e.logger),
				harness.WithDecoderName(sequential.Name),
			)
			report, err := h.Evaluate(cmd.Context(), trials)
			if err != nil {
				return userError(err)
			}

			if store != nil {
				for _, o := range report.Outcomes {
					if _, err := store.SaveOutcome(o); err != nil {
						return sysError(fmt.Errorf("save outcome for %s: %w", o.TrialID, err))
					}
				}
			}
			if outPath != "" {
				if err := writeOutcomesFile(outPath, report); err != nil {
					return sysError(err)
				}
			}
			if metricsPath != "" {
				if err := prometheus.WriteToTextfile(metricsPath, reg); err != nil {
					return sysError(fmt.Errorf("write metrics: %w", err))
				}
			}

			sum := evaluateSummary{
				Trials:   len(trials),
				Passed:   report.Passed,
				Failed:   report.Failed,
				PassRate: report.PassRate(),
			}
			for _, o := range report.Failures() {
				sum.Failures = append(sum.Failures, o.TrialID)
			}
			if e.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), sum)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d trials: %d passed, %d failed (%.2f%%)\n",
				sum.Trials, sum.Passed, sum.Failed, 100*sum.PassRate)
			for _, id := range sum.Failures {
				fmt.Fprintf(cmd.OutOrStdout(), "  failed: %s\n", id)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "trials evaluated concurrently (default from config)")
	cmd.Flags().BoolVar(&finalize, "finalize", false, "resolve signals left pending at the end of a history")
	cmd.Flags().BoolVar(&save, "save", false, "store trials and outcomes in the trial store")
	cmd.Flags().StringVar(&outPath, "out", "", "write outcomes as JSONL to this file")
	cmd.Flags().StringVar(&metricsPath, "metrics-file", "", "write Prometheus metrics in text format to this file")
	return cmd
}

func writeOutcomesFile(path string, report harness.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := harness.WriteOutcomes(f, report.Outcomes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
