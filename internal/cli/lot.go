package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/steane/internal/code"
	"github.com/mesh-intelligence/steane/internal/lot"
	"github.com/mesh-intelligence/steane/pkg/types"
)

type lotResult struct {
	Syndrome   string       `json:"syndrome"`
	Type       string       `json:"type"`
	Flagged    string       `json:"flagged,omitempty"`
	Correction types.Pauli  `json:"correction"`
	Qubits     types.Qubits `json:"qubits"`
}

func newLotCmd(e *env) *cobra.Command {
	var (
		syndromeType string
		flagged      int
	)
	cmd := &cobra.Command{
		Use:   "lot <syndrome>",
		Short: "Look up the single-shot correction for a three-bit syndrome",
		Long: "Decode one syndrome such as 110 (top, left, right) with the lookup table.\n" +
			"With --flagged the table of the flagged stabilizer on that plaquette is used.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bits, err := types.ParseBitString(args[0])
			if err != nil {
				return userError(err)
			}
			s := types.Syndrome{Type: types.SyndromeType(syndromeType), Bits: bits}

			dec := lot.New()
			res := lotResult{Syndrome: bits.Key(), Type: syndromeType}
			if flagged >= 0 {
				p, err := code.Plaquette(flagged)
				if err != nil {
					return userError(err)
				}
				stab, err := types.NewStabilizer(p, types.Pauli(syndromeType))
				if err != nil {
					return userError(err)
				}
				if dec, err = lot.NewFlagged(stab); err != nil {
					return userError(err)
				}
				res.Flagged = stab.String()
			}

			qubits, pauli, err := dec.Decode(s)
			if err != nil {
				return userError(err)
			}
			res.Correction, res.Qubits = pauli, qubits
			e.logger.Debug("lookup", "syndrome", res.Syndrome, "flagged", res.Flagged, "qubits", qubits)

			if e.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), res)
			}
			target := "none"
			if len(qubits) > 0 {
				target = fmt.Sprint(qubits)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s syndrome %s -> %s correction on %s\n",
				syndromeType, res.Syndrome, pauli, target)
			return nil
		},
	}
	cmd.Flags().StringVar(&syndromeType, "type", string(types.SyndromeX), "syndrome type: X or Z")
	cmd.Flags().IntVar(&flagged, "flagged", -1, "flagged plaquette: 0 top, 1 bottom-left, 2 bottom-right")
	return cmd
}

type classicalResult struct {
	Word      []int  `json:"word"`
	Syndrome  string `json:"syndrome"`
	Corrected []int  `json:"corrected"`
	Parity    uint8  `json:"parity"`
}

func newClassicalCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "classical <word>",
		Short: "Decode a measured seven-bit data word to its logical parity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bits := make([]int, 0, len(args[0]))
			for _, r := range args[0] {
				bits = append(bits, int(r-'0'))
			}
			w, err := code.WordFromInts(bits)
			if err != nil {
				return userError(err)
			}
			corrected := lot.ClassicalCorrection(w)
			res := classicalResult{
				Word:      wordInts(w),
				Syndrome:  lot.ClassicalSyndrome(w).Bits.Key(),
				Corrected: wordInts(corrected),
				Parity:    lot.LogicalParity(corrected),
			}
			if e.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "syndrome %s, corrected %v, logical parity %d\n",
				res.Syndrome, res.Corrected, res.Parity)
			return nil
		},
	}
}

func wordInts(w code.Word) []int {
	out := make([]int, len(w))
	for i, b := range w {
		out[i] = int(b)
	}
	return out
}
