package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var correlateCmd = &cobra.Command{
	Use:   "correlate SYMBOL SYMBOL [SYMBOL...]",
	Short: "Score heuristic co-movement across a set of symbols",
	Long:  "Quotes each symbol and scores every pair on a heuristic composite of beta, short-term performance, and 52-week range position. The score approximates co-movement; it is not a statistical correlation from price history.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		rows, err := svc.Correlate(cmd.Context(), args)
		if err != nil {
			return eris.Wrap(err, "correlate")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "PAIR\tSCORE\tBETA\tPERF\tRANGE")
		_, _ = fmt.Fprintln(w, "----\t-----\t----\t----\t-----")
		for _, row := range rows {
			_, _ = fmt.Fprintf(w, "%s/%s\t%s\t%s\t%s\t%s\n",
				row.SymbolA, row.SymbolB,
				fmtNum(row.Score),
				fmtNum(row.BetaSim),
				fmtNum(row.PerfSim),
				fmtNum(row.RangePosSim),
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\nMethod: %s\n", rows[0].Method)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(correlateCmd)
}
