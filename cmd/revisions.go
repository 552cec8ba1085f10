package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var revisionsCmd = &cobra.Command{
	Use:   "revisions SERIES_ID",
	Short: "Compare the two most recent vintages of an economic series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		row, err := svc.Revisions(cmd.Context(), args[0])
		if err != nil {
			return eris.Wrap(err, "revisions")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "Series\t%s\n", row.SeriesID)
		if !row.HasRevisions {
			_, _ = fmt.Fprintf(w, "Revisions\tnone\n")
			if row.Note != "" {
				_, _ = fmt.Fprintf(w, "Note\t%s\n", row.Note)
			}
			return w.Flush()
		}

		_, _ = fmt.Fprintf(w, "Observation\t%s\n", row.ObservationDate)
		_, _ = fmt.Fprintf(w, "Previous\t%s (vintage %s)\n", fmtNum(row.PreviousValue), row.VintagePrevious)
		_, _ = fmt.Fprintf(w, "Latest\t%s (vintage %s)\n", fmtNum(row.LatestValue), row.VintageLatest)
		_, _ = fmt.Fprintf(w, "Delta\t%s (%s)\n", fmtNum(row.Delta), fmtPercent(row.DeltaPercent))
		_, _ = fmt.Fprintf(w, "Magnitude\t%s\n", row.Magnitude)
		_, _ = fmt.Fprintf(w, "Trend\t%s\n", row.Trend)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(revisionsCmd)
}
