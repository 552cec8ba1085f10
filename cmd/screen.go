package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/meridian-group/market-cli/internal/pipeline"
)

var screenLimit int

var screenCmd = &cobra.Command{
	Use:   "screen SCREEN_ID",
	Short: "Quote the symbols matching a predefined screener",
	Long:  "Fetches a predefined screener page, extracts the matching symbols, and quotes each one. Run without arguments to list the available screens.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			ids := make([]string, 0, len(pipeline.PredefinedScreens))
			for id := range pipeline.PredefinedScreens {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "SCREEN\tDESCRIPTION")
			_, _ = fmt.Fprintln(w, "------\t-----------")
			for _, id := range ids {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", id, pipeline.PredefinedScreens[id])
			}
			return w.Flush()
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		rows, err := svc.Screen(cmd.Context(), args[0], screenLimit)
		if err != nil {
			return eris.Wrap(err, "screen")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "SYMBOL\tNAME\tPRICE\tCHANGE\tVOLUME\tMKT CAP")
		_, _ = fmt.Fprintln(w, "------\t----\t-----\t------\t------\t-------")
		for _, row := range rows {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				row.Symbol,
				row.Name,
				fmtNum(row.Price),
				fmtPercent(row.ChangePercent),
				fmtWhole(row.Volume),
				fmtWhole(row.MarketCap),
			)
		}
		return w.Flush()
	},
}

func init() {
	screenCmd.Flags().IntVar(&screenLimit, "limit", 0, "max symbols to quote (default 10)")
	rootCmd.AddCommand(screenCmd)
}
