package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/meridian-group/market-cli/internal/model"
)

var quoteCmd = &cobra.Command{
	Use:   "quote SYMBOL",
	Short: "Fetch normalized quote metrics for one symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		row, err := svc.Quote(cmd.Context(), args[0])
		if err != nil {
			return eris.Wrap(err, "quote")
		}

		formatQuote(os.Stdout, *row)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

// formatQuote writes one quote row as an aligned field/value table.
func formatQuote(out io.Writer, row model.QuoteRow) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Symbol\t%s\n", row.Symbol)
	if row.Name != "" {
		_, _ = fmt.Fprintf(w, "Name\t%s\n", row.Name)
	}
	_, _ = fmt.Fprintf(w, "Price\t%s\n", fmtNum(row.Price))
	_, _ = fmt.Fprintf(w, "Change\t%s (%s)\n", fmtNum(row.Change), fmtPercent(row.ChangePercent))
	_, _ = fmt.Fprintf(w, "Volume\t%s\n", fmtWhole(row.Volume))
	_, _ = fmt.Fprintf(w, "Avg Volume\t%s\n", fmtWhole(row.AvgVolume))
	_, _ = fmt.Fprintf(w, "Market Cap\t%s\n", fmtWhole(row.MarketCap))
	_, _ = fmt.Fprintf(w, "Trailing P/E\t%s\n", fmtNum(row.TrailingPE))
	_, _ = fmt.Fprintf(w, "Forward P/E\t%s\n", fmtNum(row.ForwardPE))
	_, _ = fmt.Fprintf(w, "Price/Book\t%s\n", fmtNum(row.PriceToBook))
	_, _ = fmt.Fprintf(w, "EPS (TTM)\t%s\n", fmtNum(row.EPS))
	_, _ = fmt.Fprintf(w, "Dividend Yield\t%s\n", fmtPercent(row.DividendYield))
	_, _ = fmt.Fprintf(w, "Beta\t%s\n", fmtNum(row.Beta))
	_, _ = fmt.Fprintf(w, "52wk Range\t%s - %s\n", fmtNum(row.Week52Low), fmtNum(row.Week52High))
	_, _ = fmt.Fprintf(w, "Fetched\t%s\n", row.FetchDate.Format("2006-01-02 15:04:05 MST"))
	_ = w.Flush()
}
