package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show completed trades and their profit summary" }
func (*historyCmd) Usage() string {
	return `history

  Lists every completed trade with total profit, trade count and average ROI.

`
}

func (*historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	env, err := buildApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer env.close()

	closed, summary, err := env.svc.History(ctx)
	if err != nil {
		return fail(err)
	}
	if len(closed) == 0 {
		fmt.Println("No items have been sold yet.")
		return subcommands.ExitSuccess
	}

	fmt.Printf("Total profit: $%s   Completed trades: %d   Average ROI: %s%%\n\n",
		summary.TotalProfit.StringFixed(2), summary.TradeCount, summary.AverageROI.StringFixed(2))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKIN\tBUYER\tBOUGHT\tSOLD\tPRICE BOUGHT\tPRICE SOLD\tFEE\tP/L\tROI")
	for _, rec := range closed {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t$%s\t$%s\t$%s\t$%s\t%s%%\n",
			rec.SkinName,
			rec.Buyer,
			rec.DateBought.Format("2006-01-02"),
			rec.DateSold.Format("2006-01-02"),
			rec.PriceBought.StringFixed(2),
			rec.PriceSold.StringFixed(2),
			rec.SellFee.StringFixed(2),
			rec.ProfitLoss.StringFixed(2),
			rec.ROI.StringFixed(2),
		)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
