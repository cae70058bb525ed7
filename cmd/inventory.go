package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type inventoryCmd struct{}

func (*inventoryCmd) Name() string     { return "inventory" }
func (*inventoryCmd) Synopsis() string { return "list every skin currently held" }
func (*inventoryCmd) Usage() string {
	return `inventory

  Lists the open positions: everything bought and not yet sold.

`
}

func (*inventoryCmd) SetFlags(f *flag.FlagSet) {}

func (c *inventoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	env, err := buildApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer env.close()

	open, err := env.svc.Inventory(ctx)
	if err != nil {
		return fail(err)
	}
	if len(open) == 0 {
		fmt.Println("Inventory is empty. Log a purchase to get started.")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TRADE ID\tSKIN\tBUYER\tPRICE BOUGHT\tTRADABLE ON\tPLATFORM")
	for _, rec := range open {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%s\t%s\t%s\n",
			rec.TradeID,
			rec.SkinName,
			rec.Buyer,
			rec.PriceBought.StringFixed(2),
			rec.TradableOn.Format("2006-01-02"),
			rec.PlatformBought,
		)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
