package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"skinledger/internal/app"
	"skinledger/internal/domain"
)

type sellCmd struct {
	tradeID  string
	price    string
	fee      string
	platform string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "close an open position with a sale" }
func (*sellCmd) Usage() string {
	return `sell -id <trade-id> -platform <marketplace> [-price <amount>] [-fee <amount>]

  Closes the open position carrying the trade ID, computing profit/loss and
  return on investment. A sale is final; there is no undo.

`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tradeID, "id", "", "Trade ID of the open position (required)")
	f.StringVar(&c.price, "price", "", "Price sold")
	f.StringVar(&c.fee, "fee", "", "Marketplace sell fee")
	f.StringVar(&c.platform, "platform", "", "Marketplace sold on (required)")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.tradeID == "" || c.platform == "" {
		fmt.Fprintln(os.Stderr, "Error: -id and -platform are required.")
		return subcommands.ExitUsageError
	}

	price, err := parseMoney(c.price)
	if err != nil {
		return fail(err)
	}
	fee, err := parseMoney(c.fee)
	if err != nil {
		return fail(err)
	}

	env, err := buildApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer env.close()

	rec, err := env.svc.LogSale(ctx, c.tradeID, app.SaleInput{
		Price:    price,
		Fee:      fee,
		Platform: domain.Platform(c.platform),
	})
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Sold %s\n", rec.SkinName)
	fmt.Printf("  P/L: $%s (ROI: %s%%)\n", rec.ProfitLoss.StringFixed(2), rec.ROI.StringFixed(2))
	return subcommands.ExitSuccess
}
