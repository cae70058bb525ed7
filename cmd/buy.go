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

type buyCmd struct {
	skinID      string
	condition   string
	statTrak    bool
	price       string
	marketPrice string
	platform    string
	buyer       string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "log a new skin purchase into the ledger" }
func (*buyCmd) Usage() string {
	return `buy -skin <catalog-id> -condition <grade> -platform <marketplace> -buyer <buyer> [-stattrak] [-price <amount>] [-market-price <amount>]

  Logs a new purchase as an open position. The skin ID must exist in the
  catalog. Prices left out are recorded as 0.

`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.skinID, "skin", "", "Catalog identifier of the skin (required)")
	f.StringVar(&c.condition, "condition", string(domain.NotApplicable), "Wear grade")
	f.BoolVar(&c.statTrak, "stattrak", false, "StatTrak variant")
	f.StringVar(&c.price, "price", "", "Price bought")
	f.StringVar(&c.marketPrice, "market-price", "", "Market price estimate")
	f.StringVar(&c.platform, "platform", "", "Marketplace bought on (required)")
	f.StringVar(&c.buyer, "buyer", "", "Buyer (required)")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.skinID == "" || c.platform == "" || c.buyer == "" {
		fmt.Fprintln(os.Stderr, "Error: -skin, -platform and -buyer are required.")
		return subcommands.ExitUsageError
	}

	price, err := parseMoney(c.price)
	if err != nil {
		return fail(err)
	}
	marketPrice, err := parseMoney(c.marketPrice)
	if err != nil {
		return fail(err)
	}

	env, err := buildApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer env.close()

	rec, err := env.svc.LogPurchase(ctx, app.PurchaseInput{
		SkinID:      c.skinID,
		Condition:   domain.Condition(c.condition),
		StatTrak:    c.statTrak,
		Price:       price,
		MarketPrice: marketPrice,
		Platform:    domain.Platform(c.platform),
		Buyer:       domain.Buyer(c.buyer),
	})
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Added %s\n", rec.SkinName)
	fmt.Printf("  trade ID:    %s\n", rec.TradeID)
	fmt.Printf("  tradable on: %s\n", rec.TradableOn.Format("2006-01-02"))
	return subcommands.ExitSuccess
}
