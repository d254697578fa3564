package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/etnz/rsutax"
	"github.com/etnz/rsutax/renderer"
	"github.com/google/subcommands"
)

// harvestCmd holds the flags for the 'harvest' subcommand.
type harvestCmd struct {
	inputFlags
	isin string
}

func (*harvestCmd) Name() string     { return "harvest" }
func (*harvestCmd) Synopsis() string { return "loss harvesting opportunities" }
func (*harvestCmd) Usage() string {
	return `rst harvest [-config <file>] [-releases <file>] [-quotes <file>] [-isin <isin>]

  Lists held lots with an unrealized loss worth realizing before year end.
  With -isin, the latest price is fetched live instead of read from the
  quote history export.
`
}

func (c *harvestCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.isin, "isin", "", "ISIN of the granted security, for a live quote")
}

func (c *harvestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := c.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.isin != "" {
		price, err := rsutax.LiveQuoteUSD(in.Config.Symbol, c.isin)
		if err != nil {
			log.Println("live quote failed, using the quote history instead:", err)
		} else {
			in.LatestPriceUSD = rsutax.M(price, rsutax.USD)
		}
	}

	rep, err := rsutax.BuildReport(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	renderer.HarvestMarkdown(&b, rep.Harvest)
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
