// Package cmd implements the CLI application to compute capital gains tax on
// foreign stock-plan compensation.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/rsutax"
	"github.com/etnz/rsutax/date"
	"github.com/etnz/rsutax/sbi"
	"github.com/etnz/rsutax/stockplan"
	"github.com/google/subcommands"
)

// Commands is the list of all subcommands, in display order.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&reportCmd{},
	&taxCmd{},
	&scheduleCmd{},
	&harvestCmd{},
	&ratesCmd{},
	&topicCmd{},
	&AssistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// inputFlags are the input files shared by the reporting commands. Defaults
// match the names the broker exports use.
type inputFlags struct {
	configFile   string
	salesFile    string
	releasesFile string
	quotesFile   string
}

func (c *inputFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "config.json", "Path to the tax configuration file")
	f.StringVar(&c.salesFile, "sales", "capital_gains.csv", "Path to the broker's capital gains report")
	f.StringVar(&c.releasesFile, "releases", "releases.csv", "Path to the broker's releases report")
	f.StringVar(&c.quotesFile, "quotes", "quote_history.csv", "Path to the broker's quote history export")
}

// Load reads every input and assembles them into engine inputs, downloading
// the TTBR rates on the way.
func (c *inputFlags) Load() (rsutax.Inputs, error) {
	var in rsutax.Inputs

	cfg, err := rsutax.LoadConfig(c.configFile)
	if err != nil {
		return in, err
	}
	in.Config = cfg
	in.Today = date.Today()

	sf, err := os.Open(c.salesFile)
	if err != nil {
		return in, fmt.Errorf("cannot open the capital gains report %q: %w", c.salesFile, err)
	}
	defer sf.Close()
	if in.Sales, err = stockplan.ImportSales(sf); err != nil {
		return in, err
	}

	rf, err := os.Open(c.releasesFile)
	if err != nil {
		return in, fmt.Errorf("cannot open the releases report %q: %w", c.releasesFile, err)
	}
	defer rf.Close()
	if in.Lots, err = stockplan.ImportReleases(rf); err != nil {
		return in, err
	}

	in.LatestPriceUSD = rsutax.M(0, rsutax.USD)
	if qf, err := os.Open(c.quotesFile); err == nil {
		defer qf.Close()
		quotes, err := stockplan.ImportQuotes(qf, cfg.Symbol)
		if err != nil {
			return in, err
		}
		if quotes.Len() > 0 {
			_, price := quotes.Latest()
			in.LatestPriceUSD = rsutax.M(price, rsutax.USD)
		}
	}

	if in.Rates, err = sbi.Fetch(cfg.RatesURL); err != nil {
		return in, err
	}
	return in, nil
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the renderer cannot be created (dumb terminals, pipes).
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
