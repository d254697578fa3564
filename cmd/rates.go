package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rsutax"
	"github.com/etnz/rsutax/date"
	"github.com/etnz/rsutax/sbi"
	"github.com/google/subcommands"
)

// ratesCmd holds the flags for the 'rates' subcommand.
type ratesCmd struct {
	configFile string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "resolve the mandated TTBR rate for a date" }
func (*ratesCmd) Usage() string {
	return `rst rates [-config <file>] [<date>...]

  Downloads the SBI reference rates and prints the rate mandated for a
  transaction on each given date (today by default): the rate of the last
  day of the preceding month, or the nearest earlier quote.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "config.json", "Path to the tax configuration file")
}

func (c *ratesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := rsutax.LoadConfig(c.configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	table, err := sbi.Fetch(cfg.RatesURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	args := f.Args()
	if len(args) == 0 {
		args = []string{date.Today().String()}
	}

	status := subcommands.ExitSuccess
	for _, arg := range args {
		on, err := date.Parse(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		day, rate, ev, err := table.Resolve(on)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%s: %s INR/USD (rate of %s)\n", on, rate, day)
		if ev != nil {
			fmt.Printf("  note: %s, wanted %s\n", ev.Reason, ev.Required)
		}
	}
	return status
}
