package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rsutax"
	"github.com/etnz/rsutax/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	inputFlags
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "full capital gains tax report" }
func (*reportCmd) Usage() string {
	return `rst report [-config <file>] [-sales <file>] [-releases <file>] [-quotes <file>]

  Computes the full report: FIFO disposals, tax liability, advance tax
  schedule, loss harvesting opportunities and validation checks.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) { c.inputFlags.SetFlags(f) }

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := c.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	rep, err := rsutax.BuildReport(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReportMarkdown(rep, in.Today))

	if rep.Checks.Failed() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
