package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/rsutax"
	"github.com/etnz/rsutax/renderer"
	"github.com/google/subcommands"
)

// scheduleCmd holds the flags for the 'schedule' subcommand.
type scheduleCmd struct {
	inputFlags
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "quarterly advance tax installments" }
func (*scheduleCmd) Usage() string {
	return `rst schedule [-config <file>] [-sales <file>] [-releases <file>]

  Computes the four advance tax installments for the current fiscal year
  by the cumulative method.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) { c.inputFlags.SetFlags(f) }

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var b strings.Builder
	renderer.ScheduleMarkdown(&b, rep.Schedule)
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
