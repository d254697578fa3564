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

// taxCmd holds the flags for the 'tax' subcommand.
type taxCmd struct {
	inputFlags
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "tax liability on realized gains" }
func (*taxCmd) Usage() string {
	return `rst tax [-config <file>] [-sales <file>] [-releases <file>]

  Computes the set-off worksheet and the resulting liability only.
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) { c.inputFlags.SetFlags(f) }

func (c *taxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	renderer.DisposalsMarkdown(&b, rep.Disposals)
	renderer.TaxMarkdown(&b, rep.Tax)
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
