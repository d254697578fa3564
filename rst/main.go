package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/rsutax/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: invoked by the completion hooks, this call prints
	// candidates and exits; in a normal run it returns immediately.
	inputs := map[string]complete.Predictor{
		"config":   predict.Files("*.json"),
		"sales":    predict.Files("*.csv"),
		"releases": predict.Files("*.csv"),
		"quotes":   predict.Files("*.csv"),
	}
	(&complete.Command{
		Sub: map[string]*complete.Command{
			"report":   {Flags: inputs},
			"tax":      {Flags: inputs},
			"schedule": {Flags: inputs},
			"harvest":  {Flags: inputs},
			"rates":    {Flags: map[string]complete.Predictor{"config": predict.Files("*.json")}},
			"topic":    {Args: predict.Set{"readme", "rule115", "setoff", "advance-tax", "harvesting"}},
			"assist":   {},
		},
	}).Complete("rst")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
