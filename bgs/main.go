package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/dpenev/statement/cmd"
)

// completion describes the CLI for shell completion. It must cover the
// same commands cmd.Commands registers.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"report": {Flags: map[string]complete.Predictor{
			"format": predict.Set{"md", "json", "html"},
			"o":      predict.Files("*"),
		}},
		"convert": {Flags: map[string]complete.Predictor{"d": predict.Something}},
		"rate":    {Flags: map[string]complete.Predictor{"d": predict.Something}},
		"invoice": {Flags: map[string]complete.Predictor{"gemini-api-key": predict.Something}},
		"topic":   {},
	},
}

func main() {
	completion.Complete("bgs")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
