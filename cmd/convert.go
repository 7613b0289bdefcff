package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/dpenev/statement"
	"github.com/dpenev/statement/date"
	"github.com/dpenev/statement/frankfurter"
)

type convertCmd struct {
	day string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert one amount into BGN and EUR" }
func (*convertCmd) Usage() string {
	return `bgs convert [-d <date>] <amount> <currency>

  Converts an amount into both reporting currencies, using the pegged
  rate for BGN and EUR amounts and the ECB rate of the given day for
  anything else.

Usage Examples:
$ bgs convert 100 EUR
$ bgs convert -d 2024-03-01 1705.00 USD

`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Rate date (YYYY-MM-DD), defaults to today.")
}

func (c *convertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <amount> <currency>")
		return subcommands.ExitUsageError
	}
	amount, err := statement.ParseAmount(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	on := date.Today()
	if c.day != "" {
		if on, err = date.Parse(c.day); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date %q: %v\n", c.day, err)
			return subcommands.ExitUsageError
		}
	}

	converter := statement.NewConverter(frankfurter.New())
	conv, err := converter.Convert(ctx, statement.M(amount, strings.ToUpper(f.Arg(1))), on)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s on %s:\n  %s\n  %s\n", conv.Original, conv.On, conv.BGN, conv.EUR)
	return subcommands.ExitSuccess
}
