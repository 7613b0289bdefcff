package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/dpenev/statement"
	"github.com/dpenev/statement/date"
	"github.com/dpenev/statement/frankfurter"
)

type rateCmd struct {
	day string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "show the exchange rate between two currencies" }
func (*rateCmd) Usage() string {
	return `bgs rate [-d <date>] <from> <to>

  Shows the rate converting one unit of <from> into <to>. The BGN/EUR
  pair answers with the pegged rate; everything else is looked up from
  the ECB reference rates for the given day.

Usage Examples:
$ bgs rate EUR BGN
$ bgs rate -d 2024-03-01 USD BGN

`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Rate date (YYYY-MM-DD), defaults to today.")
}

func (c *rateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <from> <to>")
		return subcommands.ExitUsageError
	}
	from := strings.ToUpper(f.Arg(0))
	to := strings.ToUpper(f.Arg(1))
	on := date.Today()
	if c.day != "" {
		var err error
		if on, err = date.Parse(c.day); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date %q: %v\n", c.day, err)
			return subcommands.ExitUsageError
		}
	}

	// the pegged pair is a constant, no lookup
	switch {
	case from == "EUR" && to == "BGN":
		fmt.Printf("1 EUR = %s BGN (pegged)\n", statement.EURBGNRate)
		return subcommands.ExitSuccess
	case from == "BGN" && to == "EUR":
		fmt.Printf("1 BGN = %s EUR (pegged)\n", decimal.NewFromInt(1).DivRound(statement.EURBGNRate, 6))
		return subcommands.ExitSuccess
	}

	rate, err := frankfurter.New().Lookup(ctx, from, to, on)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("1 %s = %s %s on %s\n", from, rate, to, on)
	return subcommands.ExitSuccess
}
