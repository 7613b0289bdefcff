package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/dpenev/statement"
	"github.com/dpenev/statement/frankfurter"
	"github.com/dpenev/statement/renderer"
	"github.com/dpenev/statement/trading212"
)

type reportCmd struct {
	format string
	output string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "compute the profit/loss report for a statement PDF" }
func (*reportCmd) Usage() string {
	return `bgs report [-format md|json|html] [-o <file>] <statement.pdf>

  Reads a Trading 212 statement, converts every realized profit/loss
  into BGN and EUR at the execution day's rate, and prints the report.

Usage Examples:
# Print the report on the terminal.
$ bgs report statement.pdf

# Export it for the accountant.
$ bgs report -format html -o report.html statement.pdf

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "md", "Output format: md, json or html.")
	f.StringVar(&c.output, "o", "", "Write to file instead of stdout.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one statement file")
		return subcommands.ExitUsageError
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening statement %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	p := statement.NewProcessor(trading212.Extractor{}, frankfurter.New())
	res, err := p.Process(ctx, file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing statement %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	out, err := c.render(res)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.output != "" {
		if err := os.WriteFile(c.output, []byte(out), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	if c.format == "md" {
		printMarkdown(out)
	} else {
		fmt.Print(out)
	}
	return subcommands.ExitSuccess
}

func (c *reportCmd) render(res *statement.Result) (string, error) {
	switch c.format {
	case "md":
		return renderer.ReportMarkdown(res), nil
	case "html":
		return renderer.ReportHTML(res)
	case "json":
		buf, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding report: %w", err)
		}
		return string(buf) + "\n", nil
	default:
		return "", fmt.Errorf("unknown format %q (want md, json or html)", c.format)
	}
}
