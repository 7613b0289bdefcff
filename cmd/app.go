// Package cmd implements the CLI to report on broker trading
// statements.
package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the application. A main package
// registers them all on its commander.
var Commands = []subcommands.Command{
	&reportCmd{},
	&convertCmd{},
	&rateCmd{},
	&invoiceCmd{},
	&topicCmd{},
}

// printMarkdown renders markdown on the terminal, falling back to the
// raw text when the renderer cannot run.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
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
