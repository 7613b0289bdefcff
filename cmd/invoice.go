package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/dpenev/statement/invoice"
)

const gemini_api_key = "GEMINI_API_KEY"

type invoiceCmd struct {
	geminiApiFlag string
}

func (*invoiceCmd) Name() string     { return "invoice" }
func (*invoiceCmd) Synopsis() string { return "read the fields of a scanned invoice or receipt" }
func (*invoiceCmd) Usage() string {
	return `bgs invoice <image>

  Reads one photographed or scanned invoice with the Gemini API and
  prints the extracted fields as JSON.

  Requires the GEMINI_API_KEY environment variable to be set or passed
  as a flag.

Usage Examples:
$ bgs invoice receipt.jpg

`
}

func (c *invoiceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.geminiApiFlag, "gemini-api-key", "", "Gemini API key. This flag takes precedence over the "+gemini_api_key+" environment variable.")
}

// geminiApiKey retrieves the Gemini API key from the command-line flag
// or the environment variable. It prioritizes the flag.
func (c *invoiceCmd) geminiApiKey() string {
	if c.geminiApiFlag == "" {
		c.geminiApiFlag = os.Getenv(gemini_api_key)
	}
	return c.geminiApiFlag
}

func (c *invoiceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one image file")
		return subcommands.ExitUsageError
	}
	key := c.geminiApiKey()
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: Gemini API key is not set. Use -gemini-api-key flag or %s environment variable\n", gemini_api_key)
		return subcommands.ExitFailure
	}

	image, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading image %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	mimeType := mime.TypeByExtension(filepath.Ext(f.Arg(0)))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: key})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	inv, err := invoice.Extract(ctx, client, image, mimeType)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading invoice:", err)
		return subcommands.ExitFailure
	}

	buf, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(buf))
	return subcommands.ExitSuccess
}
