// Package invoice extracts structured fields from a scanned invoice or
// receipt image with the Gemini API.
//
// Broker statements are machine-produced PDFs and never need this, but
// the expense side of a yearly report is a shoebox of photographed
// receipts. One model call per image is plenty.
package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Invoice is the set of fields the model is asked to read off the
// image. Fields the document doesn't carry stay empty.
type Invoice struct {
	Number   string `json:"number"`
	Date     string `json:"date"` // YYYY-MM-DD
	Supplier string `json:"supplier"`
	Customer string `json:"customer"`
	Total    string `json:"total"`
	VAT      string `json:"vat"`
	Currency string `json:"currency"`
}

const prompt = `Read this invoice or receipt and answer with a single JSON object,
no prose, with exactly these keys:
  number   – the invoice or receipt number
  date     – the issue date as YYYY-MM-DD
  supplier – who issued the document
  customer – who it is addressed to
  total    – the grand total as a plain decimal number
  vat      – the VAT amount as a plain decimal number
  currency – the ISO 4217 currency code
Use an empty string for anything the document does not show.`

// Extract asks the model to read one image and returns the decoded
// fields.
func Extract(ctx context.Context, client *genai.Client, image []byte, mimeType string) (*Invoice, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
		},
	}}
	resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("asking %s: %w", model, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no answer from %s", model)
	}
	text := resp.Candidates[0].Content.Parts[0].Text

	var inv Invoice
	if err := json.Unmarshal([]byte(stripFences(text)), &inv); err != nil {
		return nil, fmt.Errorf("decoding answer %q: %w", text, err)
	}
	return &inv, nil
}

// stripFences removes the markdown code fence the model often wraps
// its JSON answer in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if after, ok := strings.CutPrefix(s, "```json"); ok {
		s = after
	} else if after, ok := strings.CutPrefix(s, "```"); ok {
		s = after
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
