// Package trading212 extracts transaction rows from a Trading 212
// statement PDF.
//
// The statement is a table, one executed order per row, with the
// Bulgarian interface wording (Покупка/Продажба) or the English one.
// Page headers, footers and summary lines carry no timestamp and are
// skipped; a document that yields no rows at all is unreadable.
package trading212

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/dpenev/statement"
)

var (
	dayRE  = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
	timeRE = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
	isinRE = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}\d$`)
	curRE  = regexp.MustCompile(`^[A-Z]{3}$`)
	// the pieces of a space-grouped amount like "1 705,00"
	headRE   = regexp.MustCompile(`^-?\d{1,3}$`)
	midRE    = regexp.MustCompile(`^\d{3}$`)
	tailRE   = regexp.MustCompile(`^\d{3}([.,]\d+)?$`)
	numberRE = regexp.MustCompile(`^-?\d+([.,]\d+)*$`)
)

var directions = map[string]bool{
	"покупка":  true,
	"продажба": true,
	"buy":      true,
	"sell":     true,
}

// Extractor reads Trading 212 statement PDFs. The zero value is ready
// to use.
//
// Extractor implements statement.RowExtractor.
type Extractor struct{}

// Extract pulls every transaction row out of the PDF in document
// order.
func (Extractor) Extract(ctx context.Context, r io.Reader) (rows []statement.RawRow, err error) {
	// the pdf package panics on some malformed files
	defer func() {
		if rec := recover(); rec != nil {
			rows, err = nil, fmt.Errorf("parsing document: %v: %w", rec, statement.ErrDocumentUnreadable)
		}
	}()

	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	doc, err := pdf.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("opening document: %v: %w", err, statement.ErrDocumentUnreadable)
	}

	for p := 1; p <= doc.NumPage(); p++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := doc.Page(p)
		if page.V.IsNull() {
			continue
		}
		textRows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %v: %w", p, err, statement.ErrDocumentUnreadable)
		}
		for _, tr := range textRows {
			var b strings.Builder
			for _, word := range tr.Content {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(word.S)
			}
			if row, ok := parseLine(b.String()); ok {
				rows = append(rows, row)
			}
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no transaction rows found: %w", statement.ErrDocumentUnreadable)
	}
	return rows, nil
}

// parseLine recognizes one table row. Anything else (headers, totals,
// page furniture) reports ok=false and is skipped.
//
// A row reads, in order: execution date and time, instrument, an
// optional ISIN, the order currency, the direction, then quantity,
// price and value, the transaction currency, and finally the broker's
// exchange rate (sometimes absent), the realized profit/loss and the
// charged total. Amounts keep their statement locale untouched, the
// caller normalizes them.
func parseLine(line string) (statement.RawRow, bool) {
	var row statement.RawRow
	fields := strings.Fields(line)
	if len(fields) < 10 {
		return row, false
	}
	if !dayRE.MatchString(fields[0]) || !timeRE.MatchString(fields[1]) {
		return row, false
	}
	row.ExecutionTime = fields[0] + " " + fields[1]

	// The instrument name may span several tokens ("Barclays PLC"). It
	// ends at the ISIN, or at the order currency when the row carries no
	// ISIN; a currency-looking token only ends it when the direction
	// marker follows, so tickers like "ETC" stay part of the name.
	i := 3
	for ; i < len(fields); i++ {
		if isinRE.MatchString(fields[i]) {
			break
		}
		if curRE.MatchString(fields[i]) && i+1 < len(fields) && directions[strings.ToLower(fields[i+1])] {
			break
		}
	}
	if i >= len(fields) {
		return row, false
	}
	row.Instrument = strings.Join(fields[2:i], " ")

	if isinRE.MatchString(fields[i]) {
		row.ISIN = fields[i]
		i++
	}
	if i >= len(fields) || !curRE.MatchString(fields[i]) {
		return row, false
	}
	row.OrderCurrency = fields[i]
	i++
	if i >= len(fields) || !directions[strings.ToLower(fields[i])] {
		return row, false
	}
	row.Direction = fields[i]
	i++

	// all that remains: quantity price value CUR [rate] profitLoss total
	rest := fields[i:]
	cut := -1
	for j, f := range rest {
		if curRE.MatchString(f) {
			cut = j
			break
		}
	}
	if cut < 0 || cut == len(rest)-1 {
		return row, false
	}
	row.Currency = rest[cut]

	before, ok := groupAmounts(rest[:cut], 3)
	if !ok {
		return row, false
	}
	row.Quantity, row.Price, row.Value = before[0], before[1], before[2]

	if after, ok := groupAmounts(rest[cut+1:], 3); ok {
		row.ExchangeRate, row.ProfitLoss, row.Total = after[0], after[1], after[2]
	} else if after, ok := groupAmounts(rest[cut+1:], 2); ok {
		// the broker omits the exchange rate on same-currency orders
		row.ProfitLoss, row.Total = after[0], after[1]
	} else {
		return row, false
	}
	return row, true
}

// groupAmounts reassembles exactly want numbers from tokens whose
// thousands were grouped with spaces: "1 705,00" comes in as "1" and
// "705,00". Merging is ambiguous token by token, so the split is
// chosen to hit the expected count, preferring the fewest merges.
func groupAmounts(tokens []string, want int) ([]string, bool) {
	if len(tokens) == 0 {
		return nil, want == 0
	}
	if want == 0 {
		return nil, false
	}
	// shortest number first, so "10 170,50" reads as quantity 10 at
	// price 170,50 whenever both splits add up
	for n := 1; n <= len(tokens)-want+1; n++ {
		if !validAmount(tokens[:n]) {
			continue
		}
		rest, ok := groupAmounts(tokens[n:], want-1)
		if ok {
			return append([]string{strings.Join(tokens[:n], " ")}, rest...), true
		}
	}
	return nil, false
}

// validAmount reports whether tokens spell a single number.
func validAmount(tokens []string) bool {
	if len(tokens) == 1 {
		return numberRE.MatchString(tokens[0])
	}
	if !headRE.MatchString(tokens[0]) {
		return false
	}
	for _, t := range tokens[1 : len(tokens)-1] {
		if !midRE.MatchString(t) {
			return false
		}
	}
	return tailRE.MatchString(tokens[len(tokens)-1])
}
