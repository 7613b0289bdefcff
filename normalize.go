package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawRow is the string shape of one statement row, exactly as a row
// extractor produced it. All interpretation happens in Normalize.
type RawRow struct {
	ExecutionTime string
	Instrument    string
	ISIN          string
	OrderCurrency string
	Direction     string
	Quantity      string
	Price         string
	Value         string
	Currency      string // transaction currency: denominates Value, ProfitLoss and Total
	ExchangeRate  string
	ProfitLoss    string
	Total         string
}

// rowTimeLayouts lists the execution timestamp layouts seen in
// statements, most common first.
var rowTimeLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Normalize turns a raw statement row into a typed Transaction.
//
// Minor-unit currencies (pence-style quotes) are rewritten here: the
// monetary fields are scaled down by the fixed ratio and the major code
// substituted, so the converter only ever sees major-unit codes. Any
// field that cannot be interpreted fails with ErrMalformedRow.
func Normalize(row RawRow) (Transaction, error) {
	executedAt, err := parseRowTime(row.ExecutionTime)
	if err != nil {
		return Transaction{}, err
	}
	direction, err := ParseDirection(row.Direction)
	if err != nil {
		return Transaction{}, err
	}
	quantity, err := parseAmount("quantity", row.Quantity)
	if err != nil {
		return Transaction{}, err
	}
	price, err := parseAmount("price", row.Price)
	if err != nil {
		return Transaction{}, err
	}
	value, err := parseAmount("transaction value", row.Value)
	if err != nil {
		return Transaction{}, err
	}
	profitLoss, err := parseAmount("profit/loss", row.ProfitLoss)
	if err != nil {
		return Transaction{}, err
	}
	total, err := parseAmount("total", row.Total)
	if err != nil {
		return Transaction{}, err
	}
	// The broker's own rate is informational; statements leave it blank
	// for same-currency trades.
	brokerRate := decimal.Zero
	if s := strings.TrimSpace(row.ExchangeRate); s != "" {
		brokerRate, err = parseAmount("exchange rate", s)
		if err != nil {
			return Transaction{}, err
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(row.Currency))
	if major, ratio, ok := MinorUnitOf(currency); ok {
		currency = major
		price = price.Div(ratio)
		value = value.Div(ratio)
		profitLoss = profitLoss.Div(ratio)
		total = total.Div(ratio)
	}

	return Transaction{
		ExecutedAt:    executedAt,
		Instrument:    strings.TrimSpace(row.Instrument),
		ISIN:          strings.TrimSpace(row.ISIN),
		OrderCurrency: strings.ToUpper(strings.TrimSpace(row.OrderCurrency)),
		Direction:     direction,
		Quantity:      Q(quantity),
		Price:         M(price, currency),
		Value:         M(value, currency),
		ExchangeRate:  brokerRate,
		ProfitLoss:    M(profitLoss, currency),
		Total:         M(total, currency),
	}, nil
}

// parseRowTime parses the execution timestamp of a row.
func parseRowTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing execution time: %w", ErrMalformedRow)
	}
	for _, layout := range rowTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid execution time %q: %w", s, ErrMalformedRow)
}

// ParseAmount reads a locale-tolerant numeric string, the way
// statement fields are read.
func ParseAmount(s string) (decimal.Decimal, error) {
	return parseAmount("amount", s)
}

// parseAmount reads a numeric field tolerant of locale separators:
// "1,234.56", "1.234,56", "1 234,56" and plain "1234.56" all parse to
// the same value.
func parseAmount(field, s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ' ', ' ': // spaces only ever group thousands
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("missing %s: %w", field, ErrMalformedRow)
	}

	lastComma := strings.LastIndexByte(cleaned, ',')
	lastDot := strings.LastIndexByte(cleaned, '.')
	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Both present: the rightmost one is the decimal separator.
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case strings.Count(cleaned, ",") > 1:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case lastComma >= 0:
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: %w", field, s, ErrMalformedRow)
	}
	return d, nil
}
