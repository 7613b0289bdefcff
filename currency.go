package statement

import (
	"context"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/dpenev/statement/date"
)

// EURBGNRate is the Bulgarian currency-board peg: 1 EUR = 1.95583 BGN.
// The rate is fixed by law, never looked up and never varies by date.
var EURBGNRate = decimal.RequireFromString("1.95583")

// MinorUnitRatio is the fixed scale between a currency's minor and major
// unit (pence per pound).
var MinorUnitRatio = decimal.NewFromInt(100)

// minorUnit describes the major currency a minor-unit code folds into.
type minorUnit struct {
	major string
	ratio decimal.Decimal
}

// minorUnits maps pence-style codes to their major currency. Supporting a
// new minor-unit currency is a new table entry, nothing else changes.
var minorUnits = map[string]minorUnit{
	"GBX": {"GBP", MinorUnitRatio},
	"ZAC": {"ZAR", MinorUnitRatio},
}

// MinorUnitOf returns the major currency code and the ratio for a
// minor-unit code, or ok=false for a regular currency.
func MinorUnitOf(code string) (major string, ratio decimal.Decimal, ok bool) {
	mu, ok := minorUnits[code]
	if !ok {
		return "", decimal.Decimal{}, false
	}
	return mu.major, mu.ratio, true
}

// A RateSource provides historical exchange rates.
//
// Lookup returns how many units of 'to' one unit of 'from' bought on the
// given day. A pair with no published rate must fail with an error
// wrapping ErrRateUnavailable, never a default rate.
type RateSource interface {
	Lookup(ctx context.Context, from, to string, on date.Date) (decimal.Decimal, error)
}

// Conversion is one transaction's converted view: the original amount and
// its equivalents in the two reporting currencies.
type Conversion struct {
	Original Money           `json:"original"`
	BGN      Money           `json:"convertedBGN"`
	EUR      Money           `json:"convertedEUR"`
	Rate     decimal.Decimal `json:"exchangeRateUsed"`
	On       date.Date       `json:"date"`
	Total    Money           `json:"total"`
	TotalBGN Money           `json:"totalBGN"`

	// toBGN is the multiplier the BGN leg applied to the original amount.
	// The aggregator reuses it for the statement total echo.
	toBGN decimal.Decimal
}

// withTotal echoes the transaction total before and after conversion to
// BGN, reusing the rate the profit/loss conversion used.
func (c Conversion) withTotal(total Money) Conversion {
	c.Total = total
	c.TotalBGN = total.Mul(c.toBGN, "BGN")
	return c
}

// Converter converts amounts into the two reporting currencies.
//
// BGN and EUR convert through the currency-board peg. Any other currency
// takes two independent historical lookups, one per reporting currency:
// the two legs are separate external observations and are deliberately
// not triangulated through the peg.
type Converter struct {
	source RateSource
	peg    decimal.Decimal
}

// NewConverter returns a Converter using the currency-board peg for
// BGN/EUR and the given source for every other currency.
func NewConverter(source RateSource) *Converter {
	return &Converter{source: source, peg: EURBGNRate}
}

// Convert converts an amount into BGN and EUR using rates of the given
// day. The amount's currency must be a major-unit code: minor-unit codes
// are rewritten during normalization and must never reach the converter.
func (c *Converter) Convert(ctx context.Context, amount Money, on date.Date) (Conversion, error) {
	conv := Conversion{Original: amount, On: on}

	switch currency := amount.Currency(); currency {
	case "BGN":
		conv.BGN = amount
		conv.EUR = amount.Div(c.peg, "EUR")
		conv.Rate = c.peg
		conv.toBGN = decimal.NewFromInt(1)
	case "EUR":
		conv.EUR = amount
		conv.BGN = amount.Mul(c.peg, "BGN")
		conv.Rate = c.peg
		conv.toBGN = c.peg
	default:
		if _, _, ok := MinorUnitOf(currency); ok {
			return Conversion{}, fmt.Errorf("minor-unit code %s reached the converter without normalization: %w", currency, ErrUnknownCurrency)
		}
		if money.GetCurrency(currency) == nil {
			return Conversion{}, fmt.Errorf("currency %s on %s: %w", currency, on, ErrUnknownCurrency)
		}
		bgn, err := c.source.Lookup(ctx, currency, "BGN", on)
		if err != nil {
			return Conversion{}, fmt.Errorf("converting %s to BGN on %s: %w", currency, on, err)
		}
		eur, err := c.source.Lookup(ctx, currency, "EUR", on)
		if err != nil {
			return Conversion{}, fmt.Errorf("converting %s to EUR on %s: %w", currency, on, err)
		}
		conv.BGN = amount.Mul(bgn, "BGN")
		conv.EUR = amount.Mul(eur, "EUR")
		conv.Rate = bgn
		conv.toBGN = bgn
	}
	return conv, nil
}
