package statement

import (
	"context"
	"fmt"
	"sort"

	"github.com/dpenev/statement/date"
)

// Summary carries the statement-level metadata of a report.
type Summary struct {
	SellCount  int         `json:"totalSellTransactions"`
	Currencies []string    `json:"currenciesInvolved"`
	DateRange  *date.Range `json:"dateRange"` // nil for an empty statement
}

// Result is the currency-normalized report for one statement.
//
// Sells is the stable-order subsequence of Transactions with direction
// Sell, and Conversions is index-aligned with it. The structure is built
// once per document and never mutated afterwards.
type Result struct {
	Transactions []Transaction `json:"transactions"`
	Sells        []Transaction `json:"sellTransactions"`
	Conversions  []Conversion  `json:"conversions"`

	ProfitBGN Money `json:"totalProfitBGN"`
	ProfitEUR Money `json:"totalProfitEUR"`
	LossBGN   Money `json:"totalLossBGN"`
	LossEUR   Money `json:"totalLossEUR"`
	ValueBGN  Money `json:"totalValueBGN"`
	ValueEUR  Money `json:"totalValueEUR"`

	Summary Summary `json:"summary"`
}

// Aggregate converts every sell transaction's realized profit/loss into
// both reporting currencies and accumulates the report.
//
// The first conversion failure aborts the whole report, and nothing is
// accumulated before all conversions have succeeded, so a cancelled or
// failed run never yields partial totals.
func Aggregate(ctx context.Context, converter *Converter, transactions []Transaction) (*Result, error) {
	currencies := make(map[string]struct{})
	var first, last date.Date
	sells := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		currencies[t.Currency()] = struct{}{}
		on := t.Day()
		if first.IsZero() || on.Before(first) {
			first = on
		}
		if last.IsZero() || on.After(last) {
			last = on
		}
		if t.Direction == Sell {
			sells = append(sells, t)
		}
	}

	conversions := make([]Conversion, 0, len(sells))
	for i, t := range sells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		conv, err := converter.Convert(ctx, t.ProfitLoss, t.Day())
		if err != nil {
			return nil, fmt.Errorf("sell transaction %d (%s): %w", i, t.Instrument, err)
		}
		conversions = append(conversions, conv.withTotal(t.Total))
	}

	// All conversions succeeded, accumulation can start.
	var profitBGN, profitEUR, lossBGN, lossEUR Money
	for _, conv := range conversions {
		// Zero counts as profit: the loss bucket is strictly negative.
		if conv.BGN.IsNegative() {
			lossBGN = lossBGN.Add(conv.BGN.Abs())
		} else {
			profitBGN = profitBGN.Add(conv.BGN)
		}
		if conv.EUR.IsNegative() {
			lossEUR = lossEUR.Add(conv.EUR.Abs())
		} else {
			profitEUR = profitEUR.Add(conv.EUR)
		}
	}

	involved := make([]string, 0, len(currencies))
	for c := range currencies {
		involved = append(involved, c)
	}
	sort.Strings(involved)

	var dateRange *date.Range
	if len(transactions) > 0 {
		dateRange = &date.Range{From: first, To: last}
	}

	return &Result{
		Transactions: transactions,
		Sells:        sells,
		Conversions:  conversions,
		ProfitBGN:    orZero(profitBGN, "BGN"),
		ProfitEUR:    orZero(profitEUR, "EUR"),
		LossBGN:      orZero(lossBGN, "BGN"),
		LossEUR:      orZero(lossEUR, "EUR"),
		ValueBGN:     orZero(profitBGN.Add(lossBGN), "BGN"),
		ValueEUR:     orZero(profitEUR.Add(lossEUR), "EUR"),
		Summary: Summary{
			SellCount:  len(sells),
			Currencies: involved,
			DateRange:  dateRange,
		},
	}, nil
}

// orZero labels an accumulator that never saw a value with its currency.
func orZero(m Money, currency string) Money {
	if m.Currency() == "" {
		return M(0, currency)
	}
	return m
}
