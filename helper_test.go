package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dpenev/statement/date"
)

// BGN is a helper for tests to create lev money from a const.
func BGN(v float64) Money { return M(v, "BGN") }

// EUR is a helper for tests to create euro money from a const.
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for tests to create dollar money from a const.
func USD(v float64) Money { return M(v, "USD") }

// stubRates is a RateSource serving a fixed table keyed by "FROM/TO".
// Missing pairs fail with ErrRateUnavailable like the real source.
type stubRates struct {
	rates map[string]float64
	calls int
}

func (s *stubRates) Lookup(_ context.Context, from, to string, on date.Date) (decimal.Decimal, error) {
	s.calls++
	r, ok := s.rates[from+"/"+to]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%s/%s on %s: %w", from, to, on, ErrRateUnavailable)
	}
	return decimal.NewFromFloat(r), nil
}

// sellOn builds a sell transaction executed at noon of the given day with
// the given realized profit/loss.
func sellOn(day string, profitLoss Money) Transaction {
	on := date.MustParse(day)
	return Transaction{
		ExecutedAt: time.Date(on.Year(), on.Month(), on.Day(), 12, 0, 0, 0, time.Local),
		Instrument: "TEST",
		Direction:  Sell,
		ProfitLoss: profitLoss,
		Total:      profitLoss,
	}
}

// buyOn is like sellOn for the buy direction.
func buyOn(day string, value Money) Transaction {
	t := sellOn(day, value)
	t.Direction = Buy
	return t
}
