package statement

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dpenev/statement/date"
)

// Direction tags a transaction as a purchase or a sale.
type Direction int

const (
	Buy Direction = iota
	Sell
)

// String returns the canonical lowercase name of the direction.
func (d Direction) String() string {
	if d == Sell {
		return "sell"
	}
	return "buy"
}

// MarshalJSON writes the direction as its canonical name.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// directionMarkers maps the direction markers found in statements to
// their tag. Bulgarian statements print the direction in Cyrillic.
var directionMarkers = map[string]Direction{
	"покупка":  Buy,
	"продажба": Sell,
	"buy":      Buy,
	"sell":     Sell,
}

// ParseDirection maps a statement direction marker to its Direction.
// An unrecognized marker is a malformed row, never silently coerced.
func ParseDirection(s string) (Direction, error) {
	d, ok := directionMarkers[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unrecognized direction %q: %w", s, ErrMalformedRow)
	}
	return d, nil
}

// Transaction is one executed trade taken from a statement.
//
// Value, ProfitLoss and Total are denominated in the transaction
// currency, which is the basis for all downstream conversion. The order
// currency may differ and is never used for conversion.
type Transaction struct {
	ExecutedAt    time.Time       `json:"executionTime"`
	Instrument    string          `json:"instrument"`
	ISIN          string          `json:"isin,omitempty"`
	OrderCurrency string          `json:"orderCurrency"`
	Direction     Direction       `json:"direction"`
	Quantity      Quantity        `json:"quantity"`
	Price         Money           `json:"price"`
	Value         Money           `json:"transactionValue"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"` // broker-reported, informational only
	ProfitLoss    Money           `json:"profitLoss"`
	Total         Money           `json:"total"`
}

// Currency returns the transaction currency, the one ProfitLoss and
// Value are denominated in.
func (t Transaction) Currency() string { return t.ProfitLoss.Currency() }

// Day returns the calendar day the trade was executed, taken from the
// execution time's own local components.
func (t Transaction) Day() date.Date { return date.FromTime(t.ExecutedAt) }
