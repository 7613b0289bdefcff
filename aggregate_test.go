package statement

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"
)

func TestAggregateBuckets(t *testing.T) {
	// BGN sells so the converted BGN values are the profit/loss as-is.
	txs := []Transaction{
		sellOn("2024-03-01", BGN(180.5)),
		sellOn("2024-03-05", BGN(-90.25)),
		sellOn("2024-03-10", BGN(361)),
		sellOn("2024-03-15", BGN(-54.15)),
	}
	res, err := Aggregate(context.Background(), NewConverter(&stubRates{}), txs)
	if err != nil {
		t.Fatalf("Aggregate() unexpected error = %v", err)
	}
	if diff := math.Abs(res.ProfitBGN.AsFloat() - 541.5); diff > tolerance {
		t.Errorf("ProfitBGN = %v, want 541.5", res.ProfitBGN)
	}
	if diff := math.Abs(res.LossBGN.AsFloat() - 144.4); diff > tolerance {
		t.Errorf("LossBGN = %v, want 144.4", res.LossBGN)
	}
	if !res.ValueBGN.Equal(res.ProfitBGN.Add(res.LossBGN)) {
		t.Errorf("ValueBGN = %v, want profit+loss", res.ValueBGN)
	}
	if !res.ValueEUR.Equal(res.ProfitEUR.Add(res.LossEUR)) {
		t.Errorf("ValueEUR = %v, want profit+loss", res.ValueEUR)
	}
	if res.Summary.SellCount != 4 {
		t.Errorf("SellCount = %d, want 4", res.Summary.SellCount)
	}
}

func TestAggregateZeroIsProfit(t *testing.T) {
	txs := []Transaction{
		sellOn("2024-03-01", BGN(0)),
		sellOn("2024-03-02", BGN(-5)),
	}
	res, err := Aggregate(context.Background(), NewConverter(&stubRates{}), txs)
	if err != nil {
		t.Fatalf("Aggregate() unexpected error = %v", err)
	}
	if !res.ProfitBGN.IsZero() {
		t.Errorf("ProfitBGN = %v, want 0", res.ProfitBGN)
	}
	if diff := math.Abs(res.LossBGN.AsFloat() - 5); diff > tolerance {
		t.Errorf("LossBGN = %v, want 5 (zero must never count as loss)", res.LossBGN)
	}
}

func TestAggregateEmpty(t *testing.T) {
	res, err := Aggregate(context.Background(), NewConverter(&stubRates{}), nil)
	if err != nil {
		t.Fatalf("Aggregate() unexpected error = %v", err)
	}
	if res.Summary.DateRange != nil {
		t.Errorf("DateRange = %v, want nil for an empty statement", res.Summary.DateRange)
	}
	if res.Summary.SellCount != 0 || len(res.Summary.Currencies) != 0 {
		t.Errorf("Summary = %+v, want empty", res.Summary)
	}
	for _, m := range []Money{res.ProfitBGN, res.ProfitEUR, res.LossBGN, res.LossEUR, res.ValueBGN, res.ValueEUR} {
		if !m.IsZero() {
			t.Errorf("total %v is not zero", m)
		}
	}
	if res.ProfitBGN.Currency() != "BGN" || res.ProfitEUR.Currency() != "EUR" {
		t.Error("zero totals must still carry their reporting currency")
	}
}

func TestAggregateCurrencySet(t *testing.T) {
	// Buys only: the currency set covers all transactions, not just sells.
	txs := []Transaction{
		buyOn("2024-03-01", USD(1)),
		buyOn("2024-03-02", EUR(1)),
		buyOn("2024-03-03", USD(1)),
		buyOn("2024-03-04", M(1, "GBP")),
		buyOn("2024-03-05", EUR(1)),
	}
	res, err := Aggregate(context.Background(), NewConverter(&stubRates{}), txs)
	if err != nil {
		t.Fatalf("Aggregate() unexpected error = %v", err)
	}
	want := []string{"EUR", "GBP", "USD"}
	if !slices.Equal(res.Summary.Currencies, want) {
		t.Errorf("Currencies = %v, want %v", res.Summary.Currencies, want)
	}
}

func TestAggregateDateRange(t *testing.T) {
	txs := []Transaction{
		buyOn("2024-03-01", BGN(1)),
		sellOn("2024-03-15", BGN(1)),
		sellOn("2024-03-10", BGN(1)),
	}
	res, err := Aggregate(context.Background(), NewConverter(&stubRates{}), txs)
	if err != nil {
		t.Fatalf("Aggregate() unexpected error = %v", err)
	}
	dr := res.Summary.DateRange
	if dr == nil {
		t.Fatal("DateRange = nil, want a range")
	}
	if dr.From.String() != "2024-03-01" || dr.To.String() != "2024-03-15" {
		t.Errorf("DateRange = %s, want 2024-03-01..2024-03-15", dr)
	}
}

func TestAggregateOrderPreserved(t *testing.T) {
	txs := []Transaction{
		sellOn("2024-03-10", BGN(3)),
		buyOn("2024-03-01", BGN(1)),
		sellOn("2024-03-01", BGN(1)),
		sellOn("2024-03-05", BGN(2)),
	}
	res, err := Aggregate(context.Background(), NewConverter(&stubRates{}), txs)
	if err != nil {
		t.Fatalf("Aggregate() unexpected error = %v", err)
	}
	if len(res.Sells) != 3 || len(res.Conversions) != 3 {
		t.Fatalf("got %d sells and %d conversions, want 3 each", len(res.Sells), len(res.Conversions))
	}
	// sells keep document order, conversions stay index-aligned
	for i, want := range []float64{3, 1, 2} {
		if diff := math.Abs(res.Sells[i].ProfitLoss.AsFloat() - want); diff > tolerance {
			t.Errorf("Sells[%d] = %v, want %v", i, res.Sells[i].ProfitLoss, want)
		}
		if !res.Conversions[i].Original.Equal(res.Sells[i].ProfitLoss) {
			t.Errorf("Conversions[%d] not aligned with Sells[%d]", i, i)
		}
	}
}

func TestAggregateFailFast(t *testing.T) {
	txs := []Transaction{
		sellOn("2024-03-01", BGN(100)),
		sellOn("2024-03-02", USD(100)), // no USD rate in the stub
		sellOn("2024-03-03", BGN(100)),
	}
	res, err := Aggregate(context.Background(), NewConverter(&stubRates{}), txs)
	if !errors.Is(err, ErrRateUnavailable) {
		t.Fatalf("Aggregate() error = %v, want ErrRateUnavailable", err)
	}
	if res != nil {
		t.Error("Aggregate() returned a partial result alongside the error")
	}
}

func TestAggregateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Aggregate(ctx, NewConverter(&stubRates{}), []Transaction{sellOn("2024-03-01", BGN(1))})
	if err == nil {
		t.Fatal("Aggregate() expected an error after cancellation")
	}
	if res != nil {
		t.Error("Aggregate() returned a partial result after cancellation")
	}
}
