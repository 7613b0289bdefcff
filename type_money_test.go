package statement

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyArithmetic(t *testing.T) {
	a, b := BGN(100.5), BGN(49.5)
	if got := a.Add(b); !got.Equal(BGN(150)) {
		t.Errorf("Add = %v, want 150 BGN", got)
	}
	if got := a.Sub(b); !got.Equal(BGN(51)) {
		t.Errorf("Sub = %v, want 51 BGN", got)
	}
	if got := BGN(-3.5).Abs(); !got.Equal(BGN(3.5)) {
		t.Errorf("Abs = %v, want 3.5 BGN", got)
	}
	if got := BGN(3.5).Neg(); !got.Equal(BGN(-3.5)) {
		t.Errorf("Neg = %v, want -3.5 BGN", got)
	}
}

func TestMoneyZeroValueAccumulator(t *testing.T) {
	var acc Money
	acc = acc.Add(EUR(10))
	acc = acc.Add(EUR(5))
	if acc.Currency() != "EUR" {
		t.Errorf("Currency = %q, want EUR adopted from the first operand", acc.Currency())
	}
	if !acc.Equal(EUR(15)) {
		t.Errorf("acc = %v, want 15 EUR", acc)
	}
}

func TestMoneyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add over two currencies must panic")
		}
	}()
	BGN(1).Add(USD(1))
}

func TestMoneyMulDivRelabel(t *testing.T) {
	rate := decimal.RequireFromString("1.95583")
	got := EUR(100).Mul(rate, "BGN")
	if got.Currency() != "BGN" || !got.Amount().Equal(decimal.RequireFromString("195.583")) {
		t.Errorf("Mul = %v, want 195.583 BGN", got)
	}
	back := got.Div(rate, "EUR")
	if back.Currency() != "EUR" || !back.Amount().Equal(decimal.NewFromInt(100)) {
		t.Errorf("Div = %v, want 100 EUR", back)
	}
}

func TestMoneyJSON(t *testing.T) {
	buf, err := json.Marshal(BGN(123.456))
	if err != nil {
		t.Fatalf("Marshal() unexpected error = %v", err)
	}
	want := `{"currency":"BGN","amount":"123.46"}`
	if string(buf) != want {
		t.Errorf("Marshal() = %s, want %s", buf, want)
	}
}

func TestQuantity(t *testing.T) {
	if !Q(1.5).Equal(Q(1.5)) || Q(1.5).Equal(Q(2)) {
		t.Error("Equal misbehaves")
	}
	if Q(0).String() != "0" || Q(1.5).String() != "1.5" {
		t.Errorf("String = %q and %q", Q(0).String(), Q(1.5).String())
	}
	if !Q(-1).IsNegative() || Q(1).IsNegative() {
		t.Error("IsNegative misbehaves")
	}
}

func TestMoneySignedString(t *testing.T) {
	if got := BGN(0).SignedString(); got != "-" {
		t.Errorf("SignedString(0) = %q, want -", got)
	}
	if got := BGN(12).SignedString(); got == "" || got[0] != '+' {
		t.Errorf("SignedString(12) = %q, want a leading +", got)
	}
}
