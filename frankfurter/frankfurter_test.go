package frankfurter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dpenev/statement"
	"github.com/dpenev/statement/date"
)

// newTestClient points a Client at a fake frankfurter endpoint.
func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := New()
	c.baseURL = srv.URL
	return c, srv
}

func TestLookup(t *testing.T) {
	var calls int
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/2024-03-01" {
			t.Errorf("path = %q, want /2024-03-01", r.URL.Path)
		}
		if got := r.URL.Query().Get("base"); got != "USD" {
			t.Errorf("base = %q, want USD", got)
		}
		if got := r.URL.Query().Get("symbols"); got != "BGN" {
			t.Errorf("symbols = %q, want BGN", got)
		}
		fmt.Fprint(w, `{"amount":1.0,"base":"USD","date":"2024-03-01","rates":{"BGN":1.8067}}`)
	}))
	defer srv.Close()

	on := date.New(2024, 3, 1)
	rate, err := c.Lookup(context.Background(), "USD", "BGN", on)
	if err != nil {
		t.Fatalf("Lookup() unexpected error = %v", err)
	}
	if diff := math.Abs(rate.InexactFloat64() - 1.8067); diff > 1e-9 {
		t.Errorf("rate = %v, want 1.8067", rate)
	}

	// second lookup for the same pair and day must come from the cache
	if _, err := c.Lookup(context.Background(), "USD", "BGN", on); err != nil {
		t.Fatalf("cached Lookup() unexpected error = %v", err)
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1", calls)
	}
}

func TestLookupUnsupportedCurrency(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := c.Lookup(context.Background(), "QQQ", "BGN", date.New(2024, 3, 1))
	if !errors.Is(err, statement.ErrRateUnavailable) {
		t.Fatalf("Lookup() error = %v, want ErrRateUnavailable", err)
	}
}

func TestLookupMissingSymbol(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"amount":1.0,"base":"USD","date":"2024-03-01","rates":{}}`)
	}))
	defer srv.Close()

	_, err := c.Lookup(context.Background(), "USD", "BGN", date.New(2024, 3, 1))
	if !errors.Is(err, statement.ErrRateUnavailable) {
		t.Fatalf("Lookup() error = %v, want ErrRateUnavailable", err)
	}
}
