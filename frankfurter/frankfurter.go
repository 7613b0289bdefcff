// Package frankfurter resolves daily exchange rates from the keyless
// frankfurter.dev API, which republishes the ECB reference rates.
//
// The API serves one business day per request; weekends and holidays
// resolve to the preceding business day, which is exactly the rate a
// broker statement settled on that day would have used.
package frankfurter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/dpenev/statement"
	"github.com/dpenev/statement/date"
)

const defaultBaseURL = "https://api.frankfurter.dev/v1"

// Client looks up exchange rates and caches every answer in memory, so
// a statement with many sells on the same day costs one request per
// currency pair and day.
//
// Client implements statement.RateSource.
type Client struct {
	http    *http.Client
	baseURL string

	mu    sync.Mutex
	cache map[string]*date.History[float64] // keyed by "FROM/TO"
}

// New returns a Client backed by the public frankfurter.dev endpoint.
func New() *Client {
	return &Client{
		http:    new(http.Client),
		baseURL: defaultBaseURL,
		cache:   make(map[string]*date.History[float64]),
	}
}

// Lookup returns the rate converting one unit of from into to on the
// given day. Unknown currencies and days the API cannot serve are
// reported as statement.ErrRateUnavailable.
func (c *Client) Lookup(ctx context.Context, from, to string, on date.Date) (decimal.Decimal, error) {
	key := from + "/" + to

	c.mu.Lock()
	h, ok := c.cache[key]
	if !ok {
		h = &date.History[float64]{}
		c.cache[key] = h
	}
	if v, ok := h.Get(on); ok {
		c.mu.Unlock()
		return decimal.NewFromFloat(v), nil
	}
	c.mu.Unlock()

	v, err := c.fetch(ctx, from, to, on)
	if err != nil {
		return decimal.Decimal{}, err
	}

	c.mu.Lock()
	h.Append(on, v)
	c.mu.Unlock()
	return decimal.NewFromFloat(v), nil
}

// fetch asks the single-date endpoint for one rate.
func (c *Client) fetch(ctx context.Context, from, to string, on date.Date) (float64, error) {
	addr := fmt.Sprintf("%s/%s?base=%s&symbols=%s", c.baseURL, on, from, to)
	var jobj any
	if err := jwget(ctx, c.http, addr, &jobj); err != nil {
		return 0, fmt.Errorf("fetching %s rate on %s: %v: %w", from+"/"+to, on, err, statement.ErrRateUnavailable)
	}
	path := fmt.Sprintf("$[\"rates\"][%q]", to)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		// the answer came back 200 but without our symbol
		return 0, fmt.Errorf("no %s rate in answer for %s: %w", to, on, statement.ErrRateUnavailable)
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("%s rate on %s is not a number (%v): %w", from+"/"+to, on, jval, statement.ErrRateUnavailable)
	}
	return val, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response
// into the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		resp.Body.Close()
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
