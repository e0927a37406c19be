package oracle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// HTTPFeed pulls a spot price from a JSON HTTP endpoint, extracting the price
// with a gjson path (for example "price" or "data.0.last").
type HTTPFeed struct {
	url       string
	pricePath string
	client    *http.Client

	now func() time.Time
}

// NewHTTPFeed returns a feed against the given endpoint. A nil client uses a
// default with a 10s timeout.
func NewHTTPFeed(url, pricePath string, client *http.Client) *HTTPFeed {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFeed{
		url:       url,
		pricePath: pricePath,
		client:    client,
		now:       time.Now,
	}
}

// LatestPrice fetches and parses the current price. The observation time is
// the fetch time; HTTP spot endpoints rarely carry one.
func (f *HTTPFeed) LatestPrice(ctx context.Context) (decimal.Decimal, time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, time.Time{}, fmt.Errorf("price endpoint returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}

	raw := gjson.GetBytes(body, f.pricePath)
	if !raw.Exists() {
		return decimal.Zero, time.Time{}, fmt.Errorf("price path %q not found in response", f.pricePath)
	}
	px, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("parse price %q: %w", raw.String(), err)
	}
	if !px.IsPositive() {
		return decimal.Zero, time.Time{}, fmt.Errorf("non-positive price %s", px)
	}
	return px, f.now(), nil
}
