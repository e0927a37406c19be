package oracle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	price      decimal.Decimal
	observedAt time.Time
	err        error
}

func (s stubFeed) LatestPrice(context.Context) (decimal.Decimal, time.Time, error) {
	return s.price, s.observedAt, s.err
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestBnbToUsd_FreshFeed(t *testing.T) {
	o := New(Config{Feed: stubFeed{
		price:      decimal.RequireFromString("612.35"),
		observedAt: fixedNow().Add(-time.Minute),
	}})
	o.now = fixedNow

	usd, err := o.BnbToUsd(context.Background(), math.NewIntWithDecimal(2, 18))
	require.NoError(t, err)
	require.True(t, usd.Equal(math.LegacyMustNewDecFromStr("1224.70")), "got %s", usd)
}

func TestBnbToUsd_StaleFeedFallsBack(t *testing.T) {
	o := New(Config{
		Feed: stubFeed{
			price:      decimal.NewFromInt(612),
			observedAt: fixedNow().Add(-2 * time.Hour),
		},
		FallbackPrice: decimal.NewFromInt(500),
	})
	o.now = fixedNow

	usd, err := o.BnbToUsd(context.Background(), math.NewIntWithDecimal(1, 18))
	require.NoError(t, err)
	require.True(t, usd.Equal(math.LegacyNewDec(500)))
}

func TestBnbToUsd_DefaultWindowKeepsHourOldPrice(t *testing.T) {
	// 59 minutes is inside the default one-hour window: the feed price
	// wins over the fallback.
	o := New(Config{
		Feed: stubFeed{
			price:      decimal.NewFromInt(612),
			observedAt: fixedNow().Add(-59 * time.Minute),
		},
		FallbackPrice: decimal.NewFromInt(500),
	})
	o.now = fixedNow

	usd, err := o.BnbToUsd(context.Background(), math.NewIntWithDecimal(1, 18))
	require.NoError(t, err)
	require.True(t, usd.Equal(math.LegacyNewDec(612)))
}

func TestBnbToUsd_FeedErrorFallsBack(t *testing.T) {
	o := New(Config{
		Feed:          stubFeed{err: errors.New("connection refused")},
		FallbackPrice: decimal.NewFromInt(500),
	})
	o.now = fixedNow

	usd, err := o.BnbToUsd(context.Background(), math.NewIntWithDecimal(3, 18))
	require.NoError(t, err)
	require.True(t, usd.Equal(math.LegacyNewDec(1500)))
}

func TestBnbToUsd_NoFallbackErrors(t *testing.T) {
	o := New(Config{Feed: stubFeed{err: errors.New("down")}})
	_, err := o.BnbToUsd(context.Background(), math.NewIntWithDecimal(1, 18))
	require.ErrorIs(t, err, ErrNoPrice)
}

func TestBnbToUsd_NonPositivePriceFallsBack(t *testing.T) {
	o := New(Config{
		Feed:          stubFeed{price: decimal.Zero, observedAt: fixedNow()},
		FallbackPrice: decimal.NewFromInt(450),
	})
	o.now = fixedNow

	usd, err := o.BnbToUsd(context.Background(), math.NewIntWithDecimal(1, 18))
	require.NoError(t, err)
	require.True(t, usd.Equal(math.LegacyNewDec(450)))
}

func TestHTTPFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":{"symbol":"BNBUSDT","last":"612.35"}}`))
	}))
	defer srv.Close()

	feed := NewHTTPFeed(srv.URL, "data.last", srv.Client())
	px, observedAt, err := feed.LatestPrice(context.Background())
	require.NoError(t, err)
	require.True(t, px.Equal(decimal.RequireFromString("612.35")))
	require.False(t, observedAt.IsZero())
}

func TestHTTPFeed_Failures(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, _, err := NewHTTPFeed(srv.URL, "last", srv.Client()).LatestPrice(context.Background())
		require.ErrorContains(t, err, "503")
	})

	t.Run("missing price path", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"data":{}}`))
		}))
		defer srv.Close()

		_, _, err := NewHTTPFeed(srv.URL, "data.last", srv.Client()).LatestPrice(context.Background())
		require.ErrorContains(t, err, "not found")
	})

	t.Run("non-positive price", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"last":"0"}`))
		}))
		defer srv.Close()

		_, _, err := NewHTTPFeed(srv.URL, "last", srv.Client()).LatestPrice(context.Background())
		require.ErrorContains(t, err, "non-positive")
	})
}
