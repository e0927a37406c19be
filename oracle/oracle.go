// Package oracle converts BNB amounts to USD for view queries. Prices come
// from a pluggable feed; a stale or failing feed degrades to a configured
// fallback price so queries never error on feed outages.
package oracle

import (
	"context"
	"time"

	"cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/shopspring/decimal"
)

const codespace = "oracle"

var (
	ErrNoPrice      = errors.Register(codespace, 2, "no price available")
	ErrInvalidPrice = errors.Register(codespace, 3, "invalid price")
)

// Feed supplies the latest BNB/USD price and its observation time.
type Feed interface {
	LatestPrice(ctx context.Context) (decimal.Decimal, time.Time, error)
}

// Config assembles an Oracle.
type Config struct {
	Feed Feed

	// StaleAfter bounds how old a feed observation may be before the
	// fallback price is used instead.
	StaleAfter time.Duration

	// FallbackPrice is used when the feed fails or is stale. Zero means
	// no fallback: conversions error instead.
	FallbackPrice decimal.Decimal

	Logger log.Logger
}

// Oracle caches nothing; every conversion consults the feed and falls back on
// failure.
type Oracle struct {
	feed       Feed
	staleAfter time.Duration
	fallback   decimal.Decimal
	logger     log.Logger

	now func() time.Time
}

// New returns an oracle over the given feed.
func New(cfg Config) *Oracle {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	staleAfter := cfg.StaleAfter
	if staleAfter <= 0 {
		staleAfter = time.Hour
	}
	return &Oracle{
		feed:       cfg.Feed,
		staleAfter: staleAfter,
		fallback:   cfg.FallbackPrice,
		logger:     logger.With("module", "oracle"),
		now:        time.Now,
	}
}

// BnbToUsd converts an 18-decimal BNB amount to a USD value.
func (o *Oracle) BnbToUsd(ctx context.Context, amount math.Int) (math.LegacyDec, error) {
	price, err := o.price(ctx)
	if err != nil {
		return math.LegacyDec{}, err
	}
	whole := math.LegacyNewDecFromInt(amount).QuoInt(math.NewIntWithDecimal(1, 18))
	return whole.Mul(price), nil
}

func (o *Oracle) price(ctx context.Context) (math.LegacyDec, error) {
	if o.feed != nil {
		px, observedAt, err := o.feed.LatestPrice(ctx)
		switch {
		case err != nil:
			o.logger.Error("price feed failed", "err", err)
		case o.now().Sub(observedAt) > o.staleAfter:
			o.logger.Error("price feed stale", "observed_at", observedAt)
		case px.IsPositive():
			return toLegacyDec(px)
		}
	}
	if o.fallback.IsPositive() {
		return toLegacyDec(o.fallback)
	}
	return math.LegacyDec{}, ErrNoPrice.Wrap("feed unavailable and no fallback configured")
}

func toLegacyDec(d decimal.Decimal) (math.LegacyDec, error) {
	out, err := math.LegacyNewDecFromStr(d.String())
	if err != nil {
		return math.LegacyDec{}, ErrInvalidPrice.Wrapf("price %s: %v", d, err)
	}
	return out, nil
}
