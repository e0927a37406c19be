package types

import (
	"time"

	"cosmossdk.io/math"
)

// Pool is the per-token ledger entry backing the bonding curve. The engine is
// the only component allowed to mutate it; everything else reads copies.
type Pool struct {
	Token   string
	Creator string

	LaunchType LaunchType

	// Real reserves backing the constant-product curve.
	BnbReserve   math.Int
	TokenReserve math.Int

	// Tokens carved out for the external AMM at graduation. Never traded.
	ReservedTokens math.Int

	// Fixed at creation.
	TotalTokenSupply math.Int

	// Phantom reserve added at quote time only. Zero for project raises.
	VirtualBnbReserve math.Int

	// Cached (bnb + virtual) * supply / tokenReserve, recomputed after
	// every trade. Never drifted incrementally.
	MarketCap math.Int

	GraduationBnbThreshold math.Int

	// BNB earmarked for the external pool at graduation, released once by
	// WithdrawGraduatedPool.
	BnbForExternalSwap math.Int

	LaunchBlock int64

	Graduated bool
	Active    bool

	// LP handling after graduation.
	BurnLP  bool
	LpToken string

	// Spot price at creation, kept for the price-multiplier view.
	InitialPrice math.LegacyDec
}

// AugmentedBnbReserve is the reserve the buy quote prices against: real BNB
// plus the instant-launch virtual reserve. Payouts never draw on the virtual
// portion.
func (p Pool) AugmentedBnbReserve() math.Int {
	return p.BnbReserve.Add(p.VirtualBnbReserve)
}

// SpotPrice returns the current marginal price in BNB per token, or zero when
// the token reserve is empty.
func (p Pool) SpotPrice() math.LegacyDec {
	if p.TokenReserve.IsZero() {
		return math.LegacyZeroDec()
	}
	return math.LegacyNewDecFromInt(p.AugmentedBnbReserve()).
		Quo(math.LegacyNewDecFromInt(p.TokenReserve))
}

// RecomputeMarketCap refreshes the cached market cap from current reserves.
// No-op while the token reserve is empty (price undefined).
func (p *Pool) RecomputeMarketCap() {
	if p.TokenReserve.IsZero() {
		return
	}
	p.MarketCap = p.AugmentedBnbReserve().Mul(p.TotalTokenSupply).Quo(p.TokenReserve)
}

// Validate checks structural soundness of a pool record.
func (p Pool) Validate() error {
	if p.Token == "" {
		return ErrInvalidInput.Wrap("pool token id cannot be empty")
	}
	if p.Creator == "" {
		return ErrInvalidAddress.Wrap("pool creator cannot be empty")
	}
	for name, v := range map[string]math.Int{
		"bnb reserve":      p.BnbReserve,
		"token reserve":    p.TokenReserve,
		"reserved tokens":  p.ReservedTokens,
		"total supply":     p.TotalTokenSupply,
		"virtual reserve":  p.VirtualBnbReserve,
		"market cap":       p.MarketCap,
		"earmarked bnb":    p.BnbForExternalSwap,
	} {
		if v.IsNil() {
			return ErrInvalidInput.Wrapf("pool %s is unset", name)
		}
		if v.IsNegative() {
			return ErrInvariantViolation.Wrapf("pool %s is negative: %s", name, v)
		}
	}
	if !p.TotalTokenSupply.IsPositive() {
		return ErrInvalidInput.Wrap("total supply must be positive")
	}
	if p.TokenReserve.Add(p.ReservedTokens).GT(p.TotalTokenSupply) {
		return ErrInvariantViolation.Wrapf(
			"token reserve %s + reserved %s exceeds total supply %s",
			p.TokenReserve, p.ReservedTokens, p.TotalTokenSupply)
	}
	return nil
}

// CreatorFees is the per-pool creator fee vault: accrual on every trade,
// cooldown-gated claims, conditional redistribution for instant launches.
type CreatorFees struct {
	Token string

	// AccumulatedFees is BNB held in module custody for the creator.
	AccumulatedFees math.Int

	LastClaimTime time.Time

	// GraduationMarketCap is snapshotted when the pool graduates; the
	// loyalty check compares current market cap against it.
	GraduationMarketCap math.Int

	// WeekStartTime anchors the redistribution window.
	WeekStartTime time.Time

	// TotalPurchaseVolume is the running BNB buy volume, observational.
	TotalPurchaseVolume math.Int
}

// NewCreatorFees returns a zeroed vault for a freshly created pool.
func NewCreatorFees(token string, createdAt time.Time) CreatorFees {
	return CreatorFees{
		Token:               token,
		AccumulatedFees:     math.ZeroInt(),
		LastClaimTime:       createdAt,
		GraduationMarketCap: math.ZeroInt(),
		WeekStartTime:       createdAt,
		TotalPurchaseVolume: math.ZeroInt(),
	}
}

// PostGraduationStats tracks secondary-market activity after graduation.
// Purely observational; never read by pricing logic.
type PostGraduationStats struct {
	Token string

	Sells                uint64
	TokensSold           math.Int
	BnbPaidToSellers     math.Int
	LiquidityTokensAdded math.Int
	LiquidityBnbAdded    math.Int
	LpUnitsGenerated     math.Int
}

// NewPostGraduationStats returns zeroed stats for a pool.
func NewPostGraduationStats(token string) PostGraduationStats {
	return PostGraduationStats{
		Token:                token,
		TokensSold:           math.ZeroInt(),
		BnbPaidToSellers:     math.ZeroInt(),
		LiquidityTokensAdded: math.ZeroInt(),
		LiquidityBnbAdded:    math.ZeroInt(),
		LpUnitsGenerated:     math.ZeroInt(),
	}
}
