package types

import (
	"time"

	"cosmossdk.io/math"
)

// Scale is the implied fixed-point scale of all BNB and token amounts.
var Scale = math.NewIntWithDecimal(1, 18)

// BnbAmount returns whole BNB expressed in 18-decimal base units.
func BnbAmount(whole int64) math.Int {
	return math.NewInt(whole).Mul(Scale)
}

// TokenAmount returns whole tokens expressed in 18-decimal base units.
func TokenAmount(whole int64) math.Int {
	return math.NewInt(whole).Mul(Scale)
}

// Params holds the platform-wide launch economics. All bps values are basis
// points out of 10000, all pct values integer percent out of 100.
type Params struct {
	// TotalTokenSupply is the fixed supply every launched token mints.
	TotalTokenSupply math.Int

	// GraduationBnbThreshold is the real BNB reserve (virtual excluded)
	// at which a pool graduates.
	GraduationBnbThreshold math.Int

	// TargetMultiplier shapes instant-launch pricing: the virtual reserve
	// is sized so price grows by exactly this factor from launch to
	// graduation. Must be > 1.
	TargetMultiplier int64

	// Anti-bot fee decay: tier rates and half-open block breakpoints
	// [0,b1) -> tier1, [b1,b2) -> tier2, [b2,b3) -> tier3, [b3,∞) -> final.
	FeeTier1Bps      int64
	FeeTier2Bps      int64
	FeeTier3Bps      int64
	TierBreak1Blocks int64
	TierBreak2Blocks int64
	TierBreak3Blocks int64

	// Final-tier rates differ by launch type.
	FinalTierProjectRaiseBps  int64
	FinalTierInstantLaunchBps int64

	// PostGraduationFeeBps is the flat rate once a pool has graduated.
	PostGraduationFeeBps int64

	// Fee distribution per launch type.
	ProjectRaiseSplit  FeeSplit
	InstantLaunchSplit FeeSplit

	// Share of total supply reserved for the external AMM.
	ProjectRaiseReservedPct  int64
	InstantLaunchReservedPct int64

	// Creator fee vault timers.
	ClaimCooldown        time.Duration
	RedistributionPeriod time.Duration

	// Post-graduation secondary market.
	SecondarySlippageBps int64
	SellerProceedsPct    int64
	LpLockDuration       time.Duration

	// InstantLaunchStaysActive keeps instant-launch pools trading on the
	// curve after graduation (product decision carried as a flag).
	InstantLaunchStaysActive bool
}

// DefaultParams returns the platform defaults.
func DefaultParams() Params {
	return Params{
		TotalTokenSupply:       TokenAmount(1_000_000_000),
		GraduationBnbThreshold: BnbAmount(80),
		TargetMultiplier:       5,

		FeeTier1Bps:      1000,
		FeeTier2Bps:      600,
		FeeTier3Bps:      400,
		TierBreak1Blocks: 20,
		TierBreak2Blocks: 50,
		TierBreak3Blocks: 100,

		FinalTierProjectRaiseBps:  100,
		FinalTierInstantLaunchBps: 200,

		PostGraduationFeeBps: 200,

		ProjectRaiseSplit: FeeSplit{
			PlatformPct:  50,
			CreatorPct:   20,
			InfoFiPct:    20,
			LiquidityPct: 10,
		},
		InstantLaunchSplit: FeeSplit{
			PlatformPct:  50,
			CreatorPct:   30,
			InfoFiPct:    20,
			LiquidityPct: 0,
		},

		ProjectRaiseReservedPct:  20,
		InstantLaunchReservedPct: 10,

		ClaimCooldown:        24 * time.Hour,
		RedistributionPeriod: 7 * 24 * time.Hour,

		SecondarySlippageBps: 100,
		SellerProceedsPct:    70,
		LpLockDuration:       365 * 24 * time.Hour,

		InstantLaunchStaysActive: true,
	}
}

// Validate checks parameter consistency.
func (p Params) Validate() error {
	if p.TotalTokenSupply.IsNil() || !p.TotalTokenSupply.IsPositive() {
		return ErrInvalidParams.Wrap("total token supply must be positive")
	}
	if p.GraduationBnbThreshold.IsNil() || !p.GraduationBnbThreshold.IsPositive() {
		return ErrInvalidParams.Wrap("graduation threshold must be positive")
	}
	if p.TargetMultiplier <= 1 {
		return ErrInvalidParams.Wrapf("target multiplier must exceed 1, got %d", p.TargetMultiplier)
	}
	if !(p.TierBreak1Blocks > 0 && p.TierBreak1Blocks < p.TierBreak2Blocks && p.TierBreak2Blocks < p.TierBreak3Blocks) {
		return ErrInvalidParams.Wrapf("fee tier breakpoints must be strictly ascending, got %d/%d/%d",
			p.TierBreak1Blocks, p.TierBreak2Blocks, p.TierBreak3Blocks)
	}
	for _, bps := range []int64{
		p.FeeTier1Bps, p.FeeTier2Bps, p.FeeTier3Bps,
		p.FinalTierProjectRaiseBps, p.FinalTierInstantLaunchBps, p.PostGraduationFeeBps,
		p.SecondarySlippageBps,
	} {
		if bps < 0 || bps > 10000 {
			return ErrInvalidParams.Wrapf("bps value out of range: %d", bps)
		}
	}
	if err := p.ProjectRaiseSplit.Validate(); err != nil {
		return err
	}
	if err := p.InstantLaunchSplit.Validate(); err != nil {
		return err
	}
	for _, pct := range []int64{p.ProjectRaiseReservedPct, p.InstantLaunchReservedPct, p.SellerProceedsPct} {
		if pct <= 0 || pct > 100 {
			return ErrInvalidParams.Wrapf("percentage out of range: %d", pct)
		}
	}
	if p.ClaimCooldown <= 0 {
		return ErrInvalidParams.Wrap("claim cooldown must be positive")
	}
	if p.RedistributionPeriod <= 0 {
		return ErrInvalidParams.Wrap("redistribution period must be positive")
	}
	return nil
}
