package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// LaunchType selects the economic profile of a pool.
type LaunchType int32

const (
	// LaunchTypeProjectRaise pools are seeded with real BNB collected by the
	// fundraising manager; trading stops permanently at graduation.
	LaunchTypeProjectRaise LaunchType = iota

	// LaunchTypeInstantLaunch pools start with zero real capital and shape
	// their opening price with a virtual reserve.
	LaunchTypeInstantLaunch
)

// String implements fmt.Stringer.
func (t LaunchType) String() string {
	switch t {
	case LaunchTypeProjectRaise:
		return "project_raise"
	case LaunchTypeInstantLaunch:
		return "instant_launch"
	default:
		return fmt.Sprintf("unknown(%d)", int32(t))
	}
}

// FeeSplit is an integer-percentage decomposition of a collected fee. The
// four buckets sum to exactly 100; floor-division remainders are absorbed by
// the last bucket computed (liquidity when present, InfoFi otherwise).
type FeeSplit struct {
	PlatformPct  int64 `mapstructure:"platform_pct"`
	CreatorPct   int64 `mapstructure:"creator_pct"`
	InfoFiPct    int64 `mapstructure:"infofi_pct"`
	LiquidityPct int64 `mapstructure:"liquidity_pct"`
}

// Total returns the sum of all bucket percentages.
func (s FeeSplit) Total() int64 {
	return s.PlatformPct + s.CreatorPct + s.InfoFiPct + s.LiquidityPct
}

// Validate checks the split sums to 100 with no negative bucket.
func (s FeeSplit) Validate() error {
	for _, pct := range []int64{s.PlatformPct, s.CreatorPct, s.InfoFiPct, s.LiquidityPct} {
		if pct < 0 {
			return ErrInvalidParams.Wrap("fee split bucket cannot be negative")
		}
	}
	if s.Total() != 100 {
		return ErrInvalidParams.Wrapf("fee split must sum to 100, got %d", s.Total())
	}
	return nil
}

// LaunchPolicy bundles the launch-type-specific constants behind a single
// dispatch point, so buy/sell/graduation/claim logic never re-branches on the
// raw LaunchType tag.
type LaunchPolicy interface {
	// Type returns the tag this policy implements.
	Type() LaunchType

	// FinalTierBps is the fee rate after the anti-bot decay has run out.
	FinalTierBps() int64

	// Split is the fee distribution for this launch type.
	Split() FeeSplit

	// ReservedSupplyPct is the share of total supply carved out for the
	// external AMM at graduation.
	ReservedSupplyPct() int64

	// VirtualReserve is the phantom BNB added to the curve at quote time.
	// Zero for launches seeded with real capital.
	VirtualReserve() math.Int

	// RequiresSeedBnb reports whether pool creation must be funded with
	// real BNB.
	RequiresSeedBnb() bool

	// RemainsActiveOnGraduation reports whether curve trading and
	// creator-fee accrual continue after the graduation threshold is hit.
	RemainsActiveOnGraduation() bool
}

// PolicyFor resolves the policy for a launch type under the given params.
func PolicyFor(t LaunchType, p Params) (LaunchPolicy, error) {
	switch t {
	case LaunchTypeProjectRaise:
		return projectRaisePolicy{p: p}, nil
	case LaunchTypeInstantLaunch:
		return instantLaunchPolicy{p: p}, nil
	default:
		return nil, ErrInvalidInput.Wrapf("unknown launch type %d", int32(t))
	}
}

type projectRaisePolicy struct {
	p Params
}

func (pr projectRaisePolicy) Type() LaunchType         { return LaunchTypeProjectRaise }
func (pr projectRaisePolicy) FinalTierBps() int64      { return pr.p.FinalTierProjectRaiseBps }
func (pr projectRaisePolicy) Split() FeeSplit          { return pr.p.ProjectRaiseSplit }
func (pr projectRaisePolicy) ReservedSupplyPct() int64 { return pr.p.ProjectRaiseReservedPct }
func (pr projectRaisePolicy) VirtualReserve() math.Int { return math.ZeroInt() }
func (pr projectRaisePolicy) RequiresSeedBnb() bool    { return true }

// Project-raise pools always freeze at graduation; the raise moves on to the
// external AMM and the curve is retired.
func (pr projectRaisePolicy) RemainsActiveOnGraduation() bool { return false }

type instantLaunchPolicy struct {
	p Params
}

func (il instantLaunchPolicy) Type() LaunchType         { return LaunchTypeInstantLaunch }
func (il instantLaunchPolicy) FinalTierBps() int64      { return il.p.FinalTierInstantLaunchBps }
func (il instantLaunchPolicy) Split() FeeSplit          { return il.p.InstantLaunchSplit }
func (il instantLaunchPolicy) ReservedSupplyPct() int64 { return il.p.InstantLaunchReservedPct }
func (il instantLaunchPolicy) RequiresSeedBnb() bool    { return false }

// VirtualReserve sizes the phantom reserve so the price multiplier between an
// empty pool and the graduation threshold equals TargetMultiplier:
// virtual = threshold / (multiplier - 1).
func (il instantLaunchPolicy) VirtualReserve() math.Int {
	if il.p.TargetMultiplier <= 1 {
		return math.ZeroInt()
	}
	return il.p.GraduationBnbThreshold.QuoRaw(il.p.TargetMultiplier - 1)
}

func (il instantLaunchPolicy) RemainsActiveOnGraduation() bool {
	return il.p.InstantLaunchStaysActive
}
