package engine

import (
	"cosmossdk.io/math"

	"github.com/moonforge-labs/launchpad/launch/types"
)

// feeBreakdown is the exact decomposition of one collected fee. Buckets sum
// to the fee by construction: floor division per bucket, with the remainder
// absorbed by the last bucket (liquidity when the split has one, InfoFi
// otherwise).
type feeBreakdown struct {
	platform  math.Int
	creator   math.Int
	infoFi    math.Int
	liquidity math.Int

	// selfTrade marks a trade by the pool creator: the creator bucket is
	// redirected to the InfoFi treasury instead of accruing.
	selfTrade bool
}

func (b feeBreakdown) total() math.Int {
	return b.platform.Add(b.creator).Add(b.infoFi).Add(b.liquidity)
}

// infoFiOut is the amount owed to the InfoFi treasury: the InfoFi bucket,
// plus the creator bucket when the trade was a self-trade.
func (b feeBreakdown) infoFiOut() math.Int {
	if b.selfTrade {
		return b.infoFi.Add(b.creator)
	}
	return b.infoFi
}

// splitFee decomposes fee according to the launch type's split.
func splitFee(fee math.Int, split types.FeeSplit) feeBreakdown {
	platform := fee.MulRaw(split.PlatformPct).QuoRaw(100)
	creator := fee.MulRaw(split.CreatorPct).QuoRaw(100)

	var infoFi, liquidity math.Int
	if split.LiquidityPct > 0 {
		infoFi = fee.MulRaw(split.InfoFiPct).QuoRaw(100)
		liquidity = fee.Sub(platform).Sub(creator).Sub(infoFi)
	} else {
		liquidity = math.ZeroInt()
		infoFi = fee.Sub(platform).Sub(creator)
	}
	return feeBreakdown{
		platform:  platform,
		creator:   creator,
		infoFi:    infoFi,
		liquidity: liquidity,
	}
}

// distributeFee applies one trade's fee to the local pool/vault copies:
//
//   - creator bucket   -> accrues in the vault, unless trader == creator,
//     in which case it is redirected to the InfoFi treasury for this trade
//   - liquidity bucket -> folded back into the real BNB reserve (project
//     raises only; the BNB stays in module custody)
//
// The platform and InfoFi buckets are only earmarked here. The fee BNB sits
// in module custody (collected from the trade input or withheld from the
// payout) until payFeeBuckets moves it out after the trade commits, so a
// failed treasury transfer can never force a half-distributed unwind.
func (e *Engine) distributeFee(
	pool *types.Pool,
	vault *types.CreatorFees,
	policy types.LaunchPolicy,
	trader string,
	fee math.Int,
) feeBreakdown {
	if fee.IsZero() {
		return feeBreakdown{
			platform:  math.ZeroInt(),
			creator:   math.ZeroInt(),
			infoFi:    math.ZeroInt(),
			liquidity: math.ZeroInt(),
		}
	}

	breakdown := splitFee(fee, policy.Split())
	breakdown.selfTrade = trader == pool.Creator

	// Creators cannot farm fees from their own volume: on a self-trade the
	// creator bucket skips the vault and infoFiOut folds it into the InfoFi
	// payout instead.
	if !breakdown.selfTrade && breakdown.creator.IsPositive() {
		vault.AccumulatedFees = vault.AccumulatedFees.Add(breakdown.creator)
	}

	if breakdown.liquidity.IsPositive() {
		pool.BnbReserve = pool.BnbReserve.Add(breakdown.liquidity)
	}

	return breakdown
}

// payFeeBuckets transfers the outbound fee buckets from module custody to
// their treasuries and records the fee. Called after the trade state is
// committed; a failed transfer leaves that bucket in module custody instead
// of unwinding the trade.
func (e *Engine) payFeeBuckets(ctx types.Context, token, trader string, fee math.Int, breakdown feeBreakdown) {
	if fee.IsZero() {
		return
	}

	if breakdown.platform.IsPositive() {
		if err := e.bank.Transfer(ctx, types.ModuleAccount, e.addresses.PlatformTreasury, types.BnbDenom, breakdown.platform); err != nil {
			e.logger.Error("platform fee transfer failed, bucket held in custody",
				"token", token, "amount", breakdown.platform.String(), "err", err)
		}
	}
	if out := breakdown.infoFiOut(); out.IsPositive() {
		if err := e.bank.Transfer(ctx, types.ModuleAccount, e.addresses.InfoFiTreasury, types.BnbDenom, out); err != nil {
			e.logger.Error("infofi fee transfer failed, bucket held in custody",
				"token", token, "amount", out.String(), "err", err)
		}
	}

	ctx.EventManager().EmitEvent(types.NewEvent(
		types.EventTypeFeesCollected,
		types.NewAttribute(types.AttributeKeyToken, token),
		types.NewAttribute(types.AttributeKeyTrader, trader),
		types.NewAttribute(types.AttributeKeyFee, fee.String()),
		types.NewAttribute(types.AttributeKeyPlatformFee, breakdown.platform.String()),
		types.NewAttribute(types.AttributeKeyCreatorFee, breakdown.creator.String()),
		types.NewAttribute(types.AttributeKeyInfoFiFee, breakdown.infoFi.String()),
		types.NewAttribute(types.AttributeKeyLiquidityFee, breakdown.liquidity.String()),
	))

	e.metrics.FeesCollectedBnb.WithLabelValues("platform").Add(wholeBnb(breakdown.platform))
	e.metrics.FeesCollectedBnb.WithLabelValues("creator").Add(wholeBnb(breakdown.creator))
	e.metrics.FeesCollectedBnb.WithLabelValues("infofi").Add(wholeBnb(breakdown.infoFi))
	e.metrics.FeesCollectedBnb.WithLabelValues("liquidity").Add(wholeBnb(breakdown.liquidity))
}
