package engine

import (
	"cosmossdk.io/math"

	"github.com/moonforge-labs/launchpad/launch/types"
)

// executeSecondarySell routes a sell on a graduated pool through the external
// AMM. The flat fee is taken in tokens, the remainder is split in half: one
// half is swapped for BNB (the seller keeps SellerProceedsPct of it), the
// other half plus the retained BNB is deposited as liquidity. LP units are
// burned or locked depending on the pool's BurnLP flag.
func (e *Engine) executeSecondarySell(ctx types.Context, pool types.Pool, seller string, tokensIn, minBnbOut math.Int) (math.Int, error) {
	// 1. Validate inputs.
	if seller == "" {
		return math.ZeroInt(), types.ErrInvalidAddress.Wrap("seller address is required")
	}
	if !tokensIn.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrapf("token amount must be positive, got %s", tokensIn)
	}
	if minBnbOut.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrapf("min bnb out cannot be negative, got %s", minBnbOut)
	}

	// 2. Flat post-graduation fee, taken in tokens.
	fee := tokensIn.MulRaw(e.params.PostGraduationFeeBps).QuoRaw(10000)
	tokensAfterFee := tokensIn.Sub(fee)
	if !tokensAfterFee.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrapf("token amount %s too small to cover the fee", tokensIn)
	}

	swapHalf := tokensAfterFee.QuoRaw(2)
	lpHalf := tokensAfterFee.Sub(swapHalf)
	if !swapHalf.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrapf("token amount %s too small to split", tokensIn)
	}

	// 3. Quote the swap half and pre-check the seller's floor before moving
	// any funds, so an unprofitable sell fails without side effects.
	quote, err := e.amm.GetAmountOut(ctx, pool.Token, swapHalf)
	if err != nil {
		return math.ZeroInt(), types.ErrAmmFailure.Wrapf("quote: %v", err)
	}
	estimatedProceeds := quote.MulRaw(e.params.SellerProceedsPct).QuoRaw(100)
	if estimatedProceeds.LT(minBnbOut) {
		return math.ZeroInt(), types.ErrSlippageExceeded.Wrapf(
			"estimated proceeds %s below minimum %s", estimatedProceeds, minBnbOut)
	}

	// 4. Collect the full input into module custody.
	if err := e.bank.Transfer(ctx, seller, types.ModuleAccount, pool.Token, tokensIn); err != nil {
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("token collection: %v", err)
	}

	// 5. Swap half the tokens for BNB on the external venue. A failed swap
	// reverts the whole input; the fee is only taken from completed sells.
	// Past this point the swap cannot be unwound, so no later leg may fail
	// the sell and strand the seller: the payout always settles, and the
	// remaining legs degrade to custody sweeps on failure.
	minSwapOut := quote.MulRaw(10000 - e.params.SecondarySlippageBps).QuoRaw(10000)
	bnbOut, err := e.amm.SwapTokenForBnb(ctx, pool.Token, swapHalf, minSwapOut)
	if err != nil {
		e.revertSellInput(ctx, seller, pool.Token, tokensIn, err)
		return math.ZeroInt(), types.ErrAmmFailure.Wrapf("swap: %v", err)
	}

	sellerProceeds := bnbOut.MulRaw(e.params.SellerProceedsPct).QuoRaw(100)
	liquidityBnb := bnbOut.Sub(sellerProceeds)

	// 6. Deposit the other half plus the retained BNB as liquidity. Mins
	// allow the venue 1% of ratio drift since the quote. A rejected deposit
	// does not fail the sell: both legs stay with the platform treasury for
	// a manual top-up and the seller still receives the quoted share.
	usedToken, usedBnb, lpUnits := math.ZeroInt(), math.ZeroInt(), math.ZeroInt()
	minLiqToken := lpHalf.MulRaw(99).QuoRaw(100)
	minLiqBnb := liquidityBnb.MulRaw(99).QuoRaw(100)
	if ut, ub, lp, err := e.amm.AddLiquidity(ctx, pool.Token, lpHalf, liquidityBnb, minLiqToken, minLiqBnb); err != nil {
		e.logger.Error("liquidity deposit rejected, sweeping legs to treasury",
			"token", pool.Token, "err", err)
		e.sweepToTreasury(ctx, pool.Token, lpHalf)
		e.sweepToTreasury(ctx, types.BnbDenom, liquidityBnb)
	} else {
		usedToken, usedBnb, lpUnits = ut, ub, lp
		// Return the deposit dust: unused BNB to the seller, unused
		// tokens to the platform treasury.
		if leftoverBnb := liquidityBnb.Sub(usedBnb); leftoverBnb.IsPositive() {
			sellerProceeds = sellerProceeds.Add(leftoverBnb)
		}
		if leftoverToken := lpHalf.Sub(usedToken); leftoverToken.IsPositive() {
			e.sweepToTreasury(ctx, pool.Token, leftoverToken)
		}
	}

	// 7. Pay the seller. The only fatal leg after the swap: if module
	// custody cannot cover it the ledger is corrupt and the error must
	// surface.
	if sellerProceeds.IsPositive() {
		if err := e.bank.Transfer(ctx, types.ModuleAccount, seller, types.BnbDenom, sellerProceeds); err != nil {
			return math.ZeroInt(), types.ErrTransferFailed.Wrapf("seller payout: %v", err)
		}
	}

	// 8. Platform fee in tokens. On failure the fee stays in module
	// custody; the seller has already been settled.
	if fee.IsPositive() {
		e.sweepToTreasury(ctx, pool.Token, fee)
	}

	// 9. Retire the LP units. Failures leave the units in custody.
	if lpUnits.IsPositive() {
		lpDenom := types.LpDenom(pool.Token)
		if pool.BurnLP {
			if err := e.bank.Transfer(ctx, types.ModuleAccount, types.BurnAccount, lpDenom, lpUnits); err != nil {
				e.logger.Error("lp burn failed, units held in custody",
					"token", pool.Token, "lp_units", lpUnits.String(), "err", err)
			}
		} else {
			if err := e.lpVault.Lock(ctx, pool.Token, pool.LpToken, pool.Creator, e.addresses.PlatformTreasury, lpUnits, e.params.LpLockDuration); err != nil {
				e.logger.Error("lp lock failed, units held in custody",
					"token", pool.Token, "lp_units", lpUnits.String(), "err", err)
			}
		}
	}

	// 10. Record stats and emit.
	stats, err := e.ledger.getPostGradStats(pool.Token)
	if err != nil {
		stats = types.NewPostGraduationStats(pool.Token)
	}
	stats.Sells++
	stats.TokensSold = stats.TokensSold.Add(tokensIn)
	stats.BnbPaidToSellers = stats.BnbPaidToSellers.Add(sellerProceeds)
	stats.LiquidityTokensAdded = stats.LiquidityTokensAdded.Add(usedToken)
	stats.LiquidityBnbAdded = stats.LiquidityBnbAdded.Add(usedBnb)
	stats.LpUnitsGenerated = stats.LpUnitsGenerated.Add(lpUnits)
	e.ledger.setPostGradStats(stats)

	ctx.EventManager().EmitEvent(types.NewEvent(
		types.EventTypeSecondarySell,
		types.NewAttribute(types.AttributeKeyToken, pool.Token),
		types.NewAttribute(types.AttributeKeyTrader, seller),
		types.NewAttribute(types.AttributeKeyTokensIn, tokensIn.String()),
		types.NewAttribute(types.AttributeKeyFee, fee.String()),
		types.NewAttribute(types.AttributeKeySellerProceeds, sellerProceeds.String()),
		types.NewAttribute(types.AttributeKeyLiquidityTokens, usedToken.String()),
		types.NewAttribute(types.AttributeKeyLiquidityBnb, usedBnb.String()),
		types.NewAttribute(types.AttributeKeyLpUnits, lpUnits.String()),
	))

	e.metrics.SecondarySellsTotal.WithLabelValues("success").Inc()
	e.metrics.TradesTotal.WithLabelValues("sell", pool.LaunchType.String(), "success").Inc()
	e.metrics.TradeVolumeBnb.WithLabelValues("sell", pool.LaunchType.String()).Add(wholeBnb(sellerProceeds))
	e.logger.Info("secondary sell executed",
		"token", pool.Token,
		"seller", seller,
		"tokens_in", tokensIn.String(),
		"seller_proceeds", sellerProceeds.String(),
		"lp_units", lpUnits.String(),
	)

	return sellerProceeds, nil
}

// sweepToTreasury moves amount of denom from module custody to the platform
// treasury. Best effort: a failure leaves the funds in custody and is logged,
// never propagated, so it can run after a trade's point of no return.
func (e *Engine) sweepToTreasury(ctx types.Context, denom string, amount math.Int) {
	if !amount.IsPositive() {
		return
	}
	if err := e.bank.Transfer(ctx, types.ModuleAccount, e.addresses.PlatformTreasury, denom, amount); err != nil {
		e.logger.Error("treasury sweep failed, funds held in custody",
			"denom", denom,
			"amount", amount.String(),
			"err", err,
		)
	}
}
