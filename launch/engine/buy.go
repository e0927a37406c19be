package engine

import (
	"fmt"
	"time"

	"cosmossdk.io/math"

	"github.com/moonforge-labs/launchpad/launch/types"
)

// Buy spends bnbIn against the bonding curve and returns the tokens bought.
// The quote prices against the augmented reserve (real + virtual BNB); the
// fee is taken from the input before it touches the curve. minTokensOut is
// the caller's slippage guard.
func (e *Engine) Buy(ctx types.Context, buyer, token string, bnbIn, minTokensOut math.Int) (math.Int, error) {
	start := time.Now()
	defer func() {
		e.metrics.TradeLatency.Observe(time.Since(start).Seconds())
	}()

	tokensOut := math.ZeroInt()
	err := e.withPoolLock(token, func() error {
		out, err := e.executeBuy(ctx, buyer, token, bnbIn, minTokensOut)
		if err != nil {
			return err
		}
		tokensOut = out
		return nil
	})
	if err != nil {
		e.metrics.TradesTotal.WithLabelValues("buy", "-", "failed").Inc()
		return math.ZeroInt(), err
	}
	return tokensOut, nil
}

func (e *Engine) executeBuy(ctx types.Context, buyer, token string, bnbIn, minTokensOut math.Int) (math.Int, error) {
	// 1. Validate inputs.
	if buyer == "" {
		return math.ZeroInt(), types.ErrInvalidAddress.Wrap("buyer address is required")
	}
	if bnbIn.IsNil() || !bnbIn.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrap("buy amount must be positive")
	}
	if minTokensOut.IsNil() {
		minTokensOut = math.ZeroInt()
	}

	pool, err := e.ledger.getPool(token)
	if err != nil {
		return math.ZeroInt(), err
	}
	// Graduated pools that remain active keep selling on the curve.
	if !pool.Active {
		if pool.Graduated {
			return math.ZeroInt(), types.ErrPoolGraduated.Wrapf("pool %s no longer sells on the curve", token)
		}
		return math.ZeroInt(), types.ErrPoolNotActive.Wrapf("pool %s is closed", token)
	}

	policy, err := e.policyFor(pool)
	if err != nil {
		return math.ZeroInt(), err
	}
	vault, err := e.ledger.getCreatorFees(token)
	if err != nil {
		return math.ZeroInt(), err
	}

	// 2. Fee off the input.
	feeBps := e.feeRateBps(pool, policy, ctx.BlockHeight())
	fee := bnbIn.MulRaw(feeBps).QuoRaw(10000)
	bnbAfterFee := bnbIn.Sub(fee)
	if !bnbAfterFee.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrap("buy amount too small after fees")
	}

	// 3. Constant-product quote against the augmented reserve.
	augmented := pool.AugmentedBnbReserve()
	tokensOut := bnbAfterFee.Mul(pool.TokenReserve).Quo(augmented.Add(bnbAfterFee))
	if tokensOut.IsZero() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrap("buy amount too small for current price")
	}
	if tokensOut.GTE(pool.TokenReserve) {
		// The clamp would empty the curve and leave the spot price
		// undefined; the pool graduates long before that point.
		return math.ZeroInt(), types.ErrInsufficientLiquidity.Wrapf(
			"buy would drain the token reserve (%s requested of %s)", tokensOut, pool.TokenReserve)
	}

	// 4. Slippage guard.
	if tokensOut.LT(minTokensOut) {
		return math.ZeroInt(), types.ErrSlippageExceeded.Wrapf(
			"expected at least %s tokens, quote yields %s", minTokensOut, tokensOut)
	}

	// 5. Collect the input before any ledger mutation becomes visible.
	if err := e.bank.Transfer(ctx, buyer, types.ModuleAccount, types.BnbDenom, bnbIn); err != nil {
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("buy input transfer: %v", err)
	}

	// 6. Effects on local copies, committed only after all transfers.
	pool.BnbReserve = pool.BnbReserve.Add(bnbAfterFee)
	pool.TokenReserve = pool.TokenReserve.Sub(tokensOut)
	vault.TotalPurchaseVolume = vault.TotalPurchaseVolume.Add(bnbIn)

	breakdown := e.distributeFee(&pool, &vault, policy, buyer, fee)
	pool.RecomputeMarketCap()

	if err := CheckPoolInvariants(pool); err != nil {
		e.revertBuyInput(ctx, buyer, token, bnbIn, err)
		return math.ZeroInt(), err
	}

	// 7. Pay out the tokens.
	if err := e.bank.Transfer(ctx, types.ModuleAccount, buyer, token, tokensOut); err != nil {
		e.revertBuyInput(ctx, buyer, token, bnbIn, err)
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("buy output transfer: %v", err)
	}

	// 8. Commit, then move the fee buckets out of custody. Past the commit
	// the trade stands; a failed bucket transfer is logged, never reverted.
	e.ledger.setPool(pool)
	e.ledger.setCreatorFees(vault)
	e.payFeeBuckets(ctx, token, buyer, fee, breakdown)

	ctx.EventManager().EmitEvent(types.NewEvent(
		types.EventTypeTrade,
		types.NewAttribute(types.AttributeKeyToken, token),
		types.NewAttribute(types.AttributeKeySide, "buy"),
		types.NewAttribute(types.AttributeKeyTrader, buyer),
		types.NewAttribute(types.AttributeKeyBnbIn, bnbIn.String()),
		types.NewAttribute(types.AttributeKeyTokensOut, tokensOut.String()),
		types.NewAttribute(types.AttributeKeyFee, fee.String()),
		types.NewAttribute(types.AttributeKeyFeeBps, fmt.Sprintf("%d", feeBps)),
		types.NewAttribute(types.AttributeKeyBnbReserve, pool.BnbReserve.String()),
		types.NewAttribute(types.AttributeKeyTokenReserve, pool.TokenReserve.String()),
		types.NewAttribute(types.AttributeKeyMarketCap, pool.MarketCap.String()),
	))

	e.metrics.TradesTotal.WithLabelValues("buy", pool.LaunchType.String(), "success").Inc()
	e.metrics.TradeVolumeBnb.WithLabelValues("buy", pool.LaunchType.String()).Add(wholeBnb(bnbIn))

	// 9. Graduation is checked only after a successful buy.
	if err := e.maybeGraduate(ctx, token); err != nil {
		return math.ZeroInt(), err
	}

	return tokensOut, nil
}

// revertBuyInput returns the collected input after a mid-flight failure.
// Custody still holds the funds at this point, so the transfer back only
// fails if the bank itself is broken; that is logged, not masked.
func (e *Engine) revertBuyInput(ctx types.Context, buyer, token string, bnbIn math.Int, cause error) {
	if revertErr := e.bank.Transfer(ctx, types.ModuleAccount, buyer, types.BnbDenom, bnbIn); revertErr != nil {
		e.logger.Error("failed to revert buy input",
			"token", token,
			"buyer", buyer,
			"amount", bnbIn.String(),
			"cause", cause,
			"revert_error", revertErr,
		)
	}
}
