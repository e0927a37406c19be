package engine

import (
	"fmt"
	"time"

	"cosmossdk.io/math"

	"github.com/moonforge-labs/launchpad/launch/types"
)

// Sell returns tokensIn to the curve for BNB. Once a pool has graduated and
// closed, sells are rerouted through the post-graduation secondary market:
// the curve reserves are frozen and pricing happens on the external AMM.
func (e *Engine) Sell(ctx types.Context, seller, token string, tokensIn, minBnbOut math.Int) (math.Int, error) {
	start := time.Now()
	defer func() {
		e.metrics.TradeLatency.Observe(time.Since(start).Seconds())
	}()

	bnbOut := math.ZeroInt()
	err := e.withPoolLock(token, func() error {
		pool, err := e.ledger.getPool(token)
		if err != nil {
			return err
		}
		var out math.Int
		if pool.Graduated && !pool.Active {
			out, err = e.executeSecondarySell(ctx, pool, seller, tokensIn, minBnbOut)
		} else {
			out, err = e.executeCurveSell(ctx, pool, seller, tokensIn, minBnbOut)
		}
		if err != nil {
			return err
		}
		bnbOut = out
		return nil
	})
	if err != nil {
		e.metrics.TradesTotal.WithLabelValues("sell", "-", "failed").Inc()
		return math.ZeroInt(), err
	}
	return bnbOut, nil
}

func (e *Engine) executeCurveSell(ctx types.Context, pool types.Pool, seller string, tokensIn, minBnbOut math.Int) (math.Int, error) {
	// 1. Validate inputs.
	if seller == "" {
		return math.ZeroInt(), types.ErrInvalidAddress.Wrap("seller address is required")
	}
	if tokensIn.IsNil() || !tokensIn.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrap("sell amount must be positive")
	}
	if minBnbOut.IsNil() {
		minBnbOut = math.ZeroInt()
	}
	if !pool.Active {
		return math.ZeroInt(), types.ErrPoolNotActive.Wrapf("pool %s is closed", pool.Token)
	}

	policy, err := e.policyFor(pool)
	if err != nil {
		return math.ZeroInt(), err
	}
	vault, err := e.ledger.getCreatorFees(pool.Token)
	if err != nil {
		return math.ZeroInt(), err
	}

	// 2. Quote against the REAL reserve: the virtual reserve shapes buy
	// pricing but never backs payouts.
	bnbOutBeforeFee := tokensIn.Mul(pool.BnbReserve).Quo(pool.TokenReserve.Add(tokensIn))
	if bnbOutBeforeFee.IsZero() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrap("sell amount too small for current price")
	}

	// 3. Fee off the payout.
	feeBps := e.feeRateBps(pool, policy, ctx.BlockHeight())
	fee := bnbOutBeforeFee.MulRaw(feeBps).QuoRaw(10000)
	bnbAfterFee := bnbOutBeforeFee.Sub(fee)

	// 4. Guards: slippage, and the pool can only pay out real BNB it holds.
	if bnbAfterFee.LT(minBnbOut) {
		return math.ZeroInt(), types.ErrSlippageExceeded.Wrapf(
			"expected at least %s bnb, quote yields %s", minBnbOut, bnbAfterFee)
	}
	if bnbOutBeforeFee.GT(pool.BnbReserve) {
		return math.ZeroInt(), types.ErrInsufficientLiquidity.Wrapf(
			"payout %s exceeds real reserve %s", bnbOutBeforeFee, pool.BnbReserve)
	}

	// 5. Collect the tokens.
	if err := e.bank.Transfer(ctx, seller, types.ModuleAccount, pool.Token, tokensIn); err != nil {
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("sell input transfer: %v", err)
	}

	// 6. Effects on local copies; the full pre-fee amount leaves the
	// reserve, the fee is distributed from it.
	pool.BnbReserve = pool.BnbReserve.Sub(bnbOutBeforeFee)
	pool.TokenReserve = pool.TokenReserve.Add(tokensIn)

	breakdown := e.distributeFee(&pool, &vault, policy, seller, fee)
	pool.RecomputeMarketCap()

	if err := CheckPoolInvariants(pool); err != nil {
		e.revertSellInput(ctx, seller, pool.Token, tokensIn, err)
		return math.ZeroInt(), err
	}

	// 7. Pay the seller.
	if err := e.bank.Transfer(ctx, types.ModuleAccount, seller, types.BnbDenom, bnbAfterFee); err != nil {
		e.revertSellInput(ctx, seller, pool.Token, tokensIn, err)
		return math.ZeroInt(), types.ErrTransferFailed.Wrapf("sell payout transfer: %v", err)
	}

	// 8. Commit, then move the fee buckets out of custody. Past the commit
	// the trade stands; a failed bucket transfer is logged, never reverted.
	e.ledger.setPool(pool)
	e.ledger.setCreatorFees(vault)
	e.payFeeBuckets(ctx, pool.Token, seller, fee, breakdown)

	ctx.EventManager().EmitEvent(types.NewEvent(
		types.EventTypeTrade,
		types.NewAttribute(types.AttributeKeyToken, pool.Token),
		types.NewAttribute(types.AttributeKeySide, "sell"),
		types.NewAttribute(types.AttributeKeyTrader, seller),
		types.NewAttribute(types.AttributeKeyTokensIn, tokensIn.String()),
		types.NewAttribute(types.AttributeKeyBnbOut, bnbAfterFee.String()),
		types.NewAttribute(types.AttributeKeyFee, fee.String()),
		types.NewAttribute(types.AttributeKeyFeeBps, fmt.Sprintf("%d", feeBps)),
		types.NewAttribute(types.AttributeKeyBnbReserve, pool.BnbReserve.String()),
		types.NewAttribute(types.AttributeKeyTokenReserve, pool.TokenReserve.String()),
		types.NewAttribute(types.AttributeKeyMarketCap, pool.MarketCap.String()),
	))

	e.metrics.TradesTotal.WithLabelValues("sell", pool.LaunchType.String(), "success").Inc()
	e.metrics.TradeVolumeBnb.WithLabelValues("sell", pool.LaunchType.String()).Add(wholeBnb(bnbAfterFee))

	return bnbAfterFee, nil
}

func (e *Engine) revertSellInput(ctx types.Context, seller, token string, tokensIn math.Int, cause error) {
	if revertErr := e.bank.Transfer(ctx, types.ModuleAccount, seller, token, tokensIn); revertErr != nil {
		e.logger.Error("failed to revert sell input",
			"token", token,
			"seller", seller,
			"amount", tokensIn.String(),
			"cause", cause,
			"revert_error", revertErr,
		)
	}
}
