package engine

import (
	"cosmossdk.io/math"

	"github.com/moonforge-labs/launchpad/launch/types"
)

// QuoteBuy prices a buy without executing it. Mirrors executeBuy exactly:
// fee off the input, constant product against the augmented reserve.
func (e *Engine) QuoteBuy(ctx types.Context, token string, bnbIn math.Int) (types.BuyQuote, error) {
	if !bnbIn.IsPositive() {
		return types.BuyQuote{}, types.ErrInvalidInput.Wrapf("bnb amount must be positive, got %s", bnbIn)
	}
	pool, err := e.ledger.getPool(token)
	if err != nil {
		return types.BuyQuote{}, err
	}
	if !pool.Active {
		if pool.Graduated {
			return types.BuyQuote{}, types.ErrPoolGraduated.Wrapf("pool %s has graduated; buys are closed", token)
		}
		return types.BuyQuote{}, types.ErrPoolNotActive.Wrapf("pool %s is not active", token)
	}
	policy, err := e.policyFor(pool)
	if err != nil {
		return types.BuyQuote{}, err
	}

	feeBps := e.feeRateBps(pool, policy, ctx.BlockHeight())
	fee := bnbIn.MulRaw(feeBps).QuoRaw(10000)
	bnbAfterFee := bnbIn.Sub(fee)

	augmented := pool.AugmentedBnbReserve()
	tokensOut := bnbAfterFee.Mul(pool.TokenReserve).Quo(augmented.Add(bnbAfterFee))
	if tokensOut.GTE(pool.TokenReserve) {
		return types.BuyQuote{}, types.ErrInsufficientLiquidity.Wrapf(
			"buy of %s would drain pool %s", bnbIn, token)
	}

	price := math.LegacyZeroDec()
	if tokensOut.IsPositive() {
		price = math.LegacyNewDecFromInt(bnbIn).Quo(math.LegacyNewDecFromInt(tokensOut))
	}
	return types.BuyQuote{
		TokensOut:     tokensOut,
		FeeBnb:        fee,
		FeeBps:        feeBps,
		PricePerToken: price,
	}, nil
}

// QuoteSell prices a sell without executing it. Graduated pools are estimated
// against the external AMM's quote, discounted to the seller's share.
func (e *Engine) QuoteSell(ctx types.Context, token string, tokensIn math.Int) (types.SellQuote, error) {
	if !tokensIn.IsPositive() {
		return types.SellQuote{}, types.ErrInvalidInput.Wrapf("token amount must be positive, got %s", tokensIn)
	}
	pool, err := e.ledger.getPool(token)
	if err != nil {
		return types.SellQuote{}, err
	}

	if pool.Graduated && !pool.Active {
		return e.quoteSecondarySell(ctx, pool, tokensIn)
	}
	if !pool.Active {
		return types.SellQuote{}, types.ErrPoolNotActive.Wrapf("pool %s is not active", token)
	}
	policy, err := e.policyFor(pool)
	if err != nil {
		return types.SellQuote{}, err
	}

	feeBps := e.feeRateBps(pool, policy, ctx.BlockHeight())
	bnbOutBeforeFee := tokensIn.Mul(pool.BnbReserve).Quo(pool.TokenReserve.Add(tokensIn))
	if bnbOutBeforeFee.GT(pool.BnbReserve) {
		return types.SellQuote{}, types.ErrInsufficientLiquidity.Wrapf(
			"sell of %s exceeds pool %s reserve", tokensIn, token)
	}
	fee := bnbOutBeforeFee.MulRaw(feeBps).QuoRaw(10000)
	bnbAfterFee := bnbOutBeforeFee.Sub(fee)

	price := math.LegacyNewDecFromInt(bnbAfterFee).Quo(math.LegacyNewDecFromInt(tokensIn))
	return types.SellQuote{
		BnbOut:        bnbAfterFee,
		FeeBps:        feeBps,
		PricePerToken: price,
	}, nil
}

func (e *Engine) quoteSecondarySell(ctx types.Context, pool types.Pool, tokensIn math.Int) (types.SellQuote, error) {
	if e.amm == nil {
		return types.SellQuote{}, types.ErrAmmFailure.Wrap("no external amm configured")
	}
	fee := tokensIn.MulRaw(e.params.PostGraduationFeeBps).QuoRaw(10000)
	swapHalf := tokensIn.Sub(fee).QuoRaw(2)
	if !swapHalf.IsPositive() {
		return types.SellQuote{}, types.ErrInvalidInput.Wrapf("token amount %s too small to quote", tokensIn)
	}
	quote, err := e.amm.GetAmountOut(ctx, pool.Token, swapHalf)
	if err != nil {
		return types.SellQuote{}, types.ErrAmmFailure.Wrapf("quote: %v", err)
	}
	proceeds := quote.MulRaw(e.params.SellerProceedsPct).QuoRaw(100)

	price := math.LegacyNewDecFromInt(proceeds).Quo(math.LegacyNewDecFromInt(tokensIn))
	return types.SellQuote{
		BnbOut:        proceeds,
		FeeBps:        e.params.PostGraduationFeeBps,
		PricePerToken: price,
	}, nil
}

// PoolInfo aggregates the pool view. USD market cap comes from the oracle and
// degrades to zero when no oracle is configured or the feed fails.
func (e *Engine) PoolInfo(ctx types.Context, token string) (types.PoolInfo, error) {
	pool, err := e.ledger.getPool(token)
	if err != nil {
		return types.PoolInfo{}, err
	}

	marketCapUsd := math.LegacyZeroDec()
	if e.oracle != nil {
		if usd, err := e.oracle.BnbToUsd(ctx, pool.MarketCap); err == nil {
			marketCapUsd = usd
		} else {
			e.logger.Error("oracle conversion failed", "token", token, "err", err)
		}
	}

	price := pool.SpotPrice()
	multiplier := math.LegacyZeroDec()
	if pool.InitialPrice.IsPositive() {
		multiplier = price.Quo(pool.InitialPrice)
	}

	progress := math.LegacyNewDec(100)
	if !pool.Graduated && pool.GraduationBnbThreshold.IsPositive() {
		progress = math.LegacyNewDecFromInt(pool.BnbReserve).
			Quo(math.LegacyNewDecFromInt(pool.GraduationBnbThreshold)).
			MulInt64(100)
		if progress.GT(math.LegacyNewDec(100)) {
			progress = math.LegacyNewDec(100)
		}
	}

	return types.PoolInfo{
		Token:                 pool.Token,
		LaunchType:            pool.LaunchType,
		Creator:               pool.Creator,
		MarketCapBnb:          pool.MarketCap,
		MarketCapUsd:          marketCapUsd,
		BnbReserve:            pool.BnbReserve,
		TokenReserve:          pool.TokenReserve,
		ReservedTokens:        pool.ReservedTokens,
		VirtualBnbReserve:     pool.VirtualBnbReserve,
		CurrentPrice:          price,
		PriceMultiplier:       multiplier,
		GraduationProgressPct: progress,
		Graduated:             pool.Graduated,
		Active:                pool.Active,
		LpToken:               pool.LpToken,
	}, nil
}

// CreatorFeeInfo reports the creator vault, including whether a claim issued
// right now would pay out.
func (e *Engine) CreatorFeeInfo(ctx types.Context, token string) (types.CreatorFeeInfo, error) {
	pool, err := e.ledger.getPool(token)
	if err != nil {
		return types.CreatorFeeInfo{}, err
	}
	vault, err := e.ledger.getCreatorFees(token)
	if err != nil {
		return types.CreatorFeeInfo{}, err
	}

	canClaim := vault.AccumulatedFees.IsPositive() &&
		!ctx.BlockTime().Before(vault.LastClaimTime.Add(e.params.ClaimCooldown))
	if canClaim && pool.LaunchType == types.LaunchTypeInstantLaunch && pool.Graduated {
		canClaim = pool.MarketCap.GTE(vault.GraduationMarketCap)
	}

	return types.CreatorFeeInfo{
		Token:               token,
		Accumulated:         vault.AccumulatedFees,
		LastClaim:           vault.LastClaimTime.Unix(),
		GraduationMarketCap: vault.GraduationMarketCap,
		CurrentMarketCap:    pool.MarketCap,
		BnbInPool:           pool.BnbReserve,
		CanClaim:            canClaim,
	}, nil
}

// FeeInfo reports a pool's position on the anti-bot decay curve.
func (e *Engine) FeeInfo(ctx types.Context, token string) (types.FeeInfo, error) {
	pool, err := e.ledger.getPool(token)
	if err != nil {
		return types.FeeInfo{}, err
	}
	policy, err := e.policyFor(pool)
	if err != nil {
		return types.FeeInfo{}, err
	}

	height := ctx.BlockHeight()
	stage, untilNext := e.feeStage(pool, height)
	return types.FeeInfo{
		Token:               token,
		CurrentRateBps:      e.feeRateBps(pool, policy, height),
		FinalRateBps:        policy.FinalTierBps(),
		BlocksSinceLaunch:   height - pool.LaunchBlock,
		BlocksUntilNextTier: untilNext,
		Stage:               stage,
	}, nil
}
