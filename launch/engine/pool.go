package engine

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/moonforge-labs/launchpad/launch/types"
)

// CreatePool opens a bonding-curve pool for token. tradableTokens seed the
// curve, reservedTokens are carved out for the external AMM at graduation,
// and bnbSent seeds the real reserve (mandatory for project raises). The
// caller funds both legs; for project raises that is the fundraising manager.
func (e *Engine) CreatePool(
	ctx types.Context,
	caller, token string,
	tradableTokens, reservedTokens math.Int,
	launchType types.LaunchType,
	creator string,
	burnLP bool,
	bnbSent math.Int,
) (types.Pool, error) {
	var pool types.Pool
	err := e.withPoolLock(token, func() error {
		created, err := e.createPool(ctx, caller, token, tradableTokens, reservedTokens, launchType, creator, burnLP, bnbSent)
		if err != nil {
			return err
		}
		pool = created
		return nil
	})
	return pool, err
}

// CreateInstantLaunchPool opens an instant-launch pool. The entire supply
// enters the platform at once: the reserved AMM share is carved from it and
// the remainder becomes the tradable curve. No real BNB seed is required.
func (e *Engine) CreateInstantLaunchPool(
	ctx types.Context,
	caller, token string,
	tokenAmount math.Int,
	creator string,
	burnLP bool,
	bnbSent math.Int,
) (types.Pool, error) {
	if tokenAmount.IsNil() || !tokenAmount.Equal(e.params.TotalTokenSupply) {
		return types.Pool{}, types.ErrSupplyMismatch.Wrapf(
			"instant launch must deposit the full supply %s, got %s",
			e.params.TotalTokenSupply, tokenAmount)
	}
	reserved := e.params.TotalTokenSupply.MulRaw(e.params.InstantLaunchReservedPct).QuoRaw(100)
	tradable := tokenAmount.Sub(reserved)

	var pool types.Pool
	err := e.withPoolLock(token, func() error {
		created, err := e.createPool(ctx, caller, token, tradable, reserved, types.LaunchTypeInstantLaunch, creator, burnLP, bnbSent)
		if err != nil {
			return err
		}
		pool = created
		return nil
	})
	return pool, err
}

func (e *Engine) createPool(
	ctx types.Context,
	caller, token string,
	tradableTokens, reservedTokens math.Int,
	launchType types.LaunchType,
	creator string,
	burnLP bool,
	bnbSent math.Int,
) (types.Pool, error) {
	// 1. Input validation.
	if token == "" {
		return types.Pool{}, types.ErrInvalidInput.Wrap("token id cannot be empty")
	}
	if caller == "" || creator == "" {
		return types.Pool{}, types.ErrInvalidAddress.Wrap("caller and creator addresses are required")
	}
	if tradableTokens.IsNil() || !tradableTokens.IsPositive() {
		return types.Pool{}, types.ErrInvalidInput.Wrap("tradable token amount must be positive")
	}
	if reservedTokens.IsNil() || !reservedTokens.IsPositive() {
		return types.Pool{}, types.ErrInvalidInput.Wrap("reserved token amount must be positive")
	}
	if bnbSent.IsNil() || bnbSent.IsNegative() {
		return types.Pool{}, types.ErrInvalidInput.Wrap("bnb seed cannot be negative")
	}

	// 2. Duplicate-creation guard. Pools are created exactly once per
	// token, including after graduation.
	if e.ledger.hasPool(token) {
		return types.Pool{}, types.ErrPoolAlreadyExists.Wrapf("pool for token %s already exists", token)
	}

	// 3. Resolve the launch policy.
	policy, err := types.PolicyFor(launchType, e.params)
	if err != nil {
		return types.Pool{}, err
	}

	// 4. Launch-type funding rules.
	if policy.RequiresSeedBnb() && !bnbSent.IsPositive() {
		return types.Pool{}, types.ErrInvalidInput.Wrap("project raise pools must be seeded with real BNB")
	}
	virtualReserve := policy.VirtualReserve()
	if launchType == types.LaunchTypeInstantLaunch && !virtualReserve.IsPositive() {
		return types.Pool{}, types.ErrInvalidParams.Wrap("instant launch virtual reserve computes to zero")
	}

	// 5. Supply split checks against the policy's AMM carve-out.
	expectedReserved := e.params.TotalTokenSupply.MulRaw(policy.ReservedSupplyPct()).QuoRaw(100)
	if !reservedTokens.Equal(expectedReserved) {
		return types.Pool{}, types.ErrSupplyMismatch.Wrapf(
			"reserved tokens %s do not match %d%% of supply (%s)",
			reservedTokens, policy.ReservedSupplyPct(), expectedReserved)
	}
	if tradableTokens.Add(reservedTokens).GT(e.params.TotalTokenSupply) {
		return types.Pool{}, types.ErrSupplyMismatch.Wrapf(
			"tradable %s + reserved %s exceeds total supply %s",
			tradableTokens, reservedTokens, e.params.TotalTokenSupply)
	}

	// 6. Build the pool record.
	pool := types.Pool{
		Token:                  token,
		Creator:                creator,
		LaunchType:             launchType,
		BnbReserve:             bnbSent,
		TokenReserve:           tradableTokens,
		ReservedTokens:         reservedTokens,
		TotalTokenSupply:       e.params.TotalTokenSupply,
		VirtualBnbReserve:      virtualReserve,
		MarketCap:              math.ZeroInt(),
		GraduationBnbThreshold: e.params.GraduationBnbThreshold,
		BnbForExternalSwap:     math.ZeroInt(),
		LaunchBlock:            ctx.BlockHeight(),
		Graduated:              false,
		Active:                 true,
		BurnLP:                 burnLP,
	}
	pool.RecomputeMarketCap()
	pool.InitialPrice = pool.SpotPrice()
	if err := pool.Validate(); err != nil {
		return types.Pool{}, err
	}

	// 7. Pull custody: the full token allocation and the BNB seed move in
	// one operation; any failure aborts with no ledger entry written.
	if err := e.bank.Transfer(ctx, caller, types.ModuleAccount, token, tradableTokens.Add(reservedTokens)); err != nil {
		return types.Pool{}, types.ErrTransferFailed.Wrapf("token custody transfer: %v", err)
	}
	if bnbSent.IsPositive() {
		if err := e.bank.Transfer(ctx, caller, types.ModuleAccount, types.BnbDenom, bnbSent); err != nil {
			// Give the tokens back; creation never half-applies.
			if revertErr := e.bank.Transfer(ctx, types.ModuleAccount, caller, token, tradableTokens.Add(reservedTokens)); revertErr != nil {
				e.logger.Error("failed to revert token custody after seed transfer failure",
					"token", token, "error", revertErr)
			}
			return types.Pool{}, types.ErrTransferFailed.Wrapf("bnb seed transfer: %v", err)
		}
	}

	// 8. Commit the ledger entry after custody is in place.
	fees := types.NewCreatorFees(token, ctx.BlockTime())
	stats := types.NewPostGraduationStats(token)
	if err := e.ledger.createPool(pool, fees, stats); err != nil {
		return types.Pool{}, err
	}

	ctx.EventManager().EmitEvent(types.NewEvent(
		types.EventTypePoolCreated,
		types.NewAttribute(types.AttributeKeyToken, token),
		types.NewAttribute(types.AttributeKeyCreator, creator),
		types.NewAttribute(types.AttributeKeyLaunchType, launchType.String()),
		types.NewAttribute(types.AttributeKeyLaunchBlock, fmt.Sprintf("%d", pool.LaunchBlock)),
		types.NewAttribute(types.AttributeKeyBnbReserve, pool.BnbReserve.String()),
		types.NewAttribute(types.AttributeKeyTokenReserve, pool.TokenReserve.String()),
		types.NewAttribute(types.AttributeKeyReservedTokens, pool.ReservedTokens.String()),
		types.NewAttribute(types.AttributeKeyVirtualReserve, pool.VirtualBnbReserve.String()),
		types.NewAttribute(types.AttributeKeyThreshold, pool.GraduationBnbThreshold.String()),
		types.NewAttribute(types.AttributeKeyMarketCap, pool.MarketCap.String()),
	))

	e.metrics.PoolsCreated.Inc()
	e.metrics.ActivePools.Set(float64(len(e.ledger.activeTokens())))
	e.logger.Info("pool created",
		"token", token,
		"launch_type", launchType.String(),
		"creator", creator,
		"bnb_seed", bnbSent.String(),
		"virtual_reserve", virtualReserve.String(),
	)

	return pool, nil
}
