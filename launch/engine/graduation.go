package engine

import (
	"cosmossdk.io/math"

	"github.com/moonforge-labs/launchpad/launch/types"
)

// maybeGraduate transitions a pool once its real BNB reserve reaches the
// graduation threshold. Called with the pool lock held, only after a
// successful buy; the virtual reserve never counts toward the threshold.
func (e *Engine) maybeGraduate(ctx types.Context, token string) error {
	pool, err := e.ledger.getPool(token)
	if err != nil {
		return err
	}
	if pool.Graduated || pool.BnbReserve.LT(pool.GraduationBnbThreshold) {
		return nil
	}

	policy, err := e.policyFor(pool)
	if err != nil {
		return err
	}

	// Earmark exactly the threshold for the external pool; any overshoot
	// from the crossing buy stays in the real reserve.
	e.graduate(ctx, &pool, pool.GraduationBnbThreshold, policy.RemainsActiveOnGraduation())
	return nil
}

// GraduatePool is the operator override: it graduates a pool regardless of
// threshold and force-closes it, so the withdrawal path is always reachable.
// For an instant-launch pool that graduated but stayed active, this is the
// switch that retires the curve.
func (e *Engine) GraduatePool(ctx types.Context, caller, token string) error {
	if caller != e.addresses.Authority {
		return types.ErrUnauthorized.Wrapf("graduate override requires authority, got %s", caller)
	}
	return e.withPoolLock(token, func() error {
		pool, err := e.ledger.getPool(token)
		if err != nil {
			return err
		}
		if pool.Graduated && !pool.Active {
			return types.ErrAlreadyGraduated.Wrapf("pool %s is already graduated and closed", token)
		}
		if pool.Graduated {
			// Graduated but still trading: just close it.
			pool.Active = false
			e.ledger.setPool(pool)
			e.metrics.ActivePools.Set(float64(len(e.ledger.activeTokens())))
			return nil
		}

		earmark := pool.GraduationBnbThreshold
		if pool.BnbReserve.LT(earmark) {
			earmark = pool.BnbReserve
		}
		e.graduate(ctx, &pool, earmark, false)
		return nil
	})
}

// graduate applies the transition to the local pool copy and commits it.
func (e *Engine) graduate(ctx types.Context, pool *types.Pool, earmark math.Int, remainsActive bool) {
	pool.Graduated = true
	pool.BnbForExternalSwap = earmark
	if !remainsActive {
		pool.Active = false
	}

	vault, err := e.ledger.getCreatorFees(pool.Token)
	if err == nil {
		vault.GraduationMarketCap = pool.MarketCap
		vault.WeekStartTime = ctx.BlockTime()
		e.ledger.setCreatorFees(vault)
	}
	e.ledger.setPool(*pool)

	ctx.EventManager().EmitEvent(types.NewEvent(
		types.EventTypeGraduated,
		types.NewAttribute(types.AttributeKeyToken, pool.Token),
		types.NewAttribute(types.AttributeKeyLaunchType, pool.LaunchType.String()),
		types.NewAttribute(types.AttributeKeyBnbReserve, pool.BnbReserve.String()),
		types.NewAttribute(types.AttributeKeyTokenReserve, pool.TokenReserve.String()),
		types.NewAttribute(types.AttributeKeyEarmarkedBnb, earmark.String()),
		types.NewAttribute(types.AttributeKeyMarketCap, pool.MarketCap.String()),
		types.NewAttribute(types.AttributeKeyPrice, pool.SpotPrice().String()),
	))

	e.metrics.GraduationsTotal.Inc()
	e.metrics.ActivePools.Set(float64(len(e.ledger.activeTokens())))
	e.logger.Info("pool graduated",
		"token", pool.Token,
		"launch_type", pool.LaunchType.String(),
		"earmarked_bnb", earmark.String(),
		"market_cap", pool.MarketCap.String(),
		"remains_active", pool.Active,
	)
}

// WithdrawGraduatedPool releases the earmarked BNB and the reserved AMM
// tokens to the manager, and returns unsold curve tokens to the creator.
// One-shot: the zeroed reserved balance blocks any second call.
func (e *Engine) WithdrawGraduatedPool(ctx types.Context, caller, token string) (bnbAmount, tokenAmount, remainingTokens math.Int, creator string, err error) {
	bnbAmount, tokenAmount, remainingTokens = math.ZeroInt(), math.ZeroInt(), math.ZeroInt()

	err = e.withPoolLock(token, func() error {
		if caller != e.addresses.Manager {
			return types.ErrUnauthorized.Wrapf("withdrawal requires the manager, got %s", caller)
		}
		pool, err := e.ledger.getPool(token)
		if err != nil {
			return err
		}
		if !pool.Graduated {
			return types.ErrPoolNotGraduated.Wrapf("pool %s has not graduated", token)
		}
		if pool.Active {
			return types.ErrPoolNotActive.Wrapf("pool %s is still trading; close it before withdrawing", token)
		}
		if pool.ReservedTokens.IsZero() {
			return types.ErrAlreadyWithdrawn.Wrapf("pool %s reserves already withdrawn", token)
		}

		bnbAmount = pool.BnbForExternalSwap
		tokenAmount = pool.ReservedTokens
		remainingTokens = pool.TokenReserve
		creator = pool.Creator

		// Effects before interactions.
		pool.BnbReserve = pool.BnbReserve.Sub(bnbAmount)
		pool.BnbForExternalSwap = math.ZeroInt()
		pool.ReservedTokens = math.ZeroInt()
		pool.TokenReserve = math.ZeroInt()
		e.ledger.setPool(pool)

		if bnbAmount.IsPositive() {
			if err := e.bank.Transfer(ctx, types.ModuleAccount, caller, types.BnbDenom, bnbAmount); err != nil {
				return types.ErrTransferFailed.Wrapf("earmarked bnb transfer: %v", err)
			}
		}
		if err := e.bank.Transfer(ctx, types.ModuleAccount, caller, token, tokenAmount); err != nil {
			return types.ErrTransferFailed.Wrapf("reserved token transfer: %v", err)
		}
		if remainingTokens.IsPositive() {
			// Tokens nobody bought go back to the creator, not the manager.
			if err := e.bank.Transfer(ctx, types.ModuleAccount, creator, token, remainingTokens); err != nil {
				return types.ErrTransferFailed.Wrapf("remaining token transfer: %v", err)
			}
		}

		ctx.EventManager().EmitEvent(types.NewEvent(
			types.EventTypePoolWithdrawn,
			types.NewAttribute(types.AttributeKeyToken, token),
			types.NewAttribute(types.AttributeKeyEarmarkedBnb, bnbAmount.String()),
			types.NewAttribute(types.AttributeKeyReservedTokens, tokenAmount.String()),
			types.NewAttribute(types.AttributeKeyRemainingTokens, remainingTokens.String()),
			types.NewAttribute(types.AttributeKeyCreator, creator),
			types.NewAttribute(types.AttributeKeyRecipient, caller),
		))
		e.metrics.WithdrawalsTotal.Inc()
		e.logger.Info("graduated pool withdrawn",
			"token", token,
			"bnb", bnbAmount.String(),
			"reserved_tokens", tokenAmount.String(),
			"remaining_tokens", remainingTokens.String(),
		)
		return nil
	})
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), math.ZeroInt(), "", err
	}
	return bnbAmount, tokenAmount, remainingTokens, creator, nil
}

// SetLpToken records the external pair's LP token once the manager has
// provisioned liquidity. Manager or authority only, graduated pools only.
func (e *Engine) SetLpToken(ctx types.Context, caller, token, lpToken string) error {
	if caller != e.addresses.Manager && caller != e.addresses.Authority {
		return types.ErrUnauthorized.Wrapf("set lp token requires manager or authority, got %s", caller)
	}
	if lpToken == "" {
		return types.ErrInvalidInput.Wrap("lp token address cannot be empty")
	}
	return e.withPoolLock(token, func() error {
		pool, err := e.ledger.getPool(token)
		if err != nil {
			return err
		}
		if !pool.Graduated {
			return types.ErrPoolNotGraduated.Wrapf("pool %s has not graduated", token)
		}
		pool.LpToken = lpToken
		e.ledger.setPool(pool)

		ctx.EventManager().EmitEvent(types.NewEvent(
			types.EventTypeLpTokenSet,
			types.NewAttribute(types.AttributeKeyToken, token),
			types.NewAttribute(types.AttributeKeyLpToken, lpToken),
		))
		return nil
	})
}
