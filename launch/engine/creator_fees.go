package engine

import (
	"cosmossdk.io/math"

	"github.com/moonforge-labs/launchpad/launch/types"
)

// ClaimCreatorFees pays out a pool's accrued creator fees. Project-raise
// creators claim unconditionally once the cooldown has elapsed. Instant-launch
// creators must hold the market cap at or above its graduation snapshot; if it
// has stayed below for a full redistribution period, the vault is forfeited to
// the InfoFi treasury instead.
func (e *Engine) ClaimCreatorFees(ctx types.Context, caller, token string) (math.Int, error) {
	claimed := math.ZeroInt()

	err := e.withPoolLock(token, func() error {
		pool, err := e.ledger.getPool(token)
		if err != nil {
			return err
		}
		if caller != pool.Creator {
			return types.ErrUnauthorized.Wrapf("only the creator %s may claim, got %s", pool.Creator, caller)
		}
		vault, err := e.ledger.getCreatorFees(token)
		if err != nil {
			return err
		}
		if !vault.AccumulatedFees.IsPositive() {
			return types.ErrNothingToClaim.Wrapf("no accrued fees for pool %s", token)
		}

		now := ctx.BlockTime()
		if now.Before(vault.LastClaimTime.Add(e.params.ClaimCooldown)) {
			return types.ErrCooldownActive.Wrapf(
				"next claim for pool %s available at %s", token, vault.LastClaimTime.Add(e.params.ClaimCooldown))
		}

		amount := vault.AccumulatedFees

		if pool.LaunchType == types.LaunchTypeInstantLaunch && pool.Graduated &&
			pool.MarketCap.LT(vault.GraduationMarketCap) {
			// Below the snapshot: either forfeit after a full window, or
			// refuse until the cap recovers.
			if now.Sub(vault.WeekStartTime) >= e.params.RedistributionPeriod {
				if err := e.bank.Transfer(ctx, types.ModuleAccount, e.addresses.InfoFiTreasury, types.BnbDenom, amount); err != nil {
					return types.ErrTransferFailed.Wrapf("redistribution transfer: %v", err)
				}
				vault.AccumulatedFees = math.ZeroInt()
				vault.LastClaimTime = now
				vault.WeekStartTime = now
				e.ledger.setCreatorFees(vault)

				ctx.EventManager().EmitEvent(types.NewEvent(
					types.EventTypeCreatorFeesRedirected,
					types.NewAttribute(types.AttributeKeyToken, token),
					types.NewAttribute(types.AttributeKeyCreator, pool.Creator),
					types.NewAttribute(types.AttributeKeyAmount, amount.String()),
					types.NewAttribute(types.AttributeKeyRecipient, e.addresses.InfoFiTreasury),
				))
				e.logger.Info("creator fees redistributed",
					"token", token,
					"creator", pool.Creator,
					"amount", amount.String(),
				)
				// The claim succeeds with zero proceeds; the event
				// records where the vault went.
				e.metrics.CreatorFeeClaims.WithLabelValues("redistributed").Inc()
				return nil
			}
			return types.ErrClaimConditionsNotMet.Wrapf(
				"market cap %s below graduation snapshot %s", pool.MarketCap, vault.GraduationMarketCap)
		}

		if err := e.bank.Transfer(ctx, types.ModuleAccount, pool.Creator, types.BnbDenom, amount); err != nil {
			return types.ErrTransferFailed.Wrapf("creator payout: %v", err)
		}
		vault.AccumulatedFees = math.ZeroInt()
		vault.LastClaimTime = now
		if pool.LaunchType == types.LaunchTypeInstantLaunch {
			vault.WeekStartTime = now
		}
		e.ledger.setCreatorFees(vault)
		claimed = amount

		ctx.EventManager().EmitEvent(types.NewEvent(
			types.EventTypeCreatorFeesClaimed,
			types.NewAttribute(types.AttributeKeyToken, token),
			types.NewAttribute(types.AttributeKeyCreator, pool.Creator),
			types.NewAttribute(types.AttributeKeyAmount, amount.String()),
		))
		e.metrics.CreatorFeeClaims.WithLabelValues("paid").Inc()
		e.logger.Info("creator fees claimed",
			"token", token,
			"creator", pool.Creator,
			"amount", amount.String(),
		)
		return nil
	})
	if err != nil {
		return math.ZeroInt(), err
	}
	return claimed, nil
}
