package engine

import (
	"github.com/moonforge-labs/launchpad/launch/types"
)

// CheckPoolInvariants validates pool state after a mutation and before any
// payout leaves module custody. A violation aborts the trade.
func CheckPoolInvariants(pool types.Pool) error {
	if pool.BnbReserve.IsNegative() {
		return types.ErrInvariantViolation.Wrapf(
			"pool %s has negative bnb reserve %s", pool.Token, pool.BnbReserve)
	}
	if pool.TokenReserve.IsNegative() {
		return types.ErrInvariantViolation.Wrapf(
			"pool %s has negative token reserve %s", pool.Token, pool.TokenReserve)
	}
	if pool.ReservedTokens.IsNegative() {
		return types.ErrInvariantViolation.Wrapf(
			"pool %s has negative reserved tokens %s", pool.Token, pool.ReservedTokens)
	}
	if pool.VirtualBnbReserve.IsNegative() {
		return types.ErrInvariantViolation.Wrapf(
			"pool %s has negative virtual reserve %s", pool.Token, pool.VirtualBnbReserve)
	}
	if pool.TokenReserve.Add(pool.ReservedTokens).GT(pool.TotalTokenSupply) {
		return types.ErrInvariantViolation.Wrapf(
			"pool %s holds %s tradable + %s reserved, exceeding supply %s",
			pool.Token, pool.TokenReserve, pool.ReservedTokens, pool.TotalTokenSupply)
	}
	if pool.MarketCap.IsNegative() {
		return types.ErrInvariantViolation.Wrapf(
			"pool %s has negative market cap %s", pool.Token, pool.MarketCap)
	}
	return nil
}
