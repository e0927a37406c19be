package engine_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/moonforge-labs/launchpad/launch/types"
	"github.com/moonforge-labs/launchpad/testutil"
)

func TestGraduation_InstantLaunchStaysActive(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)
	f.CreateInstantLaunchPool(t, ctx, testToken)

	// One oversized buy crosses the 80 BNB threshold: 160 in, 16 fee,
	// 144 lands in the real reserve.
	f.Bank.Mint(testutil.Buyer, types.BnbDenom, types.BnbAmount(160))
	_, err := f.Engine.Buy(ctx, testutil.Buyer, testToken, types.BnbAmount(160), math.ZeroInt())
	require.NoError(t, err)

	pool, err := f.Engine.GetPool(testToken)
	require.NoError(t, err)
	require.True(t, pool.Graduated)
	require.True(t, pool.Active, "instant launch keeps trading by default")

	// Exactly the threshold is earmarked; the overshoot stays in the pool.
	require.Equal(t, types.BnbAmount(80), pool.BnbForExternalSwap)
	require.Equal(t, types.BnbAmount(144), pool.BnbReserve)

	// The loyalty snapshot anchors future creator-fee claims.
	vault, err := f.Engine.GetCreatorFees(testToken)
	require.NoError(t, err)
	require.Equal(t, pool.MarketCap, vault.GraduationMarketCap)
	require.Equal(t, ctx.BlockTime(), vault.WeekStartTime)

	// Still active: further buys keep pricing on the curve.
	f.Fund(testutil.Buyer, 1)
	_, err = f.Engine.Buy(ctx, testutil.Buyer, testToken, types.BnbAmount(1), math.ZeroInt())
	require.NoError(t, err)
}

func TestGraduation_InstantLaunchFreezeFlag(t *testing.T) {
	params := types.DefaultParams()
	params.InstantLaunchStaysActive = false
	f := testutil.NewEngine(t, params)

	ctx := ctxAt(0)
	f.CreateInstantLaunchPool(t, ctx, testToken)
	f.GraduatePool(t, ctx, testToken)

	pool, err := f.Engine.GetPool(testToken)
	require.NoError(t, err)
	require.True(t, pool.Graduated)
	require.False(t, pool.Active)
}

func TestGraduation_ProjectRaiseFreezes(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)
	f.CreateProjectRaisePool(t, ctx, testToken, 50)
	f.GraduatePool(t, ctx, testToken)

	pool, err := f.Engine.GetPool(testToken)
	require.NoError(t, err)
	require.True(t, pool.Graduated)
	require.False(t, pool.Active)

	f.Fund(testutil.Buyer, 1)
	_, err = f.Engine.Buy(ctx, testutil.Buyer, testToken, types.BnbAmount(1), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrPoolGraduated)
}

func TestGraduation_SellsNeverTrigger(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)
	// Seed the pool just under the threshold; a sell cannot graduate it
	// even though the reserve check would pass mid-flight.
	f.CreateProjectRaisePool(t, ctx, testToken, 79)

	f.Fund(testutil.Buyer, 2)
	tokensOut, err := f.Engine.Buy(ctx, testutil.Buyer, testToken, types.BnbAmount(1), math.ZeroInt())
	require.NoError(t, err)

	// 1 BNB at 1000 bps nets 0.91 with the liquidity bucket: 79.91, still
	// under the threshold.
	pool, err := f.Engine.GetPool(testToken)
	require.NoError(t, err)
	require.False(t, pool.Graduated)

	_, err = f.Engine.Sell(ctx, testutil.Buyer, testToken, tokensOut, math.ZeroInt())
	require.NoError(t, err)

	pool, err = f.Engine.GetPool(testToken)
	require.NoError(t, err)
	require.False(t, pool.Graduated)
}

func TestGraduatePool_AuthorityOverride(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)
	f.CreateProjectRaisePool(t, ctx, testToken, 50)

	err := f.Engine.GraduatePool(ctx, testutil.Manager, testToken)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	require.NoError(t, f.Engine.GraduatePool(ctx, testutil.Authority, testToken))

	pool, err := f.Engine.GetPool(testToken)
	require.NoError(t, err)
	require.True(t, pool.Graduated)
	require.False(t, pool.Active)
	// Below the threshold, the whole reserve is earmarked.
	require.Equal(t, types.BnbAmount(50), pool.BnbForExternalSwap)

	err = f.Engine.GraduatePool(ctx, testutil.Authority, testToken)
	require.ErrorIs(t, err, types.ErrAlreadyGraduated)
}

func TestGraduatePool_ClosesActiveGraduatedInstantLaunch(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)
	f.CreateInstantLaunchPool(t, ctx, testToken)
	f.GraduatePool(t, ctx, testToken)

	pool, err := f.Engine.GetPool(testToken)
	require.NoError(t, err)
	require.True(t, pool.Active)

	require.NoError(t, f.Engine.GraduatePool(ctx, testutil.Authority, testToken))

	pool, err = f.Engine.GetPool(testToken)
	require.NoError(t, err)
	require.False(t, pool.Active)
}

func TestWithdrawGraduatedPool(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)
	f.CreateProjectRaisePool(t, ctx, testToken, 50)
	f.GraduatePool(t, ctx, testToken)

	pool, err := f.Engine.GetPool(testToken)
	require.NoError(t, err)
	earmarked := pool.BnbForExternalSwap
	reserved := pool.ReservedTokens
	remaining := pool.TokenReserve
	reserveBefore := pool.BnbReserve
	require.Equal(t, types.BnbAmount(80), earmarked)

	// Only the manager may withdraw.
	_, _, _, _, err = f.Engine.WithdrawGraduatedPool(ctx, testutil.Authority, testToken)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	gotBnb, gotTokens, gotRemaining, creator, err := f.Engine.WithdrawGraduatedPool(ctx, testutil.Manager, testToken)
	require.NoError(t, err)
	require.Equal(t, earmarked, gotBnb)
	require.Equal(t, reserved, gotTokens)
	require.Equal(t, remaining, gotRemaining)
	require.Equal(t, testutil.Creator, creator)

	require.Equal(t, earmarked, f.Bank.Balance(ctx, testutil.Manager, types.BnbDenom))
	require.Equal(t, reserved, f.Bank.Balance(ctx, testutil.Manager, testToken))
	require.Equal(t, remaining, f.Bank.Balance(ctx, testutil.Creator, testToken))

	pool, err = f.Engine.GetPool(testToken)
	require.NoError(t, err)
	require.True(t, pool.ReservedTokens.IsZero())
	require.True(t, pool.TokenReserve.IsZero())
	require.True(t, pool.BnbForExternalSwap.IsZero())
	require.Equal(t, reserveBefore.Sub(earmarked), pool.BnbReserve)

	// One-shot.
	_, _, _, _, err = f.Engine.WithdrawGraduatedPool(ctx, testutil.Manager, testToken)
	require.ErrorIs(t, err, types.ErrAlreadyWithdrawn)
}

func TestWithdrawGraduatedPool_RequiresClosedGraduatedPool(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)
	f.CreateInstantLaunchPool(t, ctx, testToken)

	_, _, _, _, err := f.Engine.WithdrawGraduatedPool(ctx, testutil.Manager, testToken)
	require.ErrorIs(t, err, types.ErrPoolNotGraduated)

	// Graduated but still active: must be closed first.
	f.GraduatePool(t, ctx, testToken)
	_, _, _, _, err = f.Engine.WithdrawGraduatedPool(ctx, testutil.Manager, testToken)
	require.ErrorIs(t, err, types.ErrPoolNotActive)

	require.NoError(t, f.Engine.GraduatePool(ctx, testutil.Authority, testToken))
	_, _, _, _, err = f.Engine.WithdrawGraduatedPool(ctx, testutil.Manager, testToken)
	require.NoError(t, err)
}

func TestSetLpToken(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)
	f.CreateInstantLaunchPool(t, ctx, testToken)

	err := f.Engine.SetLpToken(ctx, testutil.Manager, testToken, "0xlp")
	require.ErrorIs(t, err, types.ErrPoolNotGraduated)

	f.GraduatePool(t, ctx, testToken)

	err = f.Engine.SetLpToken(ctx, testutil.Buyer, testToken, "0xlp")
	require.ErrorIs(t, err, types.ErrUnauthorized)

	require.NoError(t, f.Engine.SetLpToken(ctx, testutil.Manager, testToken, "0xlp"))

	pool, err := f.Engine.GetPool(testToken)
	require.NoError(t, err)
	require.Equal(t, "0xlp", pool.LpToken)
}
