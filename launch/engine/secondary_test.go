package engine_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/moonforge-labs/launchpad/launch/types"
	"github.com/moonforge-labs/launchpad/testutil"
)

// graduatedFixture returns a fixture with an instant-launch pool graduated
// and closed, so sells take the secondary path. The fake venue pays 1 BNB per
// 1000 tokens.
func graduatedFixture(t *testing.T) *testutil.Fixture {
	t.Helper()
	f := newFixture(t)
	ctx := ctxAt(0)
	f.CreateInstantLaunchPool(t, ctx, testToken)
	f.GraduatePool(t, ctx, testToken)
	require.NoError(t, f.Engine.GraduatePool(ctx, testutil.Authority, testToken))
	return f
}

func TestSecondarySell_ExactArithmetic(t *testing.T) {
	f := graduatedFixture(t)
	ctx := ctxAt(200)

	f.FundTokens(testutil.Seller, testToken, 1_000_000)
	bnbOut, err := f.Engine.Sell(ctx, testutil.Seller, testToken, types.TokenAmount(1_000_000), math.ZeroInt())
	require.NoError(t, err)

	// 2% token fee, the remainder halved: 490k swapped at 1/1000 yields
	// 490 BNB, the seller keeps 70% of it.
	require.Equal(t, "343000000000000000000", bnbOut.String())
	require.Equal(t, bnbOut, f.Bank.Balance(ctx, testutil.Seller, types.BnbDenom))
	require.True(t, f.Bank.Balance(ctx, testutil.Seller, testToken).IsZero())

	// The token fee lands at the platform treasury.
	require.Equal(t, "20000000000000000000000", f.Bank.Balance(ctx, testutil.PlatformTreasury, testToken).String())

	// The retained 30% plus the other token half became liquidity; the LP
	// units were burned (fixture pools set BurnLP).
	lpDenom := types.LpDenom(testToken)
	require.Equal(t, "294000000000000000000", f.Bank.Balance(ctx, types.BurnAccount, lpDenom).String())
	require.Empty(t, f.LpVault.Calls)

	stats, err := f.Engine.GetPostGraduationStats(testToken)
	require.NoError(t, err)
	require.Equal(t, uint64(1), stats.Sells)
	require.Equal(t, types.TokenAmount(1_000_000), stats.TokensSold)
	require.Equal(t, "343000000000000000000", stats.BnbPaidToSellers.String())
	require.Equal(t, "490000000000000000000000", stats.LiquidityTokensAdded.String())
	require.Equal(t, "147000000000000000000", stats.LiquidityBnbAdded.String())
	require.Equal(t, "294000000000000000000", stats.LpUnitsGenerated.String())
}

func TestSecondarySell_LocksLpWhenNotBurning(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)

	// Instant-launch pool with LP locking instead of burning.
	f.Bank.Mint(testutil.Creator, testToken, f.Params.TotalTokenSupply)
	_, err := f.Engine.CreateInstantLaunchPool(ctx, testutil.Creator, testToken,
		f.Params.TotalTokenSupply, testutil.Creator, false, math.ZeroInt())
	require.NoError(t, err)
	f.GraduatePool(t, ctx, testToken)
	require.NoError(t, f.Engine.GraduatePool(ctx, testutil.Authority, testToken))
	require.NoError(t, f.Engine.SetLpToken(ctx, testutil.Manager, testToken, "0xlp"))

	f.FundTokens(testutil.Seller, testToken, 1_000_000)
	_, err = f.Engine.Sell(ctx, testutil.Seller, testToken, types.TokenAmount(1_000_000), math.ZeroInt())
	require.NoError(t, err)

	require.Len(t, f.LpVault.Calls, 1)
	call := f.LpVault.Calls[0]
	require.Equal(t, testToken, call.Token)
	require.Equal(t, "0xlp", call.LpToken)
	require.Equal(t, testutil.Creator, call.Beneficiary)
	require.Equal(t, testutil.PlatformTreasury, call.Treasury)
	require.Equal(t, "294000000000000000000", call.Amount.String())
	require.Equal(t, f.Params.LpLockDuration, call.Duration)
}

func TestSecondarySell_MinProceedsPrecheck(t *testing.T) {
	f := graduatedFixture(t)
	ctx := ctxAt(200)

	f.FundTokens(testutil.Seller, testToken, 1_000_000)
	_, err := f.Engine.Sell(ctx, testutil.Seller, testToken, types.TokenAmount(1_000_000), types.BnbAmount(400))
	require.ErrorIs(t, err, types.ErrSlippageExceeded)

	// Rejected before any funds moved.
	require.Equal(t, types.TokenAmount(1_000_000), f.Bank.Balance(ctx, testutil.Seller, testToken))
	require.Zero(t, f.Amm.SwapCalls)
}

func TestSecondarySell_SwapFailureRevertsInput(t *testing.T) {
	f := graduatedFixture(t)
	ctx := ctxAt(200)
	f.Amm.FailSwap = true

	f.FundTokens(testutil.Seller, testToken, 1_000_000)
	_, err := f.Engine.Sell(ctx, testutil.Seller, testToken, types.TokenAmount(1_000_000), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrAmmFailure)

	// Full input returned, no fee charged.
	require.Equal(t, types.TokenAmount(1_000_000), f.Bank.Balance(ctx, testutil.Seller, testToken))
	require.True(t, f.Bank.Balance(ctx, testutil.PlatformTreasury, testToken).IsZero())
}

func TestSecondarySell_LiquidityFailureStillSettlesSeller(t *testing.T) {
	f := graduatedFixture(t)
	ctx := ctxAt(200)
	f.Amm.FailAddLiquidity = true

	treasuryBnbBefore := f.Bank.Balance(ctx, testutil.PlatformTreasury, types.BnbDenom)

	f.FundTokens(testutil.Seller, testToken, 1_000_000)
	bnbOut, err := f.Engine.Sell(ctx, testutil.Seller, testToken, types.TokenAmount(1_000_000), math.ZeroInt())
	require.NoError(t, err)

	// The swap already happened, so the seller keeps the quoted 70%.
	require.Equal(t, "343000000000000000000", bnbOut.String())
	require.Equal(t, bnbOut, f.Bank.Balance(ctx, testutil.Seller, types.BnbDenom))
	require.True(t, f.Bank.Balance(ctx, testutil.Seller, testToken).IsZero())

	// Both rejected liquidity legs plus the token fee land at the platform
	// treasury: 490k tokens + 20k fee, and the retained 147 BNB.
	require.Equal(t, "510000000000000000000000", f.Bank.Balance(ctx, testutil.PlatformTreasury, testToken).String())
	treasuryBnbDelta := f.Bank.Balance(ctx, testutil.PlatformTreasury, types.BnbDenom).Sub(treasuryBnbBefore)
	require.Equal(t, "147000000000000000000", treasuryBnbDelta.String())

	// No liquidity was added and no LP units exist.
	require.True(t, f.Bank.Balance(ctx, types.BurnAccount, types.LpDenom(testToken)).IsZero())
	stats, err := f.Engine.GetPostGraduationStats(testToken)
	require.NoError(t, err)
	require.Equal(t, uint64(1), stats.Sells)
	require.Equal(t, "343000000000000000000", stats.BnbPaidToSellers.String())
	require.True(t, stats.LiquidityTokensAdded.IsZero())
	require.True(t, stats.LiquidityBnbAdded.IsZero())
	require.True(t, stats.LpUnitsGenerated.IsZero())
}

func TestSecondarySell_LockFailureStillSettlesSeller(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)

	f.Bank.Mint(testutil.Creator, testToken, f.Params.TotalTokenSupply)
	_, err := f.Engine.CreateInstantLaunchPool(ctx, testutil.Creator, testToken,
		f.Params.TotalTokenSupply, testutil.Creator, false, math.ZeroInt())
	require.NoError(t, err)
	f.GraduatePool(t, ctx, testToken)
	require.NoError(t, f.Engine.GraduatePool(ctx, testutil.Authority, testToken))
	require.NoError(t, f.Engine.SetLpToken(ctx, testutil.Manager, testToken, "0xlp"))
	f.LpVault.FailLock = true

	f.FundTokens(testutil.Seller, testToken, 1_000_000)
	bnbOut, err := f.Engine.Sell(ctx, testutil.Seller, testToken, types.TokenAmount(1_000_000), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, "343000000000000000000", bnbOut.String())
	require.Equal(t, bnbOut, f.Bank.Balance(ctx, testutil.Seller, types.BnbDenom))
}

func TestSecondarySell_PartialLiquidityReturnsDust(t *testing.T) {
	f := graduatedFixture(t)
	ctx := ctxAt(200)
	f.Amm.PartialLiquidity = true

	f.FundTokens(testutil.Seller, testToken, 1_000_000)
	bnbOut, err := f.Engine.Sell(ctx, testutil.Seller, testToken, types.TokenAmount(1_000_000), math.ZeroInt())
	require.NoError(t, err)

	// 1% of the liquidity BNB leg (1.47 BNB) comes back to the seller on
	// top of the 343 BNB share; the unused token dust goes to the treasury.
	expected := math.NewIntWithDecimal(343, 18).Add(math.NewIntWithDecimal(147, 16))
	require.Equal(t, expected, bnbOut)

	stats, err := f.Engine.GetPostGraduationStats(testToken)
	require.NoError(t, err)
	require.Equal(t, expected, stats.BnbPaidToSellers)
}

func TestSecondarySell_DustTooSmall(t *testing.T) {
	f := graduatedFixture(t)
	ctx := ctxAt(200)

	f.Bank.Mint(testutil.Seller, testToken, math.NewInt(1))
	_, err := f.Engine.Sell(ctx, testutil.Seller, testToken, math.NewInt(1), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidInput)
}
