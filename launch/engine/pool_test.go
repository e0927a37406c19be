package engine_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/moonforge-labs/launchpad/launch/types"
	"github.com/moonforge-labs/launchpad/testutil"
)

func TestCreatePool_ProjectRaise(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(100)
	f.CreateProjectRaisePool(t, ctx, testToken, 50)

	pool, err := f.Engine.GetPool(testToken)
	require.NoError(t, err)

	require.Equal(t, testToken, pool.Token)
	require.Equal(t, testutil.Creator, pool.Creator)
	require.Equal(t, types.LaunchTypeProjectRaise, pool.LaunchType)
	require.Equal(t, types.BnbAmount(50), pool.BnbReserve)
	require.Equal(t, types.TokenAmount(800_000_000), pool.TokenReserve)
	require.Equal(t, types.TokenAmount(200_000_000), pool.ReservedTokens)
	require.True(t, pool.VirtualBnbReserve.IsZero())
	require.Equal(t, int64(100), pool.LaunchBlock)
	require.True(t, pool.Active)
	require.False(t, pool.Graduated)

	// Custody: the full allocation and the seed sit in the module account.
	supply := f.Params.TotalTokenSupply
	require.Equal(t, supply, f.Bank.Balance(ctx, f.Engine.ModuleAccount(), testToken))
	require.Equal(t, types.BnbAmount(50), f.Bank.Balance(ctx, f.Engine.ModuleAccount(), types.BnbDenom))

	// market cap = reserve * supply / tokenReserve = 50 * 1e9 / 8e8 = 62.5 BNB
	require.Equal(t, "62500000000000000000", pool.MarketCap.String())
}

func TestCreatePool_InstantLaunchVirtualReserve(t *testing.T) {
	f := newFixture(t)
	f.CreateInstantLaunchPool(t, ctxAt(0), testToken)

	pool, err := f.Engine.GetPool(testToken)
	require.NoError(t, err)

	// virtual = threshold / (multiplier - 1) = 80 / 4 = 20 BNB
	require.Equal(t, "20000000000000000000", pool.VirtualBnbReserve.String())
	require.True(t, pool.BnbReserve.IsZero())
	require.Equal(t, types.TokenAmount(900_000_000), pool.TokenReserve)
	require.Equal(t, types.TokenAmount(100_000_000), pool.ReservedTokens)

	// Opening price comes entirely from the virtual reserve.
	require.True(t, pool.InitialPrice.IsPositive())
	require.True(t, pool.SpotPrice().Equal(pool.InitialPrice))
}

func TestCreatePool_Duplicate(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)
	f.CreateProjectRaisePool(t, ctx, testToken, 10)

	supply := f.Params.TotalTokenSupply
	reserved := supply.MulRaw(f.Params.ProjectRaiseReservedPct).QuoRaw(100)
	f.Bank.Mint(testutil.Manager, testToken, supply)
	f.Fund(testutil.Manager, 10)

	_, err := f.Engine.CreatePool(ctx, testutil.Manager, testToken, supply.Sub(reserved), reserved,
		types.LaunchTypeProjectRaise, testutil.Creator, true, types.BnbAmount(10))
	require.ErrorIs(t, err, types.ErrPoolAlreadyExists)
}

func TestCreatePool_ProjectRaiseRequiresSeed(t *testing.T) {
	f := newFixture(t)
	supply := f.Params.TotalTokenSupply
	reserved := supply.MulRaw(f.Params.ProjectRaiseReservedPct).QuoRaw(100)
	f.Bank.Mint(testutil.Manager, testToken, supply)

	_, err := f.Engine.CreatePool(ctxAt(0), testutil.Manager, testToken, supply.Sub(reserved), reserved,
		types.LaunchTypeProjectRaise, testutil.Creator, true, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestCreatePool_ReservedMismatch(t *testing.T) {
	f := newFixture(t)
	supply := f.Params.TotalTokenSupply
	wrong := supply.MulRaw(5).QuoRaw(100) // policy requires 20%
	f.Bank.Mint(testutil.Manager, testToken, supply)
	f.Fund(testutil.Manager, 10)

	_, err := f.Engine.CreatePool(ctxAt(0), testutil.Manager, testToken, supply.Sub(wrong), wrong,
		types.LaunchTypeProjectRaise, testutil.Creator, true, types.BnbAmount(10))
	require.ErrorIs(t, err, types.ErrSupplyMismatch)
}

func TestCreateInstantLaunchPool_PartialSupplyRejected(t *testing.T) {
	f := newFixture(t)
	half := f.Params.TotalTokenSupply.QuoRaw(2)
	f.Bank.Mint(testutil.Creator, testToken, half)

	_, err := f.Engine.CreateInstantLaunchPool(ctxAt(0), testutil.Creator, testToken,
		half, testutil.Creator, true, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrSupplyMismatch)
}

func TestCreatePool_UnderfundedCallerLeavesNoState(t *testing.T) {
	f := newFixture(t)
	supply := f.Params.TotalTokenSupply
	reserved := supply.MulRaw(f.Params.ProjectRaiseReservedPct).QuoRaw(100)
	// Tokens minted, but no BNB for the seed leg.
	f.Bank.Mint(testutil.Manager, testToken, supply)

	ctx := ctxAt(0)
	_, err := f.Engine.CreatePool(ctx, testutil.Manager, testToken, supply.Sub(reserved), reserved,
		types.LaunchTypeProjectRaise, testutil.Creator, true, types.BnbAmount(10))
	require.Error(t, err)

	// The failed seed transfer reverted the token custody leg.
	require.Equal(t, supply, f.Bank.Balance(ctx, testutil.Manager, testToken))
	require.True(t, f.Bank.Balance(ctx, f.Engine.ModuleAccount(), testToken).IsZero())

	_, err = f.Engine.GetPool(testToken)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}
