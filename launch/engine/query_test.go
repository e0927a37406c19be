package engine_test

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/moonforge-labs/launchpad/bank"
	"github.com/moonforge-labs/launchpad/launch/engine"
	"github.com/moonforge-labs/launchpad/launch/types"
	"github.com/moonforge-labs/launchpad/oracle"
	"github.com/moonforge-labs/launchpad/testutil"
)

func TestQuoteBuy_MatchesExecution(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)
	f.CreateInstantLaunchPool(t, ctx, testToken)

	quote, err := f.Engine.QuoteBuy(ctx, testToken, types.BnbAmount(1))
	require.NoError(t, err)
	require.Equal(t, int64(1000), quote.FeeBps)
	require.Equal(t, "100000000000000000", quote.FeeBnb.String())

	f.Fund(testutil.Buyer, 1)
	tokensOut, err := f.Engine.Buy(ctx, testutil.Buyer, testToken, types.BnbAmount(1), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, quote.TokensOut, tokensOut)
}

func TestQuoteSell_MatchesExecution(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)
	f.CreateInstantLaunchPool(t, ctx, testToken)

	f.Fund(testutil.Buyer, 1)
	tokensOut, err := f.Engine.Buy(ctx, testutil.Buyer, testToken, types.BnbAmount(1), math.ZeroInt())
	require.NoError(t, err)

	quote, err := f.Engine.QuoteSell(ctx, testToken, tokensOut)
	require.NoError(t, err)

	bnbOut, err := f.Engine.Sell(ctx, testutil.Buyer, testToken, tokensOut, math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, quote.BnbOut, bnbOut)
}

func TestQuoteSell_SecondaryEstimate(t *testing.T) {
	f := graduatedFixture(t)
	ctx := ctxAt(200)

	quote, err := f.Engine.QuoteSell(ctx, testToken, types.TokenAmount(1_000_000))
	require.NoError(t, err)
	require.Equal(t, "343000000000000000000", quote.BnbOut.String())
	require.Equal(t, int64(200), quote.FeeBps)
}

func TestPoolInfo_ProgressAndMultiplier(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)
	f.CreateInstantLaunchPool(t, ctx, testToken)

	info, err := f.Engine.PoolInfo(ctx, testToken)
	require.NoError(t, err)
	require.True(t, info.GraduationProgressPct.IsZero())
	require.True(t, info.PriceMultiplier.Equal(math.LegacyOneDec()))
	require.True(t, info.MarketCapUsd.IsZero(), "no oracle wired")

	// 40 BNB in at 1000 bps lands 36 BNB on the 80 BNB threshold.
	f.Fund(testutil.Buyer, 40)
	_, err = f.Engine.Buy(ctx, testutil.Buyer, testToken, types.BnbAmount(40), math.ZeroInt())
	require.NoError(t, err)

	info, err = f.Engine.PoolInfo(ctx, testToken)
	require.NoError(t, err)
	require.True(t, info.GraduationProgressPct.Equal(math.LegacyNewDec(45)), "36 of 80 BNB: %s", info.GraduationProgressPct)
	require.True(t, info.PriceMultiplier.GT(math.LegacyOneDec()))
	require.False(t, info.Graduated)

	// Graduation clamps progress at 100.
	f.GraduatePool(t, ctx, testToken)
	info, err = f.Engine.PoolInfo(ctx, testToken)
	require.NoError(t, err)
	require.True(t, info.GraduationProgressPct.Equal(math.LegacyNewDec(100)))
	require.True(t, info.Graduated)
}

func TestPoolInfo_UsdViaOracle(t *testing.T) {
	bk := bank.NewKeeper()
	feed := &testutil.FakeFeed{Price: decimal.NewFromInt(500), ObservedAt: testutil.GenesisTime}
	px := oracle.New(oracle.Config{Feed: feed, FallbackPrice: decimal.NewFromInt(400)})

	eng, err := engine.New(engine.Config{
		Params:    types.DefaultParams(),
		Addresses: testutil.Addresses(),
		Bank:      bk,
		Oracle:    px,
		Logger:    log.NewNopLogger(),
	})
	require.NoError(t, err)

	ctx := ctxAt(0)
	bk.Mint(testutil.Manager, testToken, types.DefaultParams().TotalTokenSupply)
	bk.Mint(testutil.Manager, types.BnbDenom, types.BnbAmount(50))
	supply := types.DefaultParams().TotalTokenSupply
	reserved := supply.MulRaw(20).QuoRaw(100)
	_, err = eng.CreatePool(ctx, testutil.Manager, testToken, supply.Sub(reserved), reserved,
		types.LaunchTypeProjectRaise, testutil.Creator, true, types.BnbAmount(50))
	require.NoError(t, err)

	info, err := eng.PoolInfo(ctx, testToken)
	require.NoError(t, err)
	// The fixture feed's observation is stale against the wall clock, so
	// the fallback price of 400 USD/BNB serves: 62.5 BNB market cap.
	require.True(t, info.MarketCapUsd.Equal(math.LegacyNewDec(25000)), "got %s", info.MarketCapUsd)
}

func TestTokenListings(t *testing.T) {
	f := newFixture(t)
	ctx := ctxAt(0)

	f.CreateInstantLaunchPool(t, ctx, "0xaaa")
	f.CreateInstantLaunchPool(t, ctx, "0xbbb")
	require.Equal(t, []string{"0xaaa", "0xbbb"}, f.Engine.AllTokens())
	require.Equal(t, []string{"0xaaa", "0xbbb"}, f.Engine.ActiveTokens())

	// Closing a graduated pool drops it from the active listing only.
	f.GraduatePool(t, ctx, "0xaaa")
	require.NoError(t, f.Engine.GraduatePool(ctx, testutil.Authority, "0xaaa"))
	require.Equal(t, []string{"0xaaa", "0xbbb"}, f.Engine.AllTokens())
	require.Equal(t, []string{"0xbbb"}, f.Engine.ActiveTokens())
}

func TestFeeInfo_UnknownPool(t *testing.T) {
	f := newFixture(t)
	_, err := f.Engine.FeeInfo(ctxAt(0), "unknown")
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}
