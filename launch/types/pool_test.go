package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/moonforge-labs/launchpad/launch/types"
)

func validPool() types.Pool {
	return types.Pool{
		Token:                  "0xtok",
		Creator:                "creator1",
		LaunchType:             types.LaunchTypeInstantLaunch,
		BnbReserve:             math.ZeroInt(),
		TokenReserve:           types.TokenAmount(900_000_000),
		ReservedTokens:         types.TokenAmount(100_000_000),
		TotalTokenSupply:       types.TokenAmount(1_000_000_000),
		VirtualBnbReserve:      types.BnbAmount(20),
		MarketCap:              math.ZeroInt(),
		GraduationBnbThreshold: types.BnbAmount(80),
		BnbForExternalSwap:     math.ZeroInt(),
		Active:                 true,
		InitialPrice:           math.LegacyZeroDec(),
	}
}

func TestPoolSpotPrice(t *testing.T) {
	pool := validPool()

	// 20 virtual BNB against 900M tokens.
	want := math.LegacyNewDecFromInt(types.BnbAmount(20)).
		Quo(math.LegacyNewDecFromInt(types.TokenAmount(900_000_000)))
	require.True(t, pool.SpotPrice().Equal(want))

	pool.BnbReserve = types.BnbAmount(20)
	require.True(t, pool.SpotPrice().Equal(want.MulInt64(2)))

	pool.TokenReserve = math.ZeroInt()
	require.True(t, pool.SpotPrice().IsZero())
}

func TestPoolAugmentedReserve(t *testing.T) {
	pool := validPool()
	pool.BnbReserve = types.BnbAmount(5)
	require.Equal(t, types.BnbAmount(25), pool.AugmentedBnbReserve())
}

func TestPoolRecomputeMarketCap(t *testing.T) {
	pool := validPool()
	pool.RecomputeMarketCap()
	// 20 BNB * 1B supply / 900M reserve.
	require.Equal(t, "22222222222222222222", pool.MarketCap.String())

	pool.TokenReserve = math.ZeroInt()
	before := pool.MarketCap
	pool.RecomputeMarketCap()
	require.Equal(t, before, pool.MarketCap)
}

func TestPoolValidate(t *testing.T) {
	require.NoError(t, validPool().Validate())

	pool := validPool()
	pool.Token = ""
	require.ErrorIs(t, pool.Validate(), types.ErrInvalidInput)

	pool = validPool()
	pool.Creator = ""
	require.ErrorIs(t, pool.Validate(), types.ErrInvalidAddress)

	pool = validPool()
	pool.BnbReserve = math.Int{}
	require.ErrorIs(t, pool.Validate(), types.ErrInvalidInput)

	pool = validPool()
	pool.TokenReserve = math.NewInt(-1)
	require.ErrorIs(t, pool.Validate(), types.ErrInvariantViolation)

	pool = validPool()
	pool.ReservedTokens = pool.TotalTokenSupply
	require.ErrorIs(t, pool.Validate(), types.ErrInvariantViolation)
}
