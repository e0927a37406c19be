package cmd

import (
	"fmt"
	"strings"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/moonforge-labs/launchpad/bank"
	"github.com/moonforge-labs/launchpad/launch/config"
	"github.com/moonforge-labs/launchpad/launch/engine"
	"github.com/moonforge-labs/launchpad/launch/types"
)

// Simulation accounts. The engine needs real counterparties even in memory;
// these are the sandbox's fixed cast.
const (
	simPlatform  = "sim-platform-treasury"
	simInfoFi    = "sim-infofi-treasury"
	simManager   = "sim-manager"
	simAuthority = "sim-authority"
	simCreator   = "sim-creator"
	simBuyer     = "sim-buyer"
	simToken     = "simtoken"
)

var simGenesis = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func loadParams(cmd *cobra.Command) (types.Params, error) {
	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return types.Params{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return types.Params{}, err
	}
	return cfg.Params, nil
}

// newSimEngine builds an engine over a fresh in-memory ledger with an
// instant-launch pool for simToken already created and funded.
func newSimEngine(params types.Params) (*engine.Engine, *bank.Keeper, error) {
	bk := bank.NewKeeper()
	eng, err := engine.New(engine.Config{
		Params: params,
		Addresses: engine.Addresses{
			PlatformTreasury: simPlatform,
			InfoFiTreasury:   simInfoFi,
			Manager:          simManager,
			Authority:        simAuthority,
		},
		Bank:   bk,
		Logger: log.NewNopLogger(),
	})
	if err != nil {
		return nil, nil, err
	}

	bk.Mint(simCreator, simToken, params.TotalTokenSupply)
	ctx := simCtx(0)
	if _, err := eng.CreateInstantLaunchPool(ctx, simCreator, simToken, params.TotalTokenSupply, simCreator, true, math.ZeroInt()); err != nil {
		return nil, nil, err
	}
	return eng, bk, nil
}

func simCtx(height int64) types.Context {
	return types.NewContext(nil, height, simGenesis.Add(time.Duration(height)*3*time.Second))
}

// parseBnb converts a whole-BNB decimal string ("12.5") to base units.
func parseBnb(s string) (math.Int, error) {
	dec, err := math.LegacyNewDecFromStr(strings.TrimSpace(s))
	if err != nil {
		return math.Int{}, fmt.Errorf("amount %q: %w", s, err)
	}
	if !dec.IsPositive() {
		return math.Int{}, fmt.Errorf("amount must be positive, got %s", s)
	}
	return dec.MulInt(types.Scale).TruncateInt(), nil
}

// fmtBnb renders base units as whole BNB with 6 fractional digits.
func fmtBnb(amount math.Int) string {
	return math.LegacyNewDecFromInt(amount).QuoInt(types.Scale).String()
}
