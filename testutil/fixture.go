// Package testutil provides engine fixtures and collaborator fakes shared by
// the package tests.
package testutil

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/moonforge-labs/launchpad/bank"
	"github.com/moonforge-labs/launchpad/launch/engine"
	"github.com/moonforge-labs/launchpad/launch/types"
)

// Well-known test addresses.
const (
	PlatformTreasury = "plat1treasury"
	InfoFiTreasury   = "infofi1treasury"
	Manager          = "mgr1manager"
	Authority        = "auth1authority"
	Creator          = "crt1creator"
	Buyer            = "usr1buyer"
	Seller           = "usr1seller"

	TestToken = "0x00000000000000000000000000000000deadbeef"
)

// GenesisTime anchors all test contexts.
var GenesisTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// Fixture bundles a ready engine with its collaborators.
type Fixture struct {
	Engine  *engine.Engine
	Bank    *bank.Keeper
	Amm     *FakeAmm
	LpVault *FakeLpVault
	Params  types.Params
}

// Addresses returns the fixture's counterparty wiring.
func Addresses() engine.Addresses {
	return engine.Addresses{
		PlatformTreasury: PlatformTreasury,
		InfoFiTreasury:   InfoFiTreasury,
		Manager:          Manager,
		Authority:        Authority,
	}
}

// NewEngine builds an engine over an in-memory bank and fake collaborators.
func NewEngine(t testing.TB, params types.Params) *Fixture {
	t.Helper()

	bk := bank.NewKeeper()
	amm := NewFakeAmm(bk)
	vault := &FakeLpVault{}

	eng, err := engine.New(engine.Config{
		Params:    params,
		Addresses: Addresses(),
		Bank:      bk,
		Amm:       amm,
		LpVault:   vault,
		Logger:    log.NewNopLogger(),
	})
	require.NoError(t, err)

	return &Fixture{
		Engine:  eng,
		Bank:    bk,
		Amm:     amm,
		LpVault: vault,
		Params:  params,
	}
}

// Ctx returns a transaction context at the given block height, with the block
// time advanced one second per block from genesis.
func Ctx(height int64) types.Context {
	return types.NewContext(nil, height, GenesisTime.Add(time.Duration(height)*time.Second))
}

// CtxAt returns a transaction context at an explicit height and time.
func CtxAt(height int64, at time.Time) types.Context {
	return types.NewContext(nil, height, at)
}

// Fund credits addr with whole BNB.
func (f *Fixture) Fund(addr string, wholeBnb int64) {
	f.Bank.Mint(addr, types.BnbDenom, types.BnbAmount(wholeBnb))
}

// FundTokens credits addr with whole tokens of denom.
func (f *Fixture) FundTokens(addr, denom string, whole int64) {
	f.Bank.Mint(addr, denom, types.TokenAmount(whole))
}

// CreateProjectRaisePool creates a standard project-raise pool: the manager
// seeds it with seedBnb and 80% of supply is tradable.
func (f *Fixture) CreateProjectRaisePool(t testing.TB, ctx types.Context, token string, seedBnb int64) {
	t.Helper()

	supply := f.Params.TotalTokenSupply
	reserved := supply.MulRaw(f.Params.ProjectRaiseReservedPct).QuoRaw(100)
	tradable := supply.Sub(reserved)

	f.Bank.Mint(Manager, token, supply)
	f.Fund(Manager, seedBnb)

	_, err := f.Engine.CreatePool(ctx, Manager, token, tradable, reserved,
		types.LaunchTypeProjectRaise, Creator, true, types.BnbAmount(seedBnb))
	require.NoError(t, err)
}

// CreateInstantLaunchPool creates a standard instant-launch pool holding the
// full supply, priced off the virtual reserve.
func (f *Fixture) CreateInstantLaunchPool(t testing.TB, ctx types.Context, token string) {
	t.Helper()

	f.Bank.Mint(Creator, token, f.Params.TotalTokenSupply)
	_, err := f.Engine.CreateInstantLaunchPool(ctx, Creator, token,
		f.Params.TotalTokenSupply, Creator, true, math.ZeroInt())
	require.NoError(t, err)
}

// GraduatePool buys until the pool crosses its graduation threshold.
func (f *Fixture) GraduatePool(t testing.TB, ctx types.Context, token string) {
	t.Helper()

	// A single oversized buy crosses any default threshold.
	buyIn := f.Params.GraduationBnbThreshold.MulRaw(2)
	f.Bank.Mint(Buyer, types.BnbDenom, buyIn)
	_, err := f.Engine.Buy(ctx, Buyer, token, buyIn, math.ZeroInt())
	require.NoError(t, err)

	pool, err := f.Engine.GetPool(token)
	require.NoError(t, err)
	require.True(t, pool.Graduated)
}
