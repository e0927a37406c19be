// Package engine implements the bonding-curve exchange core: pool ledger,
// buy/sell pricing with anti-bot fee decay, graduation into an external AMM,
// the post-graduation secondary market and the creator fee vault.
//
// Execution is serialized per token: every mutating entry point takes a
// per-token reentrancy lock and follows checks-effects-interactions ordering,
// so a nested call can never observe partially-updated reserves.
package engine

import (
	"cosmossdk.io/log"

	"github.com/moonforge-labs/launchpad/launch/types"
)

// Addresses wires the engine's fixed counterparties.
type Addresses struct {
	// PlatformTreasury receives the platform fee bucket.
	PlatformTreasury string

	// InfoFiTreasury receives the InfoFi bucket, redirected creator fees
	// and redistributed vault balances.
	InfoFiTreasury string

	// Manager is the fundraising/vesting collaborator allowed to create
	// pools on behalf of raises and to withdraw graduated reserves.
	Manager string

	// Authority may trigger the manual graduation override.
	Authority string
}

// Validate rejects empty counterparty addresses.
func (a Addresses) Validate() error {
	for name, addr := range map[string]string{
		"platform treasury": a.PlatformTreasury,
		"infofi treasury":   a.InfoFiTreasury,
		"manager":           a.Manager,
		"authority":         a.Authority,
	} {
		if addr == "" {
			return types.ErrInvalidAddress.Wrapf("%s address cannot be empty", name)
		}
	}
	return nil
}

// Config assembles an Engine.
type Config struct {
	Params    types.Params
	Addresses Addresses

	Bank    types.BankKeeper
	Amm     types.ExternalAmm
	Oracle  types.PriceOracle // optional; USD views degrade to zero without it
	LpVault types.LpVault     // optional; required only for pools that lock LP

	Logger log.Logger
}

// Engine is the bonding-curve exchange core. One instance owns the pool
// ledger for all launched tokens.
type Engine struct {
	params    types.Params
	addresses Addresses

	bank    types.BankKeeper
	amm     types.ExternalAmm
	oracle  types.PriceOracle
	lpVault types.LpVault

	ledger  *ledger
	guard   *reentrancyGuard
	logger  log.Logger
	metrics *Metrics
}

// New validates the config and returns a ready engine.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Addresses.Validate(); err != nil {
		return nil, err
	}
	if cfg.Bank == nil {
		return nil, types.ErrInvalidInput.Wrap("bank keeper is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Engine{
		params:    cfg.Params,
		addresses: cfg.Addresses,
		bank:      cfg.Bank,
		amm:       cfg.Amm,
		oracle:    cfg.Oracle,
		lpVault:   cfg.LpVault,
		ledger:    newLedger(),
		guard:     newReentrancyGuard(),
		logger:    logger.With("module", types.ModuleName),
		metrics:   NewMetrics(),
	}, nil
}

// Params returns the engine's parameters.
func (e *Engine) Params() types.Params {
	return e.params
}

// ModuleAccount returns the custody account address.
func (e *Engine) ModuleAccount() string {
	return types.ModuleAccount
}

// policyFor resolves the launch policy for a pool. Pools are created through
// PolicyFor-validated paths, so failure here indicates ledger corruption.
func (e *Engine) policyFor(pool types.Pool) (types.LaunchPolicy, error) {
	policy, err := types.PolicyFor(pool.LaunchType, e.params)
	if err != nil {
		return nil, types.ErrInvariantViolation.Wrapf("pool %s carries unknown launch type: %v", pool.Token, err)
	}
	return policy, nil
}
