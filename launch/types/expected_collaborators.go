package types

import (
	"context"
	"time"

	"cosmossdk.io/math"
)

// Collaborator interfaces the engine consumes. Concrete implementations live
// outside the core (fundraising manager, chain adapters, test fakes); the
// engine only depends on the contracts below.

// BankKeeper moves assets between accounts. The engine's module account holds
// pool custody; every trade settles through these two calls.
type BankKeeper interface {
	// Transfer moves amount of denom from one account to another. It
	// either fully applies or fully fails.
	Transfer(ctx context.Context, from, to, denom string, amount math.Int) error

	// Balance returns the current balance of denom held by addr.
	Balance(ctx context.Context, addr, denom string) math.Int
}

// TokenMeta is the deployment descriptor for a launched token.
type TokenMeta struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// TokenDeployer deterministically deploys launched tokens. ComputeAddress
// must return the address DeployToken will produce for the same meta/salt.
type TokenDeployer interface {
	DeployToken(ctx context.Context, meta TokenMeta, salt []byte) (string, error)
	ComputeAddress(meta TokenMeta, salt []byte) string
}

// PriceOracle converts BNB amounts to USD. Implementations are expected to
// fall back to a configured price when the feed is stale or failing, so a
// broken feed never takes down view queries.
type PriceOracle interface {
	BnbToUsd(ctx context.Context, amount math.Int) (math.LegacyDec, error)
}

// ExternalAmm is the post-graduation liquidity venue. All amounts are
// 18-decimal base units.
type ExternalAmm interface {
	// PairAddress returns the pair for token/BNB, creating it if the
	// venue does so lazily.
	PairAddress(ctx context.Context, token string) (string, error)

	// GetAmountOut quotes a token -> BNB swap without executing it.
	GetAmountOut(ctx context.Context, token string, amountIn math.Int) (math.Int, error)

	// SwapTokenForBnb executes a token -> BNB swap, failing if the output
	// would be below minOut.
	SwapTokenForBnb(ctx context.Context, token string, amountIn, minOut math.Int) (math.Int, error)

	// AddLiquidity deposits up to tokenAmt/bnbAmt into the pair and
	// reports what was actually used plus the LP units minted to the
	// caller's account.
	AddLiquidity(ctx context.Context, token string, tokenAmt, bnbAmt, minToken, minBnb math.Int) (usedToken, usedBnb, lpUnits math.Int, err error)
}

// LpVault locks LP units for pools that do not burn them.
type LpVault interface {
	Lock(ctx context.Context, token, lpToken, beneficiary, treasury string, amount math.Int, duration time.Duration) error
}
