package testutil

import (
	"context"
	"errors"
	"time"

	"cosmossdk.io/math"
	"github.com/shopspring/decimal"

	"github.com/moonforge-labs/launchpad/bank"
	"github.com/moonforge-labs/launchpad/launch/types"
)

// AmmAccount holds the fake venue's side of every swap and deposit.
const AmmAccount = "amm1venue"

// FakeAmm is a deterministic external venue: swaps pay a fixed rate and
// liquidity deposits consume what they are given. BNB proceeds are minted
// into module custody the way a real adapter would credit it.
type FakeAmm struct {
	bank *bank.Keeper

	// RateNum/RateDen price token -> BNB swaps: bnbOut = in * num / den.
	RateNum int64
	RateDen int64

	// PartialLiquidity makes AddLiquidity use only 99% of each leg,
	// exercising the dust-return paths.
	PartialLiquidity bool

	// Failure injection.
	FailQuote        bool
	FailSwap         bool
	FailAddLiquidity bool

	SwapCalls         int
	AddLiquidityCalls int
}

// NewFakeAmm returns a venue paying 1 BNB per 1000 tokens.
func NewFakeAmm(bk *bank.Keeper) *FakeAmm {
	return &FakeAmm{bank: bk, RateNum: 1, RateDen: 1000}
}

func (a *FakeAmm) PairAddress(_ context.Context, token string) (string, error) {
	return "pair/" + token, nil
}

func (a *FakeAmm) GetAmountOut(_ context.Context, _ string, amountIn math.Int) (math.Int, error) {
	if a.FailQuote {
		return math.Int{}, errors.New("venue quote unavailable")
	}
	return amountIn.MulRaw(a.RateNum).QuoRaw(a.RateDen), nil
}

func (a *FakeAmm) SwapTokenForBnb(ctx context.Context, token string, amountIn, minOut math.Int) (math.Int, error) {
	a.SwapCalls++
	if a.FailSwap {
		return math.Int{}, errors.New("venue swap rejected")
	}
	out := amountIn.MulRaw(a.RateNum).QuoRaw(a.RateDen)
	if out.LT(minOut) {
		return math.Int{}, errors.New("venue output below minimum")
	}
	if err := a.bank.Transfer(ctx, types.ModuleAccount, AmmAccount, token, amountIn); err != nil {
		return math.Int{}, err
	}
	a.bank.Mint(types.ModuleAccount, types.BnbDenom, out)
	return out, nil
}

func (a *FakeAmm) AddLiquidity(ctx context.Context, token string, tokenAmt, bnbAmt, minToken, minBnb math.Int) (math.Int, math.Int, math.Int, error) {
	a.AddLiquidityCalls++
	if a.FailAddLiquidity {
		return math.Int{}, math.Int{}, math.Int{}, errors.New("venue deposit rejected")
	}
	usedToken, usedBnb := tokenAmt, bnbAmt
	if a.PartialLiquidity {
		usedToken = tokenAmt.MulRaw(99).QuoRaw(100)
		usedBnb = bnbAmt.MulRaw(99).QuoRaw(100)
	}
	if usedToken.LT(minToken) || usedBnb.LT(minBnb) {
		return math.Int{}, math.Int{}, math.Int{}, errors.New("venue deposit below minimums")
	}
	if err := a.bank.Transfer(ctx, types.ModuleAccount, AmmAccount, token, usedToken); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	if err := a.bank.Transfer(ctx, types.ModuleAccount, AmmAccount, types.BnbDenom, usedBnb); err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	lpUnits := usedBnb.MulRaw(2)
	a.bank.Mint(types.ModuleAccount, types.LpDenom(token), lpUnits)
	return usedToken, usedBnb, lpUnits, nil
}

// LockCall records one FakeLpVault.Lock invocation.
type LockCall struct {
	Token       string
	LpToken     string
	Beneficiary string
	Treasury    string
	Amount      math.Int
	Duration    time.Duration
}

// FakeLpVault records lock requests.
type FakeLpVault struct {
	Calls    []LockCall
	FailLock bool
}

func (v *FakeLpVault) Lock(_ context.Context, token, lpToken, beneficiary, treasury string, amount math.Int, duration time.Duration) error {
	if v.FailLock {
		return errors.New("vault lock rejected")
	}
	v.Calls = append(v.Calls, LockCall{
		Token:       token,
		LpToken:     lpToken,
		Beneficiary: beneficiary,
		Treasury:    treasury,
		Amount:      amount,
		Duration:    duration,
	})
	return nil
}

// FakeFeed returns a fixed price observation.
type FakeFeed struct {
	Price      decimal.Decimal
	ObservedAt time.Time
	Err        error
}

func (f *FakeFeed) LatestPrice(_ context.Context) (decimal.Decimal, time.Time, error) {
	if f.Err != nil {
		return decimal.Zero, time.Time{}, f.Err
	}
	return f.Price, f.ObservedAt, nil
}
