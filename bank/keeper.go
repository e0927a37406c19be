// Package bank provides the in-memory asset ledger the launch engine settles
// against. It exists for embedding and testing; a chain deployment swaps in
// the host's bank module behind the same interface.
package bank

import (
	"context"
	"sync"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"
)

const codespace = "bank"

var (
	ErrInsufficientFunds = errors.Register(codespace, 2, "insufficient funds")
	ErrInvalidTransfer   = errors.Register(codespace, 3, "invalid transfer")
)

// Keeper is a thread-safe in-memory multi-denom ledger.
type Keeper struct {
	mu       sync.RWMutex
	balances map[string]map[string]math.Int // addr -> denom -> amount
}

// NewKeeper returns an empty ledger.
func NewKeeper() *Keeper {
	return &Keeper{balances: make(map[string]map[string]math.Int)}
}

// Mint credits amount of denom to addr out of thin air.
func (k *Keeper) Mint(addr, denom string, amount math.Int) {
	if !amount.IsPositive() {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.credit(addr, denom, amount)
}

// Transfer moves amount of denom from one account to another. It either
// fully applies or fully fails.
func (k *Keeper) Transfer(_ context.Context, from, to, denom string, amount math.Int) error {
	if from == "" || to == "" {
		return ErrInvalidTransfer.Wrap("from and to addresses are required")
	}
	if denom == "" {
		return ErrInvalidTransfer.Wrap("denom is required")
	}
	if amount.IsNegative() {
		return ErrInvalidTransfer.Wrapf("amount cannot be negative, got %s", amount)
	}
	if amount.IsZero() {
		return nil
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	have := k.balance(from, denom)
	if have.LT(amount) {
		return ErrInsufficientFunds.Wrapf("%s holds %s %s, needs %s", from, have, denom, amount)
	}
	k.balances[from][denom] = have.Sub(amount)
	k.credit(to, denom, amount)
	return nil
}

// Balance returns the current balance of denom held by addr.
func (k *Keeper) Balance(_ context.Context, addr, denom string) math.Int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.balance(addr, denom)
}

func (k *Keeper) balance(addr, denom string) math.Int {
	if denoms, ok := k.balances[addr]; ok {
		if amt, ok := denoms[denom]; ok {
			return amt
		}
	}
	return math.ZeroInt()
}

func (k *Keeper) credit(addr, denom string, amount math.Int) {
	denoms, ok := k.balances[addr]
	if !ok {
		denoms = make(map[string]math.Int)
		k.balances[addr] = denoms
	}
	cur, ok := denoms[denom]
	if !ok {
		cur = math.ZeroInt()
	}
	denoms[denom] = cur.Add(amount)
}
