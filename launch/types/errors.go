package types

import (
	"cosmossdk.io/errors"
)

// Launch module sentinel errors. Every failed operation leaves state unchanged;
// the reason string maps 1:1 onto the error taxonomy callers retry against.
var (
	ErrInvalidInput          = errors.Register(ModuleName, 2, "invalid input")
	ErrInvalidAddress        = errors.Register(ModuleName, 3, "invalid address")
	ErrPoolNotFound          = errors.Register(ModuleName, 4, "pool not found")
	ErrPoolAlreadyExists     = errors.Register(ModuleName, 5, "pool already exists")
	ErrPoolNotActive         = errors.Register(ModuleName, 6, "pool is not active")
	ErrPoolGraduated         = errors.Register(ModuleName, 7, "pool has graduated")
	ErrPoolNotGraduated      = errors.Register(ModuleName, 8, "pool has not graduated")
	ErrSlippageExceeded      = errors.Register(ModuleName, 9, "output below minimum requested")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 10, "insufficient liquidity in pool")
	ErrUnauthorized          = errors.Register(ModuleName, 11, "unauthorized caller")
	ErrCooldownActive        = errors.Register(ModuleName, 12, "claim cooldown has not elapsed")
	ErrClaimConditionsNotMet = errors.Register(ModuleName, 13, "claim conditions not met")
	ErrNothingToClaim        = errors.Register(ModuleName, 14, "no accumulated fees to claim")
	ErrSupplyMismatch        = errors.Register(ModuleName, 15, "token amount mismatch against expected supply split")
	ErrAlreadyGraduated      = errors.Register(ModuleName, 16, "pool already graduated")
	ErrAlreadyWithdrawn      = errors.Register(ModuleName, 17, "graduated reserves already withdrawn")
	ErrInvariantViolation    = errors.Register(ModuleName, 18, "pool invariant violation")
	ErrReentrancy            = errors.Register(ModuleName, 19, "reentrant call detected")
	ErrInvalidParams         = errors.Register(ModuleName, 20, "invalid module parameters")
	ErrAmmFailure            = errors.Register(ModuleName, 21, "external AMM call failed")
	ErrTransferFailed        = errors.Register(ModuleName, 22, "asset transfer failed")
)
