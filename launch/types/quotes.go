package types

import (
	"cosmossdk.io/math"
)

// BuyQuote is the read-only result of quoteBuy.
type BuyQuote struct {
	TokensOut     math.Int
	FeeBnb        math.Int
	FeeBps        int64
	PricePerToken math.LegacyDec
}

// SellQuote is the read-only result of quoteSell. For graduated pools the
// quote follows the secondary-market path and is an estimate against the
// external AMM.
type SellQuote struct {
	BnbOut        math.Int
	FeeBps        int64
	PricePerToken math.LegacyDec
}

// PoolInfo is the aggregate pool view.
type PoolInfo struct {
	Token                 string
	LaunchType            LaunchType
	Creator               string
	MarketCapBnb          math.Int
	MarketCapUsd          math.LegacyDec
	BnbReserve            math.Int
	TokenReserve          math.Int
	ReservedTokens        math.Int
	VirtualBnbReserve     math.Int
	CurrentPrice          math.LegacyDec
	PriceMultiplier       math.LegacyDec
	GraduationProgressPct math.LegacyDec
	Graduated             bool
	Active                bool
	LpToken               string
}

// CreatorFeeInfo is the creator vault view.
type CreatorFeeInfo struct {
	Token               string
	Accumulated         math.Int
	LastClaim           int64 // unix seconds
	GraduationMarketCap math.Int
	CurrentMarketCap    math.Int
	BnbInPool           math.Int
	CanClaim            bool
}

// FeeInfo describes the anti-bot fee decay position of a pool.
type FeeInfo struct {
	Token               string
	CurrentRateBps      int64
	FinalRateBps        int64
	BlocksSinceLaunch   int64
	BlocksUntilNextTier int64
	Stage               string
}
