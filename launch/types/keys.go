package types

const (
	// ModuleName defines the module name, used as the error codespace and
	// metrics subsystem.
	ModuleName = "launch"

	// ModuleAccount is the address holding pool custody: curve reserves,
	// reserved tokens and accrued creator fees live here until paid out.
	ModuleAccount = "launchpad_module"

	// BurnAccount receives LP units for pools configured with BurnLP.
	BurnAccount = "launchpad_burn"

	// BnbDenom is the ledger denomination of the raise currency.
	BnbDenom = "bnb"
)

// Event types emitted by the engine. Attributes carry enough data for an
// off-core indexer to reconstruct pool state.
const (
	EventTypePoolCreated            = "pool_created"
	EventTypeTrade                  = "trade"
	EventTypeFeesCollected          = "fees_collected"
	EventTypeGraduated              = "pool_graduated"
	EventTypePoolWithdrawn          = "pool_withdrawn"
	EventTypeCreatorFeesClaimed     = "creator_fees_claimed"
	EventTypeCreatorFeesRedirected  = "creator_fees_redirected"
	EventTypeSecondarySell          = "secondary_sell"
	EventTypeLpTokenSet             = "lp_token_set"
)

// Event attribute keys.
const (
	AttributeKeyToken            = "token"
	AttributeKeyCreator          = "creator"
	AttributeKeyTrader           = "trader"
	AttributeKeySide             = "side"
	AttributeKeyLaunchType       = "launch_type"
	AttributeKeyLaunchBlock      = "launch_block"
	AttributeKeyBnbIn            = "bnb_in"
	AttributeKeyBnbOut           = "bnb_out"
	AttributeKeyTokensIn         = "tokens_in"
	AttributeKeyTokensOut        = "tokens_out"
	AttributeKeyFee              = "fee"
	AttributeKeyFeeBps           = "fee_bps"
	AttributeKeyPlatformFee      = "platform_fee"
	AttributeKeyCreatorFee       = "creator_fee"
	AttributeKeyInfoFiFee        = "infofi_fee"
	AttributeKeyLiquidityFee     = "liquidity_fee"
	AttributeKeyBnbReserve       = "bnb_reserve"
	AttributeKeyTokenReserve     = "token_reserve"
	AttributeKeyReservedTokens   = "reserved_tokens"
	AttributeKeyVirtualReserve   = "virtual_bnb_reserve"
	AttributeKeyMarketCap        = "market_cap"
	AttributeKeyPrice            = "price"
	AttributeKeyThreshold        = "graduation_threshold"
	AttributeKeyEarmarkedBnb     = "earmarked_bnb"
	AttributeKeyRemainingTokens  = "remaining_tokens"
	AttributeKeyAmount           = "amount"
	AttributeKeyRecipient        = "recipient"
	AttributeKeyLpToken          = "lp_token"
	AttributeKeyLpUnits          = "lp_units"
	AttributeKeyLiquidityBnb     = "liquidity_bnb"
	AttributeKeyLiquidityTokens  = "liquidity_tokens"
	AttributeKeySellerProceeds   = "seller_proceeds"
)

// LpDenom returns the ledger denomination under which LP units minted for a
// graduated token's external pair are held.
func LpDenom(token string) string {
	return "lp/" + token
}
