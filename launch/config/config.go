// Package config loads launchpad settings from a TOML file and environment
// variables, layered over the platform defaults.
package config

import (
	"strings"
	"time"

	"cosmossdk.io/math"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/moonforge-labs/launchpad/launch/engine"
	"github.com/moonforge-labs/launchpad/launch/types"
)

// OracleConfig selects the price feed for USD views.
type OracleConfig struct {
	// FeedURL is the JSON spot-price endpoint. Empty disables the feed.
	FeedURL string

	// PricePath is the gjson path to the price inside the response.
	PricePath string

	// StaleAfter bounds how old a feed observation may be.
	StaleAfter time.Duration

	// FallbackUsdPrice is used when the feed is down or stale.
	FallbackUsdPrice decimal.Decimal
}

// Config is the full launchpad configuration.
type Config struct {
	Params    types.Params
	Addresses engine.Addresses
	Oracle    OracleConfig
}

// Load reads configuration from path (optional; empty skips the file) with
// LAUNCHPAD_*-prefixed environment variables taking precedence. Values not
// set anywhere fall back to the platform defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LAUNCHPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigType("toml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, types.ErrInvalidParams.Wrapf("read config %s: %v", path, err)
		}
	}

	cfg, err := fromViper(v)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Params.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	p := types.DefaultParams()

	v.SetDefault("launch.total-token-supply", p.TotalTokenSupply.String())
	v.SetDefault("launch.graduation-bnb-threshold", p.GraduationBnbThreshold.String())
	v.SetDefault("launch.target-multiplier", p.TargetMultiplier)

	v.SetDefault("fees.tier1-bps", p.FeeTier1Bps)
	v.SetDefault("fees.tier2-bps", p.FeeTier2Bps)
	v.SetDefault("fees.tier3-bps", p.FeeTier3Bps)
	v.SetDefault("fees.tier-break1-blocks", p.TierBreak1Blocks)
	v.SetDefault("fees.tier-break2-blocks", p.TierBreak2Blocks)
	v.SetDefault("fees.tier-break3-blocks", p.TierBreak3Blocks)
	v.SetDefault("fees.final-project-raise-bps", p.FinalTierProjectRaiseBps)
	v.SetDefault("fees.final-instant-launch-bps", p.FinalTierInstantLaunchBps)
	v.SetDefault("fees.post-graduation-bps", p.PostGraduationFeeBps)

	v.SetDefault("split.project-raise.platform-pct", p.ProjectRaiseSplit.PlatformPct)
	v.SetDefault("split.project-raise.creator-pct", p.ProjectRaiseSplit.CreatorPct)
	v.SetDefault("split.project-raise.infofi-pct", p.ProjectRaiseSplit.InfoFiPct)
	v.SetDefault("split.project-raise.liquidity-pct", p.ProjectRaiseSplit.LiquidityPct)
	v.SetDefault("split.instant-launch.platform-pct", p.InstantLaunchSplit.PlatformPct)
	v.SetDefault("split.instant-launch.creator-pct", p.InstantLaunchSplit.CreatorPct)
	v.SetDefault("split.instant-launch.infofi-pct", p.InstantLaunchSplit.InfoFiPct)
	v.SetDefault("split.instant-launch.liquidity-pct", p.InstantLaunchSplit.LiquidityPct)

	v.SetDefault("launch.project-raise-reserved-pct", p.ProjectRaiseReservedPct)
	v.SetDefault("launch.instant-launch-reserved-pct", p.InstantLaunchReservedPct)
	v.SetDefault("launch.instant-launch-stays-active", p.InstantLaunchStaysActive)

	v.SetDefault("creator-fees.claim-cooldown", p.ClaimCooldown.String())
	v.SetDefault("creator-fees.redistribution-period", p.RedistributionPeriod.String())

	v.SetDefault("secondary.slippage-bps", p.SecondarySlippageBps)
	v.SetDefault("secondary.seller-proceeds-pct", p.SellerProceedsPct)
	v.SetDefault("secondary.lp-lock-duration", p.LpLockDuration.String())

	v.SetDefault("addresses.platform-treasury", "")
	v.SetDefault("addresses.infofi-treasury", "")
	v.SetDefault("addresses.manager", "")
	v.SetDefault("addresses.authority", "")

	v.SetDefault("oracle.feed-url", "")
	v.SetDefault("oracle.price-path", "price")
	v.SetDefault("oracle.stale-after", "1h")
	v.SetDefault("oracle.fallback-usd-price", "0")
}

func fromViper(v *viper.Viper) (Config, error) {
	supply, err := parseInt(v.GetString("launch.total-token-supply"))
	if err != nil {
		return Config{}, types.ErrInvalidParams.Wrapf("launch.total-token-supply: %v", err)
	}
	threshold, err := parseInt(v.GetString("launch.graduation-bnb-threshold"))
	if err != nil {
		return Config{}, types.ErrInvalidParams.Wrapf("launch.graduation-bnb-threshold: %v", err)
	}
	fallback, err := decimal.NewFromString(v.GetString("oracle.fallback-usd-price"))
	if err != nil {
		return Config{}, types.ErrInvalidParams.Wrapf("oracle.fallback-usd-price: %v", err)
	}

	params := types.Params{
		TotalTokenSupply:       supply,
		GraduationBnbThreshold: threshold,
		TargetMultiplier:       v.GetInt64("launch.target-multiplier"),

		FeeTier1Bps:      v.GetInt64("fees.tier1-bps"),
		FeeTier2Bps:      v.GetInt64("fees.tier2-bps"),
		FeeTier3Bps:      v.GetInt64("fees.tier3-bps"),
		TierBreak1Blocks: v.GetInt64("fees.tier-break1-blocks"),
		TierBreak2Blocks: v.GetInt64("fees.tier-break2-blocks"),
		TierBreak3Blocks: v.GetInt64("fees.tier-break3-blocks"),

		FinalTierProjectRaiseBps:  v.GetInt64("fees.final-project-raise-bps"),
		FinalTierInstantLaunchBps: v.GetInt64("fees.final-instant-launch-bps"),
		PostGraduationFeeBps:      v.GetInt64("fees.post-graduation-bps"),

		ProjectRaiseSplit: types.FeeSplit{
			PlatformPct:  v.GetInt64("split.project-raise.platform-pct"),
			CreatorPct:   v.GetInt64("split.project-raise.creator-pct"),
			InfoFiPct:    v.GetInt64("split.project-raise.infofi-pct"),
			LiquidityPct: v.GetInt64("split.project-raise.liquidity-pct"),
		},
		InstantLaunchSplit: types.FeeSplit{
			PlatformPct:  v.GetInt64("split.instant-launch.platform-pct"),
			CreatorPct:   v.GetInt64("split.instant-launch.creator-pct"),
			InfoFiPct:    v.GetInt64("split.instant-launch.infofi-pct"),
			LiquidityPct: v.GetInt64("split.instant-launch.liquidity-pct"),
		},

		ProjectRaiseReservedPct:  v.GetInt64("launch.project-raise-reserved-pct"),
		InstantLaunchReservedPct: v.GetInt64("launch.instant-launch-reserved-pct"),

		ClaimCooldown:        v.GetDuration("creator-fees.claim-cooldown"),
		RedistributionPeriod: v.GetDuration("creator-fees.redistribution-period"),

		SecondarySlippageBps: v.GetInt64("secondary.slippage-bps"),
		SellerProceedsPct:    v.GetInt64("secondary.seller-proceeds-pct"),
		LpLockDuration:       v.GetDuration("secondary.lp-lock-duration"),

		InstantLaunchStaysActive: v.GetBool("launch.instant-launch-stays-active"),
	}

	return Config{
		Params: params,
		Addresses: engine.Addresses{
			PlatformTreasury: v.GetString("addresses.platform-treasury"),
			InfoFiTreasury:   v.GetString("addresses.infofi-treasury"),
			Manager:          v.GetString("addresses.manager"),
			Authority:        v.GetString("addresses.authority"),
		},
		Oracle: OracleConfig{
			FeedURL:          v.GetString("oracle.feed-url"),
			PricePath:        v.GetString("oracle.price-path"),
			StaleAfter:       v.GetDuration("oracle.stale-after"),
			FallbackUsdPrice: fallback,
		},
	}, nil
}

func parseInt(s string) (math.Int, error) {
	out, ok := math.NewIntFromString(strings.TrimSpace(s))
	if !ok {
		return math.Int{}, types.ErrInvalidInput.Wrapf("not an integer: %q", s)
	}
	return out, nil
}
