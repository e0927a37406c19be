package engine

import (
	"github.com/moonforge-labs/launchpad/launch/types"
)

// Fee stage labels exposed by the feeInfo view.
const (
	StageTier1          = "tier_1"
	StageTier2          = "tier_2"
	StageTier3          = "tier_3"
	StageFinal          = "final"
	StagePostGraduation = "post_graduation"
)

// FeeRateBps is the anti-bot fee schedule: a four-tier decay keyed on blocks
// since launch, so early-block snipers pay materially more than organic late
// buyers. Tier intervals are half-open: [0,b1) [b1,b2) [b2,b3) [b3,∞).
// The final tier differs by launch type.
func FeeRateBps(p types.Params, policy types.LaunchPolicy, blocksSinceLaunch int64) int64 {
	switch {
	case blocksSinceLaunch < p.TierBreak1Blocks:
		return p.FeeTier1Bps
	case blocksSinceLaunch < p.TierBreak2Blocks:
		return p.FeeTier2Bps
	case blocksSinceLaunch < p.TierBreak3Blocks:
		return p.FeeTier3Bps
	default:
		return policy.FinalTierBps()
	}
}

// feeRateBps resolves the rate for a pool at the given height. Graduated or
// closed pools pay the flat post-graduation rate.
func (e *Engine) feeRateBps(pool types.Pool, policy types.LaunchPolicy, height int64) int64 {
	if pool.Graduated || !pool.Active {
		return e.params.PostGraduationFeeBps
	}
	return FeeRateBps(e.params, policy, height-pool.LaunchBlock)
}

// feeStage labels the pool's position on the decay curve and reports how many
// blocks remain until the next tier (zero once on the final tier).
func (e *Engine) feeStage(pool types.Pool, height int64) (stage string, blocksUntilNext int64) {
	if pool.Graduated || !pool.Active {
		return StagePostGraduation, 0
	}
	blocks := height - pool.LaunchBlock
	switch {
	case blocks < e.params.TierBreak1Blocks:
		return StageTier1, e.params.TierBreak1Blocks - blocks
	case blocks < e.params.TierBreak2Blocks:
		return StageTier2, e.params.TierBreak2Blocks - blocks
	case blocks < e.params.TierBreak3Blocks:
		return StageTier3, e.params.TierBreak3Blocks - blocks
	default:
		return StageFinal, 0
	}
}
