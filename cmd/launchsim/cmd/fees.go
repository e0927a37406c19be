package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moonforge-labs/launchpad/launch/engine"
	"github.com/moonforge-labs/launchpad/launch/types"
)

func newFeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fees",
		Short: "Print the anti-bot fee decay schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := loadParams(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, lt := range []types.LaunchType{types.LaunchTypeProjectRaise, types.LaunchTypeInstantLaunch} {
				policy, err := types.PolicyFor(lt, params)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s:\n", lt)
				fmt.Fprintf(out, "  blocks [0, %d):   %d bps\n", params.TierBreak1Blocks, engine.FeeRateBps(params, policy, 0))
				fmt.Fprintf(out, "  blocks [%d, %d):  %d bps\n", params.TierBreak1Blocks, params.TierBreak2Blocks, engine.FeeRateBps(params, policy, params.TierBreak1Blocks))
				fmt.Fprintf(out, "  blocks [%d, %d): %d bps\n", params.TierBreak2Blocks, params.TierBreak3Blocks, engine.FeeRateBps(params, policy, params.TierBreak2Blocks))
				fmt.Fprintf(out, "  blocks [%d, ∞):  %d bps\n", params.TierBreak3Blocks, engine.FeeRateBps(params, policy, params.TierBreak3Blocks))
			}
			fmt.Fprintf(out, "post-graduation:     %d bps\n", params.PostGraduationFeeBps)
			return nil
		},
	}
}
