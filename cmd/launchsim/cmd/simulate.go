package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/moonforge-labs/launchpad/launch/types"
)

const (
	flagBuys      = "buys"
	flagBuySize   = "buy-size"
	flagBlockStep = "block-step"
)

func newSimulateCmd() *cobra.Command {
	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a buy session on a fresh instant-launch pool",
		Long: `simulate creates an instant-launch pool and executes a series of
equal-sized buys, printing reserves, price and graduation progress after each
one. The session stops early once the pool graduates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := loadParams(cmd)
			if err != nil {
				return err
			}
			buys, _ := cmd.Flags().GetInt(flagBuys)
			buySize, _ := cmd.Flags().GetString(flagBuySize)
			blockStep, _ := cmd.Flags().GetInt64(flagBlockStep)

			bnbPerBuy, err := parseBnb(buySize)
			if err != nil {
				return err
			}

			eng, bk, err := newSimEngine(params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-6s %-8s %-14s %-14s %-22s %s\n",
				"buy", "block", "fee bps", "bnb reserve", "price (bnb/token)", "progress")

			for i := 1; i <= buys; i++ {
				height := int64(i) * blockStep
				ctx := simCtx(height)

				bk.Mint(simBuyer, types.BnbDenom, bnbPerBuy)
				if _, err := eng.Buy(ctx, simBuyer, simToken, bnbPerBuy, math.ZeroInt()); err != nil {
					return err
				}

				pool, err := eng.GetPool(simToken)
				if err != nil {
					return err
				}
				info, err := eng.PoolInfo(ctx, simToken)
				if err != nil {
					return err
				}
				feeInfo, err := eng.FeeInfo(ctx, simToken)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%-6d %-8d %-14d %-14s %-22s %s%%\n",
					i, height, feeInfo.CurrentRateBps, fmtBnb(pool.BnbReserve),
					info.CurrentPrice, info.GraduationProgressPct)

				if pool.Graduated {
					fmt.Fprintf(out, "pool graduated after %d buys (reserve %s bnb, market cap %s bnb)\n",
						i, fmtBnb(pool.BnbReserve), fmtBnb(pool.MarketCap))
					break
				}
			}
			return nil
		},
	}

	simulateCmd.Flags().Int(flagBuys, 20, "number of buys to execute")
	simulateCmd.Flags().String(flagBuySize, "5", "whole BNB per buy")
	simulateCmd.Flags().Int64(flagBlockStep, 10, "blocks between buys")
	return simulateCmd
}
