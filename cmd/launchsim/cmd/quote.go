package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/moonforge-labs/launchpad/launch/types"
)

const flagBlock = "block"

func newQuoteCmd() *cobra.Command {
	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote trades against a fresh instant-launch pool",
	}
	quoteCmd.PersistentFlags().Int64(flagBlock, 0, "blocks since launch at quote time")

	buyCmd := &cobra.Command{
		Use:   "buy <bnb-amount>",
		Short: "Quote a buy for the given whole-BNB amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := loadParams(cmd)
			if err != nil {
				return err
			}
			bnbIn, err := parseBnb(args[0])
			if err != nil {
				return err
			}
			block, _ := cmd.Flags().GetInt64(flagBlock)

			eng, _, err := newSimEngine(params)
			if err != nil {
				return err
			}
			quote, err := eng.QuoteBuy(simCtx(block), simToken, bnbIn)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tokens out:      %s\n", quote.TokensOut)
			fmt.Fprintf(out, "fee:             %s bnb (%d bps)\n", fmtBnb(quote.FeeBnb), quote.FeeBps)
			fmt.Fprintf(out, "price per token: %s bnb\n", quote.PricePerToken)
			return nil
		},
	}

	sellCmd := &cobra.Command{
		Use:   "sell <bnb-buy-amount>",
		Short: "Quote the round trip: buy with the given BNB, then sell everything back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := loadParams(cmd)
			if err != nil {
				return err
			}
			bnbIn, err := parseBnb(args[0])
			if err != nil {
				return err
			}
			block, _ := cmd.Flags().GetInt64(flagBlock)

			eng, bk, err := newSimEngine(params)
			if err != nil {
				return err
			}
			ctx := simCtx(block)
			bk.Mint(simBuyer, types.BnbDenom, bnbIn)
			tokensOut, err := eng.Buy(ctx, simBuyer, simToken, bnbIn, math.ZeroInt())
			if err != nil {
				return err
			}
			quote, err := eng.QuoteSell(ctx, simToken, tokensOut)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tokens bought:   %s\n", tokensOut)
			fmt.Fprintf(out, "bnb back:        %s (fee %d bps)\n", fmtBnb(quote.BnbOut), quote.FeeBps)
			fmt.Fprintf(out, "round-trip cost: %s bnb\n", fmtBnb(bnbIn.Sub(quote.BnbOut)))
			return nil
		},
	}

	quoteCmd.AddCommand(buyCmd, sellCmd)
	return quoteCmd
}
