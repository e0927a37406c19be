package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/moonforge-labs/launchpad/api"
	"github.com/moonforge-labs/launchpad/launch/types"
)

const (
	flagAddr      = "addr"
	flagBlockTime = "block-time"
)

// newServeCmd serves the read-only query API over the sandbox engine. Block
// height advances with wall time so fee-decay quotes move like they would on
// chain.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query API over the sandbox engine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := loadParams(cmd)
			if err != nil {
				return err
			}
			eng, _, err := newSimEngine(params)
			if err != nil {
				return err
			}

			addr, err := cmd.Flags().GetString(flagAddr)
			if err != nil {
				return err
			}
			blockTime, err := cmd.Flags().GetDuration(flagBlockTime)
			if err != nil {
				return err
			}

			start := time.Now()
			ctxFor := func() types.Context {
				height := int64(time.Since(start) / blockTime)
				return simCtx(height)
			}

			cfg := api.DefaultConfig()
			cfg.Addr = addr
			logger := log.NewLogger(cmd.OutOrStdout())
			srv, err := api.NewServer(eng, ctxFor, cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Start(ctx)
		},
	}

	cmd.Flags().String(flagAddr, "127.0.0.1:5000", "listen address")
	cmd.Flags().Duration(flagBlockTime, 3*time.Second, "simulated block interval")
	return cmd
}
