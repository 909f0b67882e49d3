package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"accountsapi/internal/core/telemetry"
	"accountsapi/pkg/config"
)

const pingTimeout = 5 * time.Second

func newPingCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Open the configured database pool once and report connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)

			if err != nil {
				return err
			}

			store, err := newStorage(cfg.Database, telemetry.NewNoOpProbe(), nil, zap.NewNop())

			if err != nil {
				return err
			}

			defer store.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
			defer cancel()

			if err := store.Pinger.Ping(ctx); err != nil {
				return fmt.Errorf("%s unreachable: %w", cfg.Database.Driver, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", cfg.Database.Driver)

			return nil
		},
	}
}
