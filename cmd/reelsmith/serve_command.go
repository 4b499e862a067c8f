package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"reelsmith/internal/api"
	"reelsmith/internal/logging"
)

func newServeCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := buildComponents(*configFlag, "")
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if components.store != nil {
				release, err := components.store.Acquire()
				if err != nil {
					return err
				}
				defer release()
			}

			server, err := api.NewServer(
				components.cfg.Server.Bind,
				components.orch,
				components.store,
				components.notifier,
				components.checkers,
				components.logger,
			)
			if err != nil {
				return err
			}
			if err := server.Start(ctx); err != nil {
				return fmt.Errorf("start server: %w", err)
			}
			defer server.Stop()

			fmt.Fprintf(cmd.OutOrStdout(), "reelsmith listening on %s (mode: %s)\n",
				server.Addr(), components.cfg.Pipeline.Mode)

			<-ctx.Done()
			components.logger.Info("shutting down", logging.String("reason", context.Cause(ctx).Error()))
			return nil
		},
	}
}
