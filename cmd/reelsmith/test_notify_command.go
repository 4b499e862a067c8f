package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelsmith/internal/config"
	"reelsmith/internal/notifications"
)

func newTestNotifyCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Notifications.TopicURL == "" {
				return fmt.Errorf("notifications.topic_url is not configured")
			}
			svc := notifications.NewService(cfg)
			if err := svc.TestNotification(cmd.Context()); err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
