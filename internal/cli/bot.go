package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	telegram "armor-vision/internal/api"
	"armor-vision/internal/container"
)

func newBotCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot that detects armor plates on photos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.cfg.TelegramToken == "" {
				return errors.New("TELEGRAM_TOKEN is required")
			}
			ctx := cmd.Context()

			c, err := container.Build(ctx, s.cfg, s.log)
			if err != nil {
				return err
			}
			defer c.Close(context.Background())

			bot, err := telegram.NewBot(s.cfg.TelegramToken, c, s.log)
			if err != nil {
				return err
			}

			s.log.Info("bot is running")
			return bot.Run(ctx)
		},
	}
}
