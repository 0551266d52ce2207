package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"textsummarizer/internal/bot"
	"textsummarizer/internal/webpage"

	"github.com/spf13/cobra"
)

func newBotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		Long: `Run the Telegram bot until SIGINT or SIGTERM.

Requires TOKEN. ALLOWED_USERS restricts who may use the bot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBot(cmd.Context())
		},
	}
}

func (a *app) runBot(ctx context.Context) error {
	if err := a.cfg.ValidateBot(); err != nil {
		return err
	}

	start := time.Now()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a.serveMetrics(ctx)

	pages := webpage.NewFetcher(&http.Client{Timeout: a.cfg.RequestTimeout}, a.log)
	defaults := bot.Settings{
		MaxLength: a.cfg.MaxLength,
		MinLength: a.cfg.MinLength,
	}

	botInst, err := bot.New(a.cfg.Token, a.newEngine(), pages, a.cfg.AllowedUsers, defaults, a.cfg.MaxInputWords, a.log)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	defer botInst.Stop()

	a.log.InfoContext(ctx, "Bot is started",
		"modelID", a.cfg.ModelID,
		"allowedUsersCount", len(a.cfg.AllowedUsers))

	botInst.Start(ctx)

	a.log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())

	return nil
}
