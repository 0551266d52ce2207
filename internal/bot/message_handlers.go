package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"textsummarizer/internal/summarizer"
	"textsummarizer/internal/webpage"

	"github.com/go-telegram/bot/models"
)

func (b *Bot) handleMessage(ctx context.Context, message *models.Message) error {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	if strings.HasPrefix(text, "/") {
		command, args := splitCommand(text)

		switch command {
		case "/start", "/help":
			return b.handleStartCommand(ctx, chatID)
		case "/settings":
			return b.handleSettingsCommand(ctx, chatID)
		case "/max":
			return b.handleMaxCommand(ctx, args, chatID)
		case "/min":
			return b.handleMinCommand(ctx, args, chatID)
		case "/sample":
			return b.handleSampleCommand(ctx, args, chatID)
		default:
			return b.sendMessage(ctx, chatID, "✖️ Unknown command\\. Try /start\\.")
		}
	}

	if text == "" {
		return b.sendMessage(ctx, chatID, "✖️ Send me some text or a link to summarize\\.")
	}

	return b.withSpinner(ctx, chatID, func() error {
		if rawURL, ok := webpage.SingleURL(text); ok {
			return b.handleURL(ctx, rawURL, chatID)
		}
		return b.handleText(ctx, text, "", chatID)
	})
}

func (b *Bot) handleURL(ctx context.Context, rawURL string, chatID int64) error {
	doc, err := b.pages.Fetch(ctx, rawURL)
	if err != nil {
		errs := []error{fmt.Errorf("fetch page: %w", err)}

		sendErr := b.sendMessage(ctx, chatID, "❌ Failed to read text from this link\\.")
		if sendErr != nil {
			errs = append(errs, fmt.Errorf("send message: %w", sendErr))
		}

		return errors.Join(errs...)
	}

	text, truncated := doc.TruncatedText(b.maxInputWords)
	if truncated {
		b.log.InfoContext(ctx, "Page text is truncated",
			"url", doc.URL,
			"chatID", chatID,
			"maxInputWords", b.maxInputWords)
	}

	return b.handleText(ctx, text, doc.Title, chatID)
}

func (b *Bot) handleText(ctx context.Context, text, title string, chatID int64) error {
	settings := b.settings.get(chatID)

	result, err := b.summarizer.Summarize(ctx, settings.request(text))
	if err != nil {
		var invalid *summarizer.InvalidInputError
		if errors.As(err, &invalid) {
			return b.sendMessage(ctx, chatID, "✖️ "+escapeSentence(invalid.Reason))
		}

		errs := []error{fmt.Errorf("summarize: %w", err)}

		sendErr := b.sendMessage(ctx, chatID, "❌ Failed to summarize\\. Please try again later\\.")
		if sendErr != nil {
			errs = append(errs, fmt.Errorf("send message: %w", sendErr))
		}

		return errors.Join(errs...)
	}

	if err = b.sendMessage(ctx, chatID, formatSummary(result, title)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
