package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, callback *models.CallbackQuery) error {
	chatID := callbackChatID(callback)

	var errs []error

	switch callback.Data {
	case callbackSettings:
		if err := b.handleSettingsCommand(ctx, chatID); err != nil {
			errs = append(errs, fmt.Errorf("handle settings command: %w", err))
		}

	case callbackSamplingToggle:
		s := b.settings.update(chatID, func(s *Settings) { s.Sampling = !s.Sampling })
		if err := b.sendSettings(ctx, chatID, s); err != nil {
			errs = append(errs, fmt.Errorf("send settings: %w", err))
		}

	case callbackSettingsReset:
		s := b.settings.reset(chatID)
		if err := b.sendSettings(ctx, chatID, s); err != nil {
			errs = append(errs, fmt.Errorf("send settings: %w", err))
		}

	default:
		errs = append(errs, fmt.Errorf("unknown callback data %q", callback.Data))
	}

	if _, err := b.api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
	}); err != nil {
		errs = append(errs, fmt.Errorf("answer callback query: %w", err))
	}

	return errors.Join(errs...)
}
