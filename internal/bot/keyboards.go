package bot

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	callbackSettings       = "settings"
	callbackSamplingToggle = "settings_sampling_toggle"
	callbackSettingsReset  = "settings_reset"
)

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string) error {
	return b.sendMessageWithKeyboard(ctx, chatID, text, nil)
}

func (b *Bot) sendMessageWithKeyboard(
	ctx context.Context,
	chatID int64,
	text string,
	keyboard [][]models.InlineKeyboardButton,
) error {
	normalizedText := strings.ToValidUTF8(text, "?")
	if normalizedText != text {
		b.log.WarnContext(ctx, "Message text had invalid UTF-8 and was normalized",
			"chatID", chatID,
			"originalLen", len(text),
			"normalizedLen", len(normalizedText))
	}

	disablePreview := true
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   normalizedText,

		// See https://core.telegram.org/bots/api#markdownv2-style.
		ParseMode: models.ParseModeMarkdown,

		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: &disablePreview},
	}
	if len(keyboard) > 0 {
		params.ReplyMarkup = &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}
	}

	_, err := b.sender.SendMessage(ctx, params)
	return err
}

func getSettingsKeyboard(s Settings) [][]models.InlineKeyboardButton {
	sampling := "🎲 Sampling: off"
	if s.Sampling {
		sampling = "🎲 Sampling: on"
	}

	return [][]models.InlineKeyboardButton{
		{{Text: sampling, CallbackData: callbackSamplingToggle}},
		{{Text: "↩️ Reset to defaults", CallbackData: callbackSettingsReset}},
	}
}

func getReturnKeyboard() [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{{Text: "⚙️ Settings", CallbackData: callbackSettings}},
	}
}
