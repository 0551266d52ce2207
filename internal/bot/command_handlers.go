package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const welcomeText = `🤖 *Welcome to Text Summarizer\!*

Send me any text or a link to an article and I'll reply with a short summary\.

– Change summary length with /max and /min \(in words\)
– Toggle random sampling with /sample on \| off
– See current parameters with /settings`

const settingsText = `*⚙️ Settings*

Maximum summary length: %d words
Minimum summary length: %d words
Sampling: %s`

func (b *Bot) handleStartCommand(ctx context.Context, chatID int64) error {
	return b.sendMessageWithKeyboard(ctx, chatID, welcomeText, getReturnKeyboard())
}

func (b *Bot) handleSettingsCommand(ctx context.Context, chatID int64) error {
	return b.sendSettings(ctx, chatID, b.settings.get(chatID))
}

func (b *Bot) sendSettings(ctx context.Context, chatID int64, s Settings) error {
	sampling := "off"
	if s.Sampling {
		sampling = "on"
	}

	if err := b.sendMessageWithKeyboard(
		ctx,
		chatID,
		fmt.Sprintf(settingsText, s.MaxLength, s.MinLength, sampling),
		getSettingsKeyboard(s),
	); err != nil {
		return fmt.Errorf("send message with keyboard: %w", err)
	}

	return nil
}

func (b *Bot) handleMaxCommand(ctx context.Context, args string, chatID int64) error {
	value, err := parseBound(args, MaxLengthLower, MaxLengthUpper)
	if err != nil {
		return b.replyUsage(ctx, chatID, "/max", MaxLengthLower, MaxLengthUpper, err)
	}

	current := b.settings.get(chatID)
	if value < current.MinLength {
		return b.sendMessage(ctx, chatID, fmt.Sprintf(
			"✖️ Maximum length can't be below minimum length \\(%d\\)\\.", current.MinLength))
	}

	s := b.settings.update(chatID, func(s *Settings) { s.MaxLength = value })
	return b.sendSettings(ctx, chatID, s)
}

func (b *Bot) handleMinCommand(ctx context.Context, args string, chatID int64) error {
	value, err := parseBound(args, MinLengthLower, MinLengthUpper)
	if err != nil {
		return b.replyUsage(ctx, chatID, "/min", MinLengthLower, MinLengthUpper, err)
	}

	current := b.settings.get(chatID)
	if value > current.MaxLength {
		return b.sendMessage(ctx, chatID, fmt.Sprintf(
			"✖️ Minimum length can't exceed maximum length \\(%d\\)\\.", current.MaxLength))
	}

	s := b.settings.update(chatID, func(s *Settings) { s.MinLength = value })
	return b.sendSettings(ctx, chatID, s)
}

func (b *Bot) handleSampleCommand(ctx context.Context, args string, chatID int64) error {
	var sampling bool

	switch strings.ToLower(strings.TrimSpace(args)) {
	case "on", "true", "1":
		sampling = true
	case "off", "false", "0":
		sampling = false
	case "":
		sampling = !b.settings.get(chatID).Sampling
	default:
		return b.sendMessage(ctx, chatID, "✖️ Usage: /sample on \\| off")
	}

	s := b.settings.update(chatID, func(s *Settings) { s.Sampling = sampling })
	return b.sendSettings(ctx, chatID, s)
}

func (b *Bot) replyUsage(
	ctx context.Context,
	chatID int64,
	command string,
	lower, upper int,
	parseErr error,
) error {
	sendErr := b.sendMessage(ctx, chatID, fmt.Sprintf(
		"✖️ Usage: %s N, where N is between %d and %d\\.", command, lower, upper))
	if sendErr != nil {
		return errors.Join(parseErr, fmt.Errorf("send message: %w", sendErr))
	}

	b.log.DebugContext(ctx, "Command argument is rejected",
		"command", command,
		"error", parseErr)

	return nil
}

func parseBound(args string, lower, upper int) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return 0, fmt.Errorf("parse bound: %w", err)
	}
	if value < lower || value > upper {
		return 0, fmt.Errorf("bound %d is out of range [%d, %d]", value, lower, upper)
	}
	return value, nil
}

// splitCommand returns the command name without the bot mention and its
// arguments.
func splitCommand(text string) (string, string) {
	command, args, _ := strings.Cut(strings.TrimSpace(text), " ")
	command, _, _ = strings.Cut(command, "@")

	return strings.ToLower(command), strings.TrimSpace(args)
}
