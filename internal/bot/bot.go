package bot

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"textsummarizer/internal/ratelimiter"
	"textsummarizer/internal/summarizer"
	"textsummarizer/internal/webpage"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const updateProcessingTimeout = 3 * time.Minute

// telegramAPI is the part of the Telegram client the handlers use.
type telegramAPI interface {
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// PageFetcher turns a URL into readable text.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*webpage.Document, error)
}

type Bot struct {
	client        *bot.Bot
	api           telegramAPI
	sender        ratelimiter.Sender
	rateLimiter   *ratelimiter.RateLimiter
	summarizer    summarizer.Summarizer
	pages         PageFetcher
	settings      *settingsStore
	allowedUsers  []int64
	maxInputWords int
	log           *slog.Logger
}

func New(
	token string,
	s summarizer.Summarizer,
	pages PageFetcher,
	allowedUsers []int64,
	defaults Settings,
	maxInputWords int,
	log *slog.Logger,
) (*Bot, error) {
	b := newBot(nil, nil, s, pages, allowedUsers, defaults, maxInputWords, log)

	client, err := bot.New(strings.TrimSpace(token), bot.WithDefaultHandler(b.handleUpdate))
	if err != nil {
		return nil, fmt.Errorf("create telegram client: %w", err)
	}

	b.client = client
	b.api = client
	b.rateLimiter = ratelimiter.New(client, log)
	b.sender = b.rateLimiter

	return b, nil
}

func newBot(
	api telegramAPI,
	sender ratelimiter.Sender,
	s summarizer.Summarizer,
	pages PageFetcher,
	allowedUsers []int64,
	defaults Settings,
	maxInputWords int,
	log *slog.Logger,
) *Bot {
	return &Bot{
		api:           api,
		sender:        sender,
		summarizer:    s,
		pages:         pages,
		settings:      newSettingsStore(defaults),
		allowedUsers:  allowedUsers,
		maxInputWords: maxInputWords,
		log:           log,
	}
}

// Start polls Telegram for updates until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	b.client.Start(ctx)

	b.log.InfoContext(ctx, "Bot context is done",
		"error", ctx.Err())
}

func (b *Bot) Stop() {
	if b.rateLimiter != nil {
		b.rateLimiter.Stop()
	}
}

func (b *Bot) handleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	updateCtx, cancel := context.WithTimeout(ctx, updateProcessingTimeout)
	defer cancel()

	switch {
	case update.Message != nil && update.Message.From != nil:
		message := update.Message
		userID := message.From.ID

		if !b.userAllowed(userID) {
			b.log.DebugContext(updateCtx, "User is not allowed",
				"userID", userID,
				"chatID", message.Chat.ID,
				"username", message.From.Username,
				"chatType", string(message.Chat.Type))

			return
		}

		if err := b.handleMessage(updateCtx, message); err != nil {
			b.log.ErrorContext(updateCtx, "Failed to handle message",
				"error", err,
				"chatID", message.Chat.ID,
				"userID", userID,
				"chatType", string(message.Chat.Type),
				"messageID", message.ID)
		}

	case update.CallbackQuery != nil:
		callback := update.CallbackQuery
		chatID := callbackChatID(callback)

		if !b.userAllowed(callback.From.ID) {
			b.log.DebugContext(updateCtx, "User is not allowed",
				"userID", callback.From.ID,
				"chatID", chatID,
				"username", callback.From.Username,
				"data", callback.Data)

			return
		}

		if err := b.handleCallbackQuery(updateCtx, callback); err != nil {
			b.log.ErrorContext(updateCtx, "Failed to handle callback query",
				"error", err,
				"chatID", chatID,
				"userID", callback.From.ID,
				"data", callback.Data)
		}
	}
}

func (b *Bot) userAllowed(userID int64) bool {
	return len(b.allowedUsers) == 0 || slices.Contains(b.allowedUsers, userID)
}

func callbackChatID(cb *models.CallbackQuery) int64 {
	switch {
	case cb == nil:
		return 0
	case cb.Message.Message != nil:
		return cb.Message.Message.Chat.ID
	case cb.Message.InaccessibleMessage != nil:
		return cb.Message.InaccessibleMessage.Chat.ID
	default:
		return cb.From.ID
	}
}
