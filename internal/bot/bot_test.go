package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"textsummarizer/internal/summarizer"
	"textsummarizer/internal/webpage"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTelegram struct {
	mu        sync.Mutex
	messages  []*bot.SendMessageParams
	actions   int
	callbacks []string
}

func (f *fakeTelegram) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.messages = append(f.messages, params)
	return &models.Message{ID: len(f.messages)}, nil
}

func (f *fakeTelegram) SendChatAction(context.Context, *bot.SendChatActionParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.actions++
	return true, nil
}

func (f *fakeTelegram) AnswerCallbackQuery(_ context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.callbacks = append(f.callbacks, params.CallbackQueryID)
	return true, nil
}

func (f *fakeTelegram) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	texts := make([]string, 0, len(f.messages))
	for _, m := range f.messages {
		texts = append(texts, m.Text)
	}
	return texts
}

func (f *fakeTelegram) lastText(t *testing.T) string {
	t.Helper()

	texts := f.texts()
	require.NotEmpty(t, texts)
	return texts[len(texts)-1]
}

type stubSummarizer struct {
	mu       sync.Mutex
	requests []summarizer.Request
	result   *summarizer.Result
	err      error
}

func (s *stubSummarizer) Summarize(_ context.Context, req summarizer.Request) (*summarizer.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	return s.result, s.err
}

type stubPages struct {
	doc  *webpage.Document
	err  error
	urls []string
}

func (s *stubPages) Fetch(_ context.Context, rawURL string) (*webpage.Document, error) {
	s.urls = append(s.urls, rawURL)
	return s.doc, s.err
}

const testMaxInputWords = 1000

func newTestBot(s summarizer.Summarizer, pages PageFetcher, allowed ...int64) (*Bot, *fakeTelegram) {
	tg := &fakeTelegram{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return newBot(tg, tg, s, pages, allowed, DefaultSettings(), testMaxInputWords, log), tg
}

func textUpdate(userID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			From: &models.User{ID: userID},
			Chat: models.Chat{ID: userID, Type: models.ChatTypePrivate},
			Text: text,
		},
	}
}

func TestHandleUpdateSummarizesText(t *testing.T) {
	s := &stubSummarizer{result: &summarizer.Result{
		Summary:          "Short summary.",
		OriginalLength:   40,
		SummaryLength:    2,
		CompressionRatio: 0.05,
	}}
	b, tg := newTestBot(s, &stubPages{})

	b.handleUpdate(context.Background(), nil, textUpdate(7, "  A long text about many things.  "))

	require.Len(t, s.requests, 1)
	assert.Equal(t, summarizer.Request{
		Text:      "A long text about many things.",
		MaxLength: summarizer.DefaultMaxLength,
		MinLength: summarizer.DefaultMinLength,
	}, s.requests[0])

	text := tg.lastText(t)
	assert.Contains(t, text, `Short summary\.`)
	assert.Contains(t, text, "40 → 2 words")
	assert.Contains(t, text, "5%")
	assert.Equal(t, models.ParseModeMarkdown, tg.messages[0].ParseMode)
}

func TestHandleUpdateSummarizesLink(t *testing.T) {
	s := &stubSummarizer{result: &summarizer.Result{Summary: "Gist.", OriginalLength: 10, SummaryLength: 1, CompressionRatio: 0.1}}
	pages := &stubPages{doc: &webpage.Document{
		URL:   "https://example.com/a",
		Title: "Big news",
		Text:  "Article body text.",
	}}
	b, tg := newTestBot(s, pages)

	b.handleUpdate(context.Background(), nil, textUpdate(7, "https://example.com/a"))

	assert.Equal(t, []string{"https://example.com/a"}, pages.urls)
	require.Len(t, s.requests, 1)
	assert.Equal(t, "Article body text.", s.requests[0].Text)
	assert.Contains(t, tg.lastText(t), "*Big news*")
}

func TestHandleUpdateTruncatesLongPage(t *testing.T) {
	engine := summarizer.New(
		summarizer.ExtractiveModelID,
		summarizer.NewRouter(nil, nil),
		summarizer.WithMaxInputWords(testMaxInputWords),
	)
	pages := &stubPages{doc: &webpage.Document{
		URL:   "https://example.com/long",
		Title: "Long read",
		Text:  strings.Repeat("Solar panels keep getting cheaper every single year now. ", 150),
	}}
	b, tg := newTestBot(engine, pages)

	b.handleUpdate(context.Background(), nil, textUpdate(7, "https://example.com/long"))

	text := tg.lastText(t)
	assert.Contains(t, text, "*Long read*")
	assert.Contains(t, text, "1000 → ")
	assert.NotContains(t, text, "too long")
}

func TestHandleUpdateReportsLinkFailure(t *testing.T) {
	s := &stubSummarizer{}
	b, tg := newTestBot(s, &stubPages{err: errors.New("boom")})

	b.handleUpdate(context.Background(), nil, textUpdate(7, "https://example.com/a"))

	assert.Empty(t, s.requests)
	assert.Contains(t, tg.lastText(t), "Failed to read text")
}

func TestHandleUpdateRendersInvalidInput(t *testing.T) {
	s := &stubSummarizer{err: &summarizer.InvalidInputError{Reason: "input text cannot be empty"}}
	b, tg := newTestBot(s, &stubPages{})

	b.handleUpdate(context.Background(), nil, textUpdate(7, "hello"))

	assert.Equal(t, `✖️ Input text cannot be empty\.`, tg.lastText(t))
}

func TestHandleUpdateHidesModelErrors(t *testing.T) {
	s := &stubSummarizer{err: &summarizer.ModelUnavailableError{
		ModelID: "facebook/bart-large-cnn",
		Err:     errors.New("secret upstream detail"),
	}}
	b, tg := newTestBot(s, &stubPages{})

	b.handleUpdate(context.Background(), nil, textUpdate(7, "hello"))

	text := tg.lastText(t)
	assert.Contains(t, text, "Failed to summarize")
	assert.NotContains(t, text, "secret")
}

func TestHandleUpdateIgnoresDisallowedUsers(t *testing.T) {
	s := &stubSummarizer{}
	b, tg := newTestBot(s, &stubPages{}, 1, 2)

	b.handleUpdate(context.Background(), nil, textUpdate(3, "hello"))

	assert.Empty(t, s.requests)
	assert.Empty(t, tg.texts())
}

func TestLengthCommandsUpdateSettings(t *testing.T) {
	s := &stubSummarizer{result: &summarizer.Result{Summary: "x"}}
	b, tg := newTestBot(s, &stubPages{})
	ctx := context.Background()

	b.handleUpdate(ctx, nil, textUpdate(7, "/max 200"))
	b.handleUpdate(ctx, nil, textUpdate(7, "/min@summary_bot 40"))
	b.handleUpdate(ctx, nil, textUpdate(7, "/sample on"))
	assert.Contains(t, tg.lastText(t), "Sampling: on")

	b.handleUpdate(ctx, nil, textUpdate(7, "some text"))

	require.Len(t, s.requests, 1)
	assert.Equal(t, 200, s.requests[0].MaxLength)
	assert.Equal(t, 40, s.requests[0].MinLength)
	assert.True(t, s.requests[0].Sampling)

	// Other chats keep the defaults.
	assert.Equal(t, DefaultSettings(), b.settings.get(8))
}

func TestLengthCommandsRejectOutOfRange(t *testing.T) {
	b, tg := newTestBot(&stubSummarizer{}, &stubPages{})
	ctx := context.Background()

	tests := []struct {
		text string
		want string
	}{
		{"/max 20", "between 50 and 500"},
		{"/max lots", "between 50 and 500"},
		{"/min 101", "between 10 and 100"},
		{"/sample maybe", "Usage: /sample"},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			b.handleUpdate(ctx, nil, textUpdate(7, test.text))
			assert.Contains(t, tg.lastText(t), test.want)
		})
	}

	assert.Equal(t, DefaultSettings(), b.settings.get(7))
}

func TestMinCannotExceedMax(t *testing.T) {
	b, tg := newTestBot(&stubSummarizer{}, &stubPages{})
	ctx := context.Background()

	b.handleUpdate(ctx, nil, textUpdate(7, "/max 60"))
	b.handleUpdate(ctx, nil, textUpdate(7, "/min 80"))

	assert.Contains(t, tg.lastText(t), "can't exceed maximum length")
	assert.Equal(t, 30, b.settings.get(7).MinLength)
}

func TestCallbackQueryTogglesAndResetsSettings(t *testing.T) {
	b, tg := newTestBot(&stubSummarizer{}, &stubPages{})
	ctx := context.Background()

	callback := func(id, data string) *models.Update {
		return &models.Update{CallbackQuery: &models.CallbackQuery{
			ID:   id,
			From: models.User{ID: 7},
			Data: data,
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{Chat: models.Chat{ID: 7}},
			},
		}}
	}

	b.handleUpdate(ctx, nil, callback("cb1", callbackSamplingToggle))
	assert.True(t, b.settings.get(7).Sampling)

	b.handleUpdate(ctx, nil, callback("cb2", callbackSettingsReset))
	assert.Equal(t, DefaultSettings(), b.settings.get(7))

	assert.Equal(t, []string{"cb1", "cb2"}, tg.callbacks)
	assert.Contains(t, tg.lastText(t), "Sampling: off")
}

func TestSplitCommand(t *testing.T) {
	command, args := splitCommand("/MAX@summary_bot  250 ")
	assert.Equal(t, "/max", command)
	assert.Equal(t, "250", args)
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "25%", formatRatio(0.25))
	assert.Equal(t, "0%", formatRatio(0))
	assert.Equal(t, "133%", formatRatio(4.0/3.0))
}
