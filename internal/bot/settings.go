package bot

import (
	"sync"

	"textsummarizer/internal/summarizer"
)

// Length bounds accepted from chat users, in words.
const (
	MinLengthLower = 10
	MinLengthUpper = 100
	MaxLengthLower = 50
	MaxLengthUpper = 500
)

// Settings are the per-chat summarization parameters.
type Settings struct {
	MaxLength int
	MinLength int
	Sampling  bool
}

func DefaultSettings() Settings {
	return Settings{
		MaxLength: summarizer.DefaultMaxLength,
		MinLength: summarizer.DefaultMinLength,
	}
}

func (s Settings) request(text string) summarizer.Request {
	return summarizer.Request{
		Text:      text,
		MaxLength: s.MaxLength,
		MinLength: s.MinLength,
		Sampling:  s.Sampling,
	}
}

type settingsStore struct {
	mu       sync.RWMutex
	defaults Settings
	chats    map[int64]Settings
}

func newSettingsStore(defaults Settings) *settingsStore {
	return &settingsStore{
		defaults: defaults,
		chats:    make(map[int64]Settings),
	}
}

func (s *settingsStore) get(chatID int64) Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if settings, ok := s.chats[chatID]; ok {
		return settings
	}
	return s.defaults
}

func (s *settingsStore) update(chatID int64, fn func(*Settings)) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.chats[chatID]
	if !ok {
		settings = s.defaults
	}
	fn(&settings)
	s.chats[chatID] = settings

	return settings
}

func (s *settingsStore) reset(chatID int64) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.chats, chatID)
	return s.defaults
}
