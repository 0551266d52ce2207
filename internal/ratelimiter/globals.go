package ratelimiter

import "time"

// Telegram allows about one message per second in a private chat and
// twenty per minute in a group.
const (
	privateChatRate = time.Second
	groupChatRate   = 3 * time.Second
	queueSize       = 1000
)
