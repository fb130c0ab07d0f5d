package interfaces

import "context"

// Notifier delivers a formatted text blob to a chat-style sink.
// It is intentionally small so components can depend on it without importing
// concrete implementations (e.g. Telegram).
type Notifier interface {
	SendText(ctx context.Context, text string) error
}
