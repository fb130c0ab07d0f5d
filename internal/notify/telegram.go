package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
)

const defaultBaseURL = "https://api.telegram.org"

// TelegramNotifier delivers report messages to a Telegram chat via the Bot API.
type TelegramNotifier struct {
	botToken string
	chatID   string
	baseURL  string
	httpc    *http.Client
}

// Compile-time interface check
var _ interfaces.Notifier = (*TelegramNotifier)(nil)

func NewTelegramNotifier(botToken, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  defaultBaseURL,
		httpc:    &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL overrides the Bot API endpoint. Used in tests.
func (t *TelegramNotifier) WithBaseURL(baseURL string) *TelegramNotifier {
	t.baseURL = baseURL
	return t
}

// SendText posts a message to the configured chat. Transient failures are
// retried up to 3 times with linear backoff.
func (t *TelegramNotifier) SendText(ctx context.Context, text string) error {
	if t.botToken == "" || t.chatID == "" {
		return errors.New("telegram bot token or chat id missing")
	}

	payload := map[string]any{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	bb, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
			logger.Debug(ctx, "Retrying telegram send", "attempt", attempt)
		}

		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bb))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.httpc.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("telegram http %d", resp.StatusCode)
			continue
		}
		return nil
	}

	return fmt.Errorf("telegram send failed after 3 attempts: %w", lastErr)
}
