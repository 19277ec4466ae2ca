package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tele "gopkg.in/telebot.v3"
)

// TelegramNotifier posts messages to one chat through the Bot API.
// The bot runs offline: it only sends, it never polls for updates.
type TelegramNotifier struct {
	bot    *tele.Bot
	chatID int64
}

// NewTelegramNotifier creates a send-only bot. apiURL may be empty for the public Bot API.
func NewTelegramNotifier(token string, chatID int64, apiURL string) (*TelegramNotifier, error) {
	pref := tele.Settings{
		URL:     apiURL,
		Token:   token,
		Offline: true,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: b, chatID: chatID}, nil
}

// Notify implements Notifier. Message.To is ignored; the configured chat receives every message.
func (t *TelegramNotifier) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := msg.Body
	if msg.Subject != "" {
		text = msg.Subject + "\n\n" + msg.Body
	}
	if _, err := t.bot.Send(tele.ChatID(t.chatID), text); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}
