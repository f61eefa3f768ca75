package notify

import (
	"fmt"
	"log/slog"

	"github.com/contre95/soulkeep/src/features/config"
	"github.com/contre95/soulkeep/src/history"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram pushes record lifecycle events to a Telegram chat. Send
// failures are logged and dropped; notifications never fail a flow.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram creates a Telegram notifier from config. Returns a no-op
// notifier when the feature is disabled.
func NewTelegram(cfg *config.Manager) (history.Notifier, error) {
	tg := cfg.Get().Telegram
	if !tg.Enabled {
		return history.NopNotifier{}, nil
	}

	bot, err := tgbotapi.NewBotAPI(tg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}
	slog.Info("Telegram notifier enabled", "bot", bot.Self.UserName)
	return &Telegram{bot: bot, chatID: tg.ChatID}, nil
}

func (t *Telegram) RecordStored(identifier, originPath string) {
	t.send(fmt.Sprintf("📥 Recorded import origin\n%s\n%s", identifier, originPath))
}

func (t *Telegram) RecordEvicted(identifier, originPath string) {
	t.send(fmt.Sprintf("🗑 Evicted import record\n%s\n%s", identifier, originPath))
}

func (t *Telegram) send(text string) {
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		slog.Warn("failed to send telegram notification", "error", err)
	}
}
