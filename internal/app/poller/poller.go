package poller

import (
	"errors"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/visionhub/internal/infra/config"
)

// NewPoller создаёт Poller в зависимости от режима.
func NewPoller(cfg *config.Config) (telebot.Poller, error) {
	bot := cfg.TelegramBot
	if strings.ToLower(bot.Mode) == config.ModeWebhook {
		if bot.WebhookURL == "" {
			return nil, errors.New("webhook mode requires telegram_bot.webhook_url")
		}
		return &telebot.Webhook{
			Listen: bot.ListenAddr,
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: bot.WebhookURL,
			},
		}, nil
	}
	return &telebot.LongPoller{Timeout: bot.PollInterval}, nil
}
