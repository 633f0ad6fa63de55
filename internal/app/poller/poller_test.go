package poller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/visionhub/internal/infra/config"
)

func TestNewPoller(t *testing.T) {
	cfg := &config.Config{}
	cfg.TelegramBot.Mode = config.ModePolling
	cfg.TelegramBot.PollInterval = 5 * time.Second

	p, err := NewPoller(cfg)
	require.NoError(t, err)
	long, ok := p.(*telebot.LongPoller)
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, long.Timeout)

	cfg.TelegramBot.Mode = "WEBHOOK"
	cfg.TelegramBot.ListenAddr = ":8443"
	cfg.TelegramBot.WebhookURL = "https://hub.example.com/bot"
	p, err = NewPoller(cfg)
	require.NoError(t, err)
	hook, ok := p.(*telebot.Webhook)
	require.True(t, ok)
	assert.Equal(t, ":8443", hook.Listen)
	assert.Equal(t, "https://hub.example.com/bot", hook.Endpoint.PublicURL)

	cfg.TelegramBot.WebhookURL = ""
	_, err = NewPoller(cfg)
	assert.Error(t, err)
}
