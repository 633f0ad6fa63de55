package handlertest

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// BotContext подменяет telebot.Context в тестах обработчиков бота. Реализованы только методы,
// которые вызывают обработчики; остальные паникуют через встроенный nil интерфейс.
type BotContext struct {
	tele.Context

	User         *tele.User
	StartPayload string
	CallbackArgs []string
	IsCallback   bool

	// Sent тексты отправленных и отредактированных сообщений по порядку
	Sent []string
	// Markups клавиатуры, переданные вместе с Sent
	Markups []*tele.ReplyMarkup
	// Responses ответы на callback
	Responses []*tele.CallbackResponse
}

// NewBotContext создает контекст команды или callback от пользователя с username
func NewBotContext(username string) *BotContext {
	return &BotContext{User: &tele.User{ID: 42, Username: username}}
}

func (c *BotContext) Sender() *tele.User { return c.User }

func (c *BotContext) Args() []string { return c.CallbackArgs }

func (c *BotContext) Message() *tele.Message {
	return &tele.Message{Payload: c.StartPayload}
}

func (c *BotContext) Callback() *tele.Callback {
	if !c.IsCallback {
		return nil
	}
	return &tele.Callback{}
}

func (c *BotContext) Send(what interface{}, opts ...interface{}) error {
	c.record(what, opts)
	return nil
}

func (c *BotContext) Edit(what interface{}, opts ...interface{}) error {
	c.record(what, opts)
	return nil
}

func (c *BotContext) Respond(resp ...*tele.CallbackResponse) error {
	c.Responses = append(c.Responses, resp...)
	return nil
}

// Last возвращает последний отправленный текст и его клавиатуру
func (c *BotContext) Last() (string, *tele.ReplyMarkup) {
	if len(c.Sent) == 0 {
		return "", nil
	}
	return c.Sent[len(c.Sent)-1], c.Markups[len(c.Markups)-1]
}

func (c *BotContext) record(what interface{}, opts []interface{}) {
	c.Sent = append(c.Sent, fmt.Sprint(what))

	var markup *tele.ReplyMarkup
	for _, opt := range opts {
		switch o := opt.(type) {
		case *tele.ReplyMarkup:
			markup = o
		case *tele.SendOptions:
			if o.ReplyMarkup != nil {
				markup = o.ReplyMarkup
			}
		}
	}
	c.Markups = append(c.Markups, markup)
}

// NewCallbackContext создает контекст нажатия inline-кнопки с данными args
func NewCallbackContext(username string, args ...string) *BotContext {
	c := NewBotContext(username)
	c.IsCallback = true
	c.CallbackArgs = args
	return c
}

// ButtonArgs разбирает данные кнопки так же, как telebot для callback
func ButtonArgs(btn tele.InlineButton) []string {
	return strings.Split(btn.Data, "|")
}
