package answer_handler

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/visionhub/internal/app/handlers/handlertest"
	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/open_module_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/submit_handler"
	messageService "github.com/IT-Nick/visionhub/internal/domain/messages/service"
	"github.com/IT-Nick/visionhub/internal/domain/model"
)

// pick возвращает кнопку варианта с текстом text
func pick(t *testing.T, markup *tele.ReplyMarkup, text string) tele.InlineButton {
	t.Helper()
	require.NotNil(t, markup)
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.Text == text {
				return btn
			}
		}
	}
	t.Fatalf("button %q not found", text)
	return tele.InlineButton{}
}

func TestBotFlow_AnswerAndSubmit(t *testing.T) {
	env := handlertest.NewEnv(t)
	msgs := messageService.NewMessageService(nil)
	open := open_module_handler.NewOpenModuleHandler(env.Users, env.Catalog, env.Attempts, msgs, env.Logger)
	answer := NewAnswerHandler(env.Users, env.Attempts, msgs, env.Logger)
	submit := submit_handler.NewSubmitHandler(env.Users, env.Attempts, msgs, env.Logger)

	c := handlertest.NewCallbackContext(handlertest.StaffTelegram, strconv.Itoa(env.Module.ID))
	require.NoError(t, open.Handle(c))
	_, markup := c.Last()

	// Первый вопрос отвечаем верно, второй неверно: 1 из 2 проходит порог 0.5
	c = handlertest.NewCallbackContext(handlertest.StaffTelegram, handlertest.ButtonArgs(pick(t, markup, "Слева"))...)
	require.NoError(t, answer.Handle(c))
	text, markup := c.Last()
	assert.Equal(t, "Вопрос 2/2\n\nКуда звонить?", text)

	c = handlertest.NewCallbackContext(handlertest.StaffTelegram, handlertest.ButtonArgs(pick(t, markup, "100"))...)
	require.NoError(t, answer.Handle(c))
	text, markup = c.Last()
	assert.Equal(t, msgs.GetMessage(messageService.ReadyToSubmitKey), text)

	btn := pick(t, markup, msgs.GetButton(model.SubmitKey))
	c = handlertest.NewCallbackContext(handlertest.StaffTelegram, handlertest.ButtonArgs(btn)...)
	require.NoError(t, submit.Handle(c))
	text, _ = c.Last()
	assert.Equal(t, msgs.GetMessage(messageService.ResultPassedKey, 1, 2), text)

	// Повторная отправка той же попытки отклоняется
	c = handlertest.NewCallbackContext(handlertest.StaffTelegram, handlertest.ButtonArgs(btn)...)
	require.NoError(t, submit.Handle(c))
	require.Len(t, c.Responses, 1)
	assert.Equal(t, msgs.GetMessage(messageService.AlreadyFinishedKey), c.Responses[0].Text)

	// Пройденный модуль открывается только для просмотра результата
	c = handlertest.NewCallbackContext(handlertest.StaffTelegram, strconv.Itoa(env.Module.ID))
	require.NoError(t, open.Handle(c))
	text, _ = c.Last()
	assert.Equal(t, msgs.GetMessage(messageService.ModulePassedKey, "Safety 101", 1, 2), text)
}

func TestAnswerHandler_ResumeAfterReopen(t *testing.T) {
	env := handlertest.NewEnv(t)
	msgs := messageService.NewMessageService(nil)
	open := open_module_handler.NewOpenModuleHandler(env.Users, env.Catalog, env.Attempts, msgs, env.Logger)
	answer := NewAnswerHandler(env.Users, env.Attempts, msgs, env.Logger)

	c := handlertest.NewCallbackContext(handlertest.StaffTelegram, strconv.Itoa(env.Module.ID))
	require.NoError(t, open.Handle(c))
	require.Len(t, c.Sent, 2)
	_, markup := c.Last()

	c = handlertest.NewCallbackContext(handlertest.StaffTelegram, handlertest.ButtonArgs(pick(t, markup, "Справа"))...)
	require.NoError(t, answer.Handle(c))

	// Повторное открытие продолжает попытку со второго вопроса без описания модуля
	c = handlertest.NewCallbackContext(handlertest.StaffTelegram, strconv.Itoa(env.Module.ID))
	require.NoError(t, open.Handle(c))
	require.Len(t, c.Sent, 1)
	assert.Equal(t, "Вопрос 2/2\n\nКуда звонить?", c.Sent[0])
}

func TestAnswerHandler_BadData(t *testing.T) {
	env := handlertest.NewEnv(t)
	msgs := messageService.NewMessageService(nil)
	answer := NewAnswerHandler(env.Users, env.Attempts, msgs, env.Logger)

	c := handlertest.NewCallbackContext(handlertest.StaffTelegram, "garbage")
	require.NoError(t, answer.Handle(c))
	assert.Empty(t, c.Sent)
	assert.Empty(t, c.Responses)

	c = handlertest.NewCallbackContext(handlertest.StaffTelegram, "1", "999", "1", "1")
	require.NoError(t, answer.Handle(c))
	require.Len(t, c.Responses, 1)
	assert.Equal(t, msgs.GetMessage(messageService.ModuleNotFoundKey), c.Responses[0].Text)
}
