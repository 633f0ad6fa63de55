package start_handler

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/visionhub/internal/app/handlers/handlertest"
	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/dashboard_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/open_module_handler"
	messageService "github.com/IT-Nick/visionhub/internal/domain/messages/service"
	"github.com/IT-Nick/visionhub/internal/domain/model"
)

func newHandler(env *handlertest.Env, msgs *messageService.MessageService) *StartHandler {
	dashboard := dashboard_handler.NewDashboardHandler(env.Users, env.Classifier, msgs, env.Logger)
	openModule := open_module_handler.NewOpenModuleHandler(env.Users, env.Catalog, env.Attempts, msgs, env.Logger)
	return NewStartHandler(env.Users, msgs, dashboard, openModule, env.Logger)
}

func TestStartHandler_Dashboard(t *testing.T) {
	env := handlertest.NewEnv(t)
	msgs := messageService.NewMessageService(nil)
	c := handlertest.NewBotContext(handlertest.StaffTelegram)

	require.NoError(t, newHandler(env, msgs).Handle(c))

	require.Len(t, c.Sent, 2)
	assert.Equal(t, msgs.GetMessage(messageService.WelcomeKey, "Анна"), c.Sent[0])
	text, markup := c.Last()
	assert.Contains(t, text, "К выполнению: 1")
	require.NotNil(t, markup)
	btn := markup.InlineKeyboard[0][0]
	assert.Equal(t, model.OpenModuleKey, btn.Unique)
	assert.Equal(t, strconv.Itoa(env.Module.ID), btn.Data)
}

func TestStartHandler_DeepLink(t *testing.T) {
	env := handlertest.NewEnv(t)
	msgs := messageService.NewMessageService(nil)
	c := handlertest.NewBotContext(handlertest.StaffTelegram)
	c.StartPayload = model.DeepLinkModulePrefix + strconv.Itoa(env.Module.ID)

	require.NoError(t, newHandler(env, msgs).Handle(c))

	require.Len(t, c.Sent, 3)
	assert.Contains(t, c.Sent[1], "Safety 101")
	text, markup := c.Last()
	assert.Equal(t, "Вопрос 1/2\n\nГде выход?", text)
	assert.Len(t, markup.InlineKeyboard, 2)
}

func TestStartHandler_Rejects(t *testing.T) {
	env := handlertest.NewEnv(t)
	msgs := messageService.NewMessageService(nil)
	h := newHandler(env, msgs)

	c := handlertest.NewBotContext("stranger")
	require.NoError(t, h.Handle(c))
	assert.Equal(t, []string{msgs.GetMessage(messageService.UnknownUserKey)}, c.Sent)

	c = handlertest.NewBotContext("")
	require.NoError(t, h.Handle(c))
	assert.Equal(t, []string{msgs.GetMessage(messageService.UnknownUserKey)}, c.Sent)

	c = handlertest.NewBotContext(handlertest.ManagerTelegram)
	require.NoError(t, h.Handle(c))
	text, _ := c.Last()
	assert.Equal(t, msgs.GetMessage(messageService.NotStaffKey), text)
}

func TestStartHandler_UnknownModuleLink(t *testing.T) {
	env := handlertest.NewEnv(t)
	msgs := messageService.NewMessageService(nil)
	c := handlertest.NewBotContext(handlertest.StaffTelegram)
	c.StartPayload = "module_999"

	require.NoError(t, newHandler(env, msgs).Handle(c))
	text, _ := c.Last()
	assert.Equal(t, msgs.GetMessage(messageService.ModuleNotFoundKey), text)
}
