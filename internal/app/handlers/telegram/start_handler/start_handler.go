package start_handler

import (
	"context"
	"log"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/dashboard_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/open_module_handler"
	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/view"
	messageService "github.com/IT-Nick/visionhub/internal/domain/messages/service"
	"github.com/IT-Nick/visionhub/internal/domain/model"
	usersService "github.com/IT-Nick/visionhub/internal/domain/users/service"
)

// StartHandler структура для обработки команды /start
type StartHandler struct {
	userService    *usersService.UserService
	messageService *messageService.MessageService
	dashboard      *dashboard_handler.DashboardHandler
	openModule     *open_module_handler.OpenModuleHandler
	logger         *log.Logger
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(
	userService *usersService.UserService,
	messageService *messageService.MessageService,
	dashboard *dashboard_handler.DashboardHandler,
	openModule *open_module_handler.OpenModuleHandler,
	logger *log.Logger,
) *StartHandler {
	return &StartHandler{
		userService:    userService,
		messageService: messageService,
		dashboard:      dashboard,
		openModule:     openModule,
		logger:         logger,
	}
}

// Handle метод, который будет использоваться для обработки команды /start.
// Ссылка вида /start module_<id> сразу открывает модуль.
func (h *StartHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	user, identity, err := view.Identify(ctx, h.userService, c)
	if err != nil {
		return view.ReplyError(c, h.messageService, h.logger, err)
	}

	if err := c.Send(h.messageService.GetMessage(messageService.WelcomeKey, user.FirstName)); err != nil {
		return err
	}

	// Проходить модули могут только сотрудники
	if !identity.Role.Can(model.PermissionTakeTraining) {
		return c.Send(h.messageService.GetMessage(messageService.NotStaffKey))
	}

	if c.Message() != nil {
		if moduleID, ok := view.ParseStartPayload(c.Message().Payload); ok {
			return h.openModule.Open(ctx, c, identity, moduleID)
		}
	}

	return h.dashboard.Show(ctx, c, identity)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
