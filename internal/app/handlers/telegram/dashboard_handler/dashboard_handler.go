package dashboard_handler

import (
	"context"
	"log"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/view"
	messageService "github.com/IT-Nick/visionhub/internal/domain/messages/service"
	"github.com/IT-Nick/visionhub/internal/domain/model"
	progressService "github.com/IT-Nick/visionhub/internal/domain/progress/service"
	usersService "github.com/IT-Nick/visionhub/internal/domain/users/service"
)

// DashboardHandler структура для обработки кнопки "Мои модули"
type DashboardHandler struct {
	userService    *usersService.UserService
	classifier     *progressService.Classifier
	messageService *messageService.MessageService
	logger         *log.Logger
}

// NewDashboardHandler возвращает структуру обработчика
func NewDashboardHandler(
	userService *usersService.UserService,
	classifier *progressService.Classifier,
	messageService *messageService.MessageService,
	logger *log.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		userService:    userService,
		classifier:     classifier,
		messageService: messageService,
		logger:         logger,
	}
}

// Handle отправляет дашборд отправителю
func (h *DashboardHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	_, identity, err := view.Identify(ctx, h.userService, c)
	if err != nil {
		return view.ReplyError(c, h.messageService, h.logger, err)
	}

	if c.Callback() != nil {
		_ = c.Respond()
	}
	return h.Show(ctx, c, identity)
}

// Show отправляет дашборд уже опознанного пользователя
func (h *DashboardHandler) Show(ctx context.Context, c telebot.Context, identity model.Identity) error {
	dashboard, err := h.classifier.Classify(ctx, identity, identity.UserID)
	if err != nil {
		return view.ReplyError(c, h.messageService, h.logger, err)
	}

	text, markup := view.Dashboard(h.messageService, dashboard)
	return c.Send(text, view.Options(markup))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *DashboardHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
