package open_module_handler

import (
	"context"
	"log"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/visionhub/internal/app/handlers/telegram/view"
	catalogService "github.com/IT-Nick/visionhub/internal/domain/catalog/service"
	messageService "github.com/IT-Nick/visionhub/internal/domain/messages/service"
	"github.com/IT-Nick/visionhub/internal/domain/model"
	progressService "github.com/IT-Nick/visionhub/internal/domain/progress/service"
	usersService "github.com/IT-Nick/visionhub/internal/domain/users/service"
)

// OpenModuleHandler структура для обработки нажатия на модуль в дашборде
type OpenModuleHandler struct {
	userService    *usersService.UserService
	catalogService *catalogService.CatalogService
	attemptService *progressService.AttemptService
	messageService *messageService.MessageService
	logger         *log.Logger
}

// NewOpenModuleHandler возвращает новый экземпляр обработчика
func NewOpenModuleHandler(
	userService *usersService.UserService,
	catalogService *catalogService.CatalogService,
	attemptService *progressService.AttemptService,
	messageService *messageService.MessageService,
	logger *log.Logger,
) *OpenModuleHandler {
	return &OpenModuleHandler{
		userService:    userService,
		catalogService: catalogService,
		attemptService: attemptService,
		messageService: messageService,
		logger:         logger,
	}
}

// Handle обрабатывает callback open_module|<module_id>
func (h *OpenModuleHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	moduleID, err := view.ParseID(c.Args())
	if err != nil {
		h.logger.Printf("open module: %v", err)
		return c.Respond()
	}

	_, identity, err := view.Identify(ctx, h.userService, c)
	if err != nil {
		return view.ReplyError(c, h.messageService, h.logger, err)
	}

	if err := h.Open(ctx, c, identity, moduleID); err != nil {
		return err
	}
	return c.Respond()
}

// Open начинает или продолжает попытку и отправляет описание модуля и следующий вопрос.
// Для пройденного модуля отправляется только результат.
func (h *OpenModuleHandler) Open(ctx context.Context, c telebot.Context, identity model.Identity, moduleID int) error {
	session, err := h.attemptService.BeginOrResume(ctx, identity, moduleID)
	if err != nil {
		return view.ReplyError(c, h.messageService, h.logger, err)
	}

	if session.ReadOnly {
		return c.Send(view.Passed(h.messageService, session), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	}

	// Описание показываем только в начале попытки
	if len(session.Prefilled) == 0 {
		module, err := h.catalogService.GetModule(ctx, moduleID)
		if err != nil {
			return view.ReplyError(c, h.messageService, h.logger, err)
		}
		if err := c.Send(view.Intro(h.messageService, module), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown}); err != nil {
			return err
		}
	}

	text, markup := view.Question(h.messageService, session)
	return c.Send(text, view.Options(markup))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *OpenModuleHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
