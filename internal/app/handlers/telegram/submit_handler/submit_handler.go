package submit_handler

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

// SubmitHandler отправляет попытку на проверку
type SubmitHandler struct {
	userService    *usersService.UserService
	attemptService *progressService.AttemptService
	messageService *messageService.MessageService
	logger         *log.Logger
}

// NewSubmitHandler возвращает новый экземпляр обработчика
func NewSubmitHandler(
	userService *usersService.UserService,
	attemptService *progressService.AttemptService,
	messageService *messageService.MessageService,
	logger *log.Logger,
) *SubmitHandler {
	return &SubmitHandler{
		userService:    userService,
		attemptService: attemptService,
		messageService: messageService,
		logger:         logger,
	}
}

// Handle обрабатывает callback submit|<attempt_id>
func (h *SubmitHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	attemptID, err := view.ParseID(c.Args())
	if err != nil {
		h.logger.Printf("submit: %v", err)
		return c.Respond()
	}

	_, identity, err := view.Identify(ctx, h.userService, c)
	if err != nil {
		return view.ReplyError(c, h.messageService, h.logger, err)
	}

	// Ответы уже сохранены кнопками вариантов, поэтому отправляем пустой набор
	result, err := h.attemptService.RecordAnswers(ctx, identity, attemptID, map[int]int{}, model.ActionSubmit)
	if err != nil {
		return view.ReplyError(c, h.messageService, h.logger, err)
	}

	text, markup := view.Result(h.messageService, result)
	if err := c.Edit(text, view.Options(markup)); err != nil {
		return err
	}
	return c.Respond()
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *SubmitHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
