package answer_handler

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

// AnswerHandler сохраняет выбранный вариант и показывает следующий вопрос
type AnswerHandler struct {
	userService    *usersService.UserService
	attemptService *progressService.AttemptService
	messageService *messageService.MessageService
	logger         *log.Logger
}

func NewAnswerHandler(
	userService *usersService.UserService,
	attemptService *progressService.AttemptService,
	messageService *messageService.MessageService,
	logger *log.Logger,
) *AnswerHandler {
	return &AnswerHandler{
		userService:    userService,
		attemptService: attemptService,
		messageService: messageService,
		logger:         logger,
	}
}

// Handle обрабатывает callback answer|<module_id>|<attempt_id>|<question_id>|<option_id>
func (h *AnswerHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	data, err := view.ParseAnswer(c.Args())
	if err != nil {
		h.logger.Printf("answer: %v", err)
		return c.Respond()
	}

	_, identity, err := view.Identify(ctx, h.userService, c)
	if err != nil {
		return view.ReplyError(c, h.messageService, h.logger, err)
	}

	answers := map[int]int{data.QuestionID: data.OptionID}
	if _, err := h.attemptService.RecordAnswers(ctx, identity, data.AttemptID, answers, model.ActionSave); err != nil {
		return view.ReplyError(c, h.messageService, h.logger, err)
	}

	// Сохраненные ответы приходят в prefill, по ним выбирается следующий вопрос
	session, err := h.attemptService.BeginOrResume(ctx, identity, data.ModuleID)
	if err != nil {
		return view.ReplyError(c, h.messageService, h.logger, err)
	}

	text, markup := view.Question(h.messageService, session)
	if err := c.Edit(text, view.Options(markup)); err != nil {
		return err
	}
	return c.Respond()
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *AnswerHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
