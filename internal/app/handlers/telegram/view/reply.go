package view

import (
	"context"
	"errors"
	"log"

	tele "gopkg.in/telebot.v4"

	messageService "github.com/IT-Nick/visionhub/internal/domain/messages/service"
	"github.com/IT-Nick/visionhub/internal/domain/model"
	usersService "github.com/IT-Nick/visionhub/internal/domain/users/service"
)

// ErrUnknownSender отправитель не найден среди пользователей портала
var ErrUnknownSender = errors.New("unknown telegram sender")

// Identify сопоставляет отправителя обновления пользователю портала по username
func Identify(ctx context.Context, users *usersService.UserService, c tele.Context) (*model.User, model.Identity, error) {
	sender := c.Sender()
	if sender == nil || sender.Username == "" {
		return nil, model.Identity{}, ErrUnknownSender
	}

	user, identity, err := users.IdentityByTelegram(ctx, sender.Username)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.Identity{}, ErrUnknownSender
	}
	return user, identity, err
}

// ErrorKey ключ сообщения, которым бот отвечает на ошибку
func ErrorKey(err error) string {
	switch {
	case errors.Is(err, ErrUnknownSender):
		return messageService.UnknownUserKey
	case errors.Is(err, model.ErrForbidden):
		return messageService.NotStaffKey
	case errors.Is(err, model.ErrNotFound):
		return messageService.ModuleNotFoundKey
	case errors.Is(err, model.ErrInvalidState):
		return messageService.AlreadyFinishedKey
	default:
		return messageService.GenericErrorKey
	}
}

// ReplyError отвечает пользователю на ошибку. Внутренние ошибки пишутся в лог.
func ReplyError(c tele.Context, msgs *messageService.MessageService, logger *log.Logger, err error) error {
	key := ErrorKey(err)
	if key == messageService.GenericErrorKey {
		logger.Printf("telegram handler error: %v", err)
	}

	text := msgs.GetMessage(key)
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
