package service

import (
	"fmt"

	"github.com/IT-Nick/visionhub/internal/domain/model"
)

// Ключи сообщений бота
const (
	WelcomeKey         = "welcome"
	UnknownUserKey     = "unknown_user"
	NotStaffKey        = "not_staff"
	EmptyDashboardKey  = "empty_dashboard"
	DashboardTitleKey  = "dashboard_title"
	CompletedLineKey   = "completed_line"
	ModuleIntroKey     = "module_intro"
	ModulePassedKey    = "module_passed"
	QuestionKey        = "question"
	ReadyToSubmitKey   = "ready_to_submit"
	ResultPassedKey    = "result_passed"
	ResultFailedKey    = "result_failed"
	AlreadyFinishedKey = "already_finished"
	ModuleNotFoundKey  = "module_not_found"
	GenericErrorKey    = "generic_error"
)

var defaultMessages = map[string]string{
	WelcomeKey:         "👋 Здравствуйте, %s! Здесь собраны учебные модули вашего онбординга.",
	UnknownUserKey:     "Вы не зарегистрированы в портале. Обратитесь к своему руководителю.",
	NotStaffKey:        "Прохождение модулей доступно только сотрудникам.",
	EmptyDashboardKey:  "Вам пока не назначены учебные модули.",
	DashboardTitleKey:  "📚 К выполнению: %d, в процессе: %d, завершено: %d",
	CompletedLineKey:   "✅ %s: %d из %d",
	ModuleIntroKey:     "📘 *%s*\n\n%s",
	ModulePassedKey:    "✅ Модуль *%s* уже пройден: %d из %d.",
	QuestionKey:        "Вопрос %d/%d\n\n%s",
	ReadyToSubmitKey:   "Все ответы сохранены. Отправить модуль на проверку?",
	ResultPassedKey:    "🎉 Модуль пройден! Правильных ответов: %d из %d.",
	ResultFailedKey:    "😔 Модуль не пройден: %d из %d. Попробуйте еще раз.",
	AlreadyFinishedKey: "Эта попытка уже завершена.",
	ModuleNotFoundKey:  "Модуль не найден.",
	GenericErrorKey:    "Произошла ошибка, попробуйте позже.",
}

var defaultButtons = map[string]string{
	model.OpenModuleKey: "▶️ %s",
	model.SubmitKey:     "📨 Отправить ответы",
	model.DashboardKey:  "📚 Мои модули",
}

// MessageService содержит тексты бота. Значения по умолчанию можно переопределить в конфигурации.
type MessageService struct {
	messages map[string]string
	buttons  map[string]string
}

// NewMessageService создает новый экземпляр MessageService
func NewMessageService(overrides map[string]string) *MessageService {
	s := &MessageService{
		messages: make(map[string]string, len(defaultMessages)),
		buttons:  make(map[string]string, len(defaultButtons)),
	}
	for k, v := range defaultMessages {
		s.messages[k] = v
	}
	for k, v := range defaultButtons {
		s.buttons[k] = v
	}
	for k, v := range overrides {
		if _, ok := s.buttons[k]; ok {
			s.buttons[k] = v
			continue
		}
		s.messages[k] = v
	}
	return s
}

// GetMessage возвращает сообщение по ключу, подставляя аргументы
func (s *MessageService) GetMessage(key string, args ...any) string {
	text, ok := s.messages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

// GetButton возвращает текст кнопки по ключу
func (s *MessageService) GetButton(key string, args ...any) string {
	text, ok := s.buttons[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}
