package model

// Константы для inline-кнопок Telegram. Привязаны к названиям обработчиков.
// Не следует добавлять/изменять константы без изменения регистрации в app.bootstrapHandlersTelegram
const (
	OpenModuleKey = "open_module"
	AnswerKey     = "answer"
	SubmitKey     = "submit"
	DashboardKey  = "dashboard"
)

// DeepLinkModulePrefix префикс payload команды /start для ссылки на модуль
const DeepLinkModulePrefix = "module_"
