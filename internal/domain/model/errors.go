package model

import "errors"

var (
	// ErrForbidden роль вызывающего не допускает операцию
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound модуль, вопрос, вариант или попытка не существует
	ErrNotFound = errors.New("not found")
	// ErrInvalidState изменение терминальной попытки или отправка модуля без вопросов
	ErrInvalidState = errors.New("invalid state")
	// ErrIntegrityAnomaly выбранный вариант не принадлежит вопросу
	ErrIntegrityAnomaly = errors.New("integrity anomaly")
	// ErrPersistence ошибка хранилища, транзакция откатывается целиком
	ErrPersistence = errors.New("persistence failure")
	// ErrValidation некорректное описание модуля при импорте каталога
	ErrValidation = errors.New("validation failed")
)
