// Package storage описывает хранилище портала: репозитории сущностей и единицу работы
// (unit of work), которая передается в операции ядра явно.
package storage

import (
	"context"
	"time"

	"github.com/IT-Nick/visionhub/internal/domain/model"
)

// UserRepository доступ к пользователям
type UserRepository interface {
	GetUserByID(ctx context.Context, userID int) (*model.User, error)
	// GetUserByUsername возвращает nil, nil, если пользователь не найден
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// GetUserByTelegramUsername возвращает nil, nil, если пользователь не найден
	GetUserByTelegramUsername(ctx context.Context, username string) (*model.User, error)
	ListStaff(ctx context.Context) ([]model.User, error)
	ListStaffByManager(ctx context.Context, managerID int) ([]model.User, error)
	CreateUser(ctx context.Context, user *model.User) (int, error)
}

// CatalogRepository доступ к каталогу модулей, вопросов и вариантов
type CatalogRepository interface {
	// GetModule возвращает модуль с вопросами и вариантами или model.ErrNotFound
	GetModule(ctx context.Context, moduleID int) (*model.TrainingModule, error)
	// GetModuleByTitle возвращает nil, nil, если модуль не найден
	GetModuleByTitle(ctx context.Context, title string) (*model.TrainingModule, error)
	ListActiveModules(ctx context.Context) ([]model.TrainingModule, error)
	CreateModule(ctx context.Context, module *model.TrainingModule) (int, error)
	SetModuleActive(ctx context.Context, moduleID int, active bool) error
}

// PathRepository доступ к путям онбординга
type PathRepository interface {
	// GetPath возвращает путь с упорядоченными шагами или model.ErrNotFound
	GetPath(ctx context.Context, pathID int) (*model.OnboardingPath, error)
	// GetPathByName возвращает nil, nil, если путь не найден
	GetPathByName(ctx context.Context, name string) (*model.OnboardingPath, error)
	CreatePath(ctx context.Context, name string) (int, error)
	AddStep(ctx context.Context, pathID int, stepName string, moduleID int) (int, error)
}

// ProgressRepository доступ к попыткам и ответам
type ProgressRepository interface {
	// LockUserModule сериализует создание попыток для пары (пользователь, модуль) до конца транзакции
	LockUserModule(ctx context.Context, userID, moduleID int) error
	// LatestAttempt возвращает последнюю попытку или nil, nil
	LatestAttempt(ctx context.Context, userID, moduleID int) (*model.Attempt, error)
	GetAttempt(ctx context.Context, attemptID int) (*model.Attempt, error)
	// GetAttemptForUpdate читает попытку с блокировкой строки до конца транзакции
	GetAttemptForUpdate(ctx context.Context, attemptID int) (*model.Attempt, error)
	CreateAttempt(ctx context.Context, attempt *model.Attempt) (int, error)
	ListAnswers(ctx context.Context, attemptID int) ([]model.Answer, error)
	// UpsertAnswer создает ответ или обновляет существующий для (попытка, вопрос)
	UpsertAnswer(ctx context.Context, answer *model.Answer) error
	CountCorrectAnswers(ctx context.Context, attemptID int) (int, error)
	// FinalizeAttempt завершает попытку, только если она еще активна; false означает, что попытка уже завершена
	FinalizeAttempt(ctx context.Context, attemptID int, score int, completedAt time.Time) (bool, error)
}

// UnitOfWork набор репозиториев, работающих в одной транзакции (или вне ее)
type UnitOfWork interface {
	Users() UserRepository
	Catalog() CatalogRepository
	Paths() PathRepository
	Progress() ProgressRepository
}

// TxFunc тело транзакции
type TxFunc func(ctx context.Context, uow UnitOfWork) error

// Store хранилище. Методы UnitOfWork работают вне транзакции и годятся только для чтения
// или одиночных записей; InTx фиксирует все изменения тела целиком или откатывает их.
type Store interface {
	UnitOfWork
	InTx(ctx context.Context, fn TxFunc) error
	Close()
}
