package service

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	onboarding "github.com/IT-Nick/visionhub/internal/domain/onboarding/service"
	"github.com/IT-Nick/visionhub/internal/storage"
	"github.com/IT-Nick/visionhub/internal/storage/memory"
)

// fixture тестовое окружение: хранилище в памяти, сотрудник, руководитель и администратор
type fixture struct {
	store      *memory.Store
	attempts   *AttemptService
	classifier *Classifier
	staff      model.Identity
	manager    model.Identity
	admin      model.Identity
	pathID     int
}

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, memory.NewStore())
}

func newFixtureOn(t *testing.T, store *memory.Store) *fixture {
	t.Helper()
	ctx := context.Background()

	pathID, err := store.Paths().CreatePath(ctx, "Новые сотрудники")
	require.NoError(t, err)

	managerID, err := store.Users().CreateUser(ctx, &model.User{Username: "manager", FirstName: "Ирина", Role: model.RoleManager})
	require.NoError(t, err)
	adminID, err := store.Users().CreateUser(ctx, &model.User{Username: "admin", FirstName: "Олег", Role: model.RoleAdmin})
	require.NoError(t, err)
	staffID, err := store.Users().CreateUser(ctx, &model.User{
		Username:         "staff",
		FirstName:        "Анна",
		Role:             model.RoleStaff,
		ManagerID:        &managerID,
		OnboardingPathID: &pathID,
		IsOnboarding:     true,
	})
	require.NoError(t, err)

	return newServices(t, store, fixture{
		store:   store,
		staff:   model.Identity{UserID: staffID, Role: model.RoleStaff},
		manager: model.Identity{UserID: managerID, Role: model.RoleManager},
		admin:   model.Identity{UserID: adminID, Role: model.RoleAdmin},
		pathID:  pathID,
	})
}

func newServices(t *testing.T, store storage.Store, f fixture) *fixture {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	evaluator := NewEvaluator(DefaultPassingThreshold)

	f.attempts = NewAttemptService(store, evaluator, logger, nil)
	f.attempts.now = func() time.Time { return testNow }
	f.classifier = NewClassifier(store, onboarding.NewPathResolver(), evaluator)
	return &f
}

// addModule создает модуль с questions вопросами по 4 варианта, правильный вариант первый,
// и добавляет его шагом в путь сотрудника
func (f *fixture) addModule(t *testing.T, title string, questions int) *model.TrainingModule {
	t.Helper()
	ctx := context.Background()

	module := &model.TrainingModule{Title: title, Description: title + " description", Active: true}
	for i := 0; i < questions; i++ {
		module.Questions = append(module.Questions, model.Question{
			Text: "Вопрос",
			Options: []model.Option{
				{Text: "Верно", IsCorrect: true},
				{Text: "Неверно 1"},
				{Text: "Неверно 2"},
				{Text: "Неверно 3"},
			},
		})
	}
	_, err := f.store.Catalog().CreateModule(ctx, module)
	require.NoError(t, err)

	_, err = f.store.Paths().AddStep(ctx, f.pathID, title, module.ID)
	require.NoError(t, err)
	return module
}

// answersFor возвращает ответы: первые correct вопросов верно, остальные неверно
func answersFor(module *model.TrainingModule, correct int) map[int]int {
	answers := make(map[int]int, len(module.Questions))
	for i, q := range module.Questions {
		if i < correct {
			answers[q.ID] = q.Options[0].ID
		} else {
			answers[q.ID] = q.Options[1].ID
		}
	}
	return answers
}
