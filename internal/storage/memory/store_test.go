package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/storage"
)

func newModule(title string) *model.TrainingModule {
	return &model.TrainingModule{
		Title:  title,
		Active: true,
		Questions: []model.Question{
			{Text: "Q1", Options: []model.Option{{Text: "A", IsCorrect: true}, {Text: "B"}}},
			{Text: "Q2", Options: []model.Option{{Text: "A"}, {Text: "B", IsCorrect: true}}},
		},
	}
}

func TestStore_CreateModuleAssignsIDs(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	module := newModule("Safety 101")
	id, err := s.Catalog().CreateModule(ctx, module)
	require.NoError(t, err)
	assert.Equal(t, id, module.ID)

	loaded, err := s.Catalog().GetModule(ctx, id)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 2)
	for i, q := range loaded.Questions {
		assert.NotZero(t, q.ID)
		assert.Equal(t, id, q.ModuleID)
		assert.Equal(t, i, q.Position)
		for _, o := range q.Options {
			assert.Equal(t, q.ID, o.QuestionID)
		}
	}

	_, err = s.Catalog().CreateModule(ctx, newModule("Safety 101"))
	assert.Error(t, err, "название модуля должно быть уникальным")

	_, err = s.Catalog().GetModule(ctx, 100)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStore_InTxRollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(ctx context.Context, uow storage.UnitOfWork) error {
		if _, err := uow.Catalog().CreateModule(ctx, newModule("Safety 101")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	found, err := s.Catalog().GetModuleByTitle(ctx, "Safety 101")
	require.NoError(t, err)
	assert.Nil(t, found)

	err = s.InTx(ctx, func(ctx context.Context, uow storage.UnitOfWork) error {
		_, err := uow.Catalog().CreateModule(ctx, newModule("Safety 101"))
		return err
	})
	require.NoError(t, err)

	found, err = s.Catalog().GetModuleByTitle(ctx, "Safety 101")
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestStore_SingleActiveAttempt(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Progress().CreateAttempt(ctx, &model.Attempt{UserID: 1, ModuleID: 1, AttemptNumber: 1})
	require.NoError(t, err)

	_, err = s.Progress().CreateAttempt(ctx, &model.Attempt{UserID: 1, ModuleID: 1, AttemptNumber: 2})
	assert.ErrorIs(t, err, model.ErrInvalidState)

	_, err = s.Progress().CreateAttempt(ctx, &model.Attempt{UserID: 2, ModuleID: 1, AttemptNumber: 1})
	assert.NoError(t, err)
}

func TestStore_FinalizeAttemptOnce(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	id, err := s.Progress().CreateAttempt(ctx, &model.Attempt{UserID: 1, ModuleID: 1, AttemptNumber: 1, StartedAt: now})
	require.NoError(t, err)

	ok, err := s.Progress().FinalizeAttempt(ctx, id, 2, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Progress().FinalizeAttempt(ctx, id, 0, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	attempt, err := s.Progress().GetAttempt(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, *attempt.Score)
	assert.Equal(t, now, *attempt.CompletedAt)

	latest, err := s.Progress().LatestAttempt(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, id, latest.ID)
}

func TestStore_UpsertAnswer(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id, err := s.Progress().CreateAttempt(ctx, &model.Attempt{UserID: 1, ModuleID: 1, AttemptNumber: 1})
	require.NoError(t, err)

	first, second := 10, 11
	require.NoError(t, s.Progress().UpsertAnswer(ctx, &model.Answer{AttemptID: id, QuestionID: 5, SelectedOptionID: &first, IsCorrect: true}))
	require.NoError(t, s.Progress().UpsertAnswer(ctx, &model.Answer{AttemptID: id, QuestionID: 5, SelectedOptionID: &second}))
	require.NoError(t, s.Progress().UpsertAnswer(ctx, &model.Answer{AttemptID: id, QuestionID: 6, SelectedOptionID: &first, IsCorrect: true}))

	answers, err := s.Progress().ListAnswers(ctx, id)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, second, *answers[0].SelectedOptionID)
	assert.False(t, answers[0].IsCorrect)

	correct, err := s.Progress().CountCorrectAnswers(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, correct)

	err = s.Progress().UpsertAnswer(ctx, &model.Answer{AttemptID: 999, QuestionID: 1})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStore_PathSteps(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	moduleID, err := s.Catalog().CreateModule(ctx, newModule("Safety 101"))
	require.NoError(t, err)
	pathID, err := s.Paths().CreatePath(ctx, "Разработчики")
	require.NoError(t, err)

	_, err = s.Paths().AddStep(ctx, pathID, "Шаг 1", moduleID)
	require.NoError(t, err)
	_, err = s.Paths().AddStep(ctx, pathID, "Шаг 2", moduleID)
	require.NoError(t, err)
	_, err = s.Paths().AddStep(ctx, pathID, "Шаг 3", 77)
	assert.ErrorIs(t, err, model.ErrNotFound)

	path, err := s.Paths().GetPath(ctx, pathID)
	require.NoError(t, err)
	require.Len(t, path.Steps, 2)
	assert.Equal(t, 0, path.Steps[0].Position)
	assert.Equal(t, 1, path.Steps[1].Position)

	byName, err := s.Paths().GetPathByName(ctx, "Разработчики")
	require.NoError(t, err)
	assert.Equal(t, pathID, byName.ID)
}

func TestStore_StaffListing(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	managerID, err := s.Users().CreateUser(ctx, &model.User{Username: "boss", Role: model.RoleManager})
	require.NoError(t, err)
	tg := "anna_tg"
	_, err = s.Users().CreateUser(ctx, &model.User{Username: "anna", Role: model.RoleStaff, ManagerID: &managerID, TelegramUsername: &tg})
	require.NoError(t, err)
	_, err = s.Users().CreateUser(ctx, &model.User{Username: "petr", Role: model.RoleStaff})
	require.NoError(t, err)

	staff, err := s.Users().ListStaff(ctx)
	require.NoError(t, err)
	assert.Len(t, staff, 2)

	team, err := s.Users().ListStaffByManager(ctx, managerID)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "anna", team[0].Username)

	user, err := s.Users().GetUserByTelegramUsername(ctx, "anna_tg")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "anna", user.Username)

	missing, err := s.Users().GetUserByTelegramUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestJSONStore_PersistsSnapshot(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "visionhub.json")
	ctx := context.Background()

	s, err := NewJSONStore(filename)
	require.NoError(t, err)

	err = s.InTx(ctx, func(ctx context.Context, uow storage.UnitOfWork) error {
		_, err := uow.Catalog().CreateModule(ctx, newModule("Safety 101"))
		return err
	})
	require.NoError(t, err)
	_, err = s.Users().CreateUser(ctx, &model.User{Username: "anna", Role: model.RoleStaff})
	require.NoError(t, err)

	reopened, err := NewJSONStore(filename)
	require.NoError(t, err)

	module, err := reopened.Catalog().GetModuleByTitle(ctx, "Safety 101")
	require.NoError(t, err)
	require.NotNil(t, module)
	assert.Len(t, module.Questions, 2)

	staff, err := reopened.Users().ListStaff(ctx)
	require.NoError(t, err)
	assert.Len(t, staff, 1)

	// Последовательности продолжаются после перезагрузки
	id, err := reopened.Catalog().CreateModule(ctx, newModule("Second"))
	require.NoError(t, err)
	assert.Equal(t, module.ID+1, id)
}

func TestJSONStore_FailedSnapshotKeepsState(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.MkdirAll(dir, 0755))
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	s, err := NewJSONStore(filepath.Join(dir, "visionhub.json"))
	require.NoError(t, err)

	attemptID, err := s.Progress().CreateAttempt(ctx, &model.Attempt{UserID: 1, ModuleID: 1, AttemptNumber: 1, StartedAt: now})
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))

	optionID := 1
	err = s.InTx(ctx, func(ctx context.Context, uow storage.UnitOfWork) error {
		if err := uow.Progress().UpsertAnswer(ctx, &model.Answer{AttemptID: attemptID, QuestionID: 1, SelectedOptionID: &optionID, IsCorrect: true}); err != nil {
			return err
		}
		_, err := uow.Progress().FinalizeAttempt(ctx, attemptID, 1, now)
		return err
	})
	assert.ErrorIs(t, err, model.ErrPersistence)

	attempt, err := s.Progress().GetAttempt(ctx, attemptID)
	require.NoError(t, err)
	assert.False(t, attempt.Terminal(), "попытка не должна завершиться без записи снапшота")

	answers, err := s.Progress().ListAnswers(ctx, attemptID)
	require.NoError(t, err)
	assert.Empty(t, answers)

	// Запись вне транзакции также не применяется
	_, err = s.Users().CreateUser(ctx, &model.User{Username: "anna", Role: model.RoleStaff})
	assert.ErrorIs(t, err, model.ErrPersistence)
	user, err := s.Users().GetUserByUsername(ctx, "anna")
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, os.MkdirAll(dir, 0755))

	ok, err := s.Progress().FinalizeAttempt(ctx, attemptID, 1, now)
	require.NoError(t, err)
	assert.True(t, ok)
}
