package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/IT-Nick/visionhub/internal/domain/dto"
	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/infra/metrics"
	"github.com/IT-Nick/visionhub/internal/storage"
)

// AttemptService ведет жизненный цикл попыток прохождения модулей
type AttemptService struct {
	store     storage.Store
	evaluator *Evaluator
	logger    *log.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewAttemptService создает новый экземпляр AttemptService
func NewAttemptService(store storage.Store, evaluator *Evaluator, logger *log.Logger, m *metrics.Metrics) *AttemptService {
	if logger == nil {
		logger = log.Default()
	}
	return &AttemptService{
		store:     store,
		evaluator: evaluator,
		logger:    logger,
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// BeginOrResume открывает модуль для сотрудника: создает новую попытку, если предыдущей нет
// или она не зачтена, возвращает активную попытку с сохраненными ответами либо зачтенную
// попытку только для просмотра.
func (s *AttemptService) BeginOrResume(ctx context.Context, identity model.Identity, moduleID int) (*dto.AttemptSession, error) {
	const op = "progress.BeginOrResume"

	if !identity.Role.Can(model.PermissionTakeTraining) {
		return nil, fmt.Errorf("%s: role %q: %w", op, identity.Role, model.ErrForbidden)
	}

	var (
		session *dto.AttemptSession
		event   string
	)
	err := s.store.InTx(ctx, func(ctx context.Context, uow storage.UnitOfWork) error {
		module, err := uow.Catalog().GetModule(ctx, moduleID)
		if err != nil {
			return err
		}

		if err := uow.Progress().LockUserModule(ctx, identity.UserID, moduleID); err != nil {
			return err
		}

		state, latest, err := s.evaluator.State(ctx, uow, identity.UserID, module)
		if err != nil {
			return err
		}

		switch state {
		case model.StateNone, model.StateCompletedFail:
			attempt := &model.Attempt{
				UserID:        identity.UserID,
				ModuleID:      moduleID,
				AttemptNumber: 1,
				StartedAt:     s.now(),
			}
			if latest != nil {
				attempt.AttemptNumber = latest.AttemptNumber + 1
			}
			if _, err := uow.Progress().CreateAttempt(ctx, attempt); err != nil {
				return err
			}
			session = newSession(attempt, module, model.StateActive, false, map[int]int{})
			event = "created"

		case model.StateActive:
			answers, err := uow.Progress().ListAnswers(ctx, latest.ID)
			if err != nil {
				return err
			}
			session = newSession(latest, module, state, false, prefill(answers))
			event = "resumed"

		case model.StateCompletedPass:
			session = newSession(latest, module, state, true, map[int]int{})
			event = "viewed"
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(op, err)
	}

	s.metrics.AttemptEvent(event)
	s.logger.Printf("attempt %d %s: user %d module %d (attempt #%d)",
		session.AttemptID, event, identity.UserID, moduleID, session.AttemptNumber)

	return session, nil
}

// RecordAnswers сохраняет ответы активной попытки и при action=submit завершает ее с оценкой.
// Вызов атомарен: при ошибке хранилища не сохраняется ни один ответ.
func (s *AttemptService) RecordAnswers(ctx context.Context, identity model.Identity, attemptID int, answers map[int]int, action model.Action) (*dto.RecordResult, error) {
	const op = "progress.RecordAnswers"

	if !identity.Role.Can(model.PermissionTakeTraining) {
		return nil, fmt.Errorf("%s: role %q: %w", op, identity.Role, model.ErrForbidden)
	}
	if action != model.ActionSave && action != model.ActionSubmit {
		return nil, fmt.Errorf("%s: unknown action %q: %w", op, action, model.ErrValidation)
	}

	var (
		result  *dto.RecordResult
		skipped []int
	)
	err := s.store.InTx(ctx, func(ctx context.Context, uow storage.UnitOfWork) error {
		skipped = nil

		attempt, err := uow.Progress().GetAttemptForUpdate(ctx, attemptID)
		if err != nil {
			return err
		}
		if attempt.UserID != identity.UserID {
			return fmt.Errorf("attempt %d: %w", attemptID, model.ErrNotFound)
		}
		if attempt.Terminal() {
			return fmt.Errorf("attempt %d is already completed: %w", attemptID, model.ErrInvalidState)
		}

		module, err := uow.Catalog().GetModule(ctx, attempt.ModuleID)
		if err != nil {
			return err
		}

		now := s.now()
		for _, questionID := range sortedKeys(answers) {
			optionID := answers[questionID]

			option, err := resolveOption(module, questionID, optionID)
			if err != nil {
				s.logger.Printf("attempt %d: skip question %d option %d: %v", attemptID, questionID, optionID, err)
				skipped = append(skipped, questionID)
				continue
			}

			selected := option.ID
			if err := uow.Progress().UpsertAnswer(ctx, &model.Answer{
				AttemptID:        attemptID,
				QuestionID:       questionID,
				SelectedOptionID: &selected,
				IsCorrect:        option.IsCorrect,
				UpdatedAt:        now,
			}); err != nil {
				return err
			}
		}

		if action == model.ActionSave {
			result = &dto.RecordResult{AttemptID: attemptID, Status: model.StatusSaved}
			return nil
		}

		if len(module.Questions) == 0 {
			return fmt.Errorf("module %d has no questions: %w", module.ID, model.ErrInvalidState)
		}

		score, err := uow.Progress().CountCorrectAnswers(ctx, attemptID)
		if err != nil {
			return err
		}

		finalized, err := uow.Progress().FinalizeAttempt(ctx, attemptID, score, now)
		if err != nil {
			return err
		}
		if !finalized {
			return fmt.Errorf("attempt %d is already completed: %w", attemptID, model.ErrInvalidState)
		}

		result = &dto.RecordResult{
			AttemptID: attemptID,
			Status:    model.StatusFinalized,
			Passed:    s.evaluator.Passed(score, module),
			Score:     score,
			Total:     module.QuestionCount(),
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(op, err)
	}

	for range skipped {
		s.metrics.IntegrityAnomaly()
	}
	result.Skipped = skipped

	switch {
	case result.Status == model.StatusSaved:
		s.metrics.AttemptEvent("saved")
	case result.Passed:
		s.metrics.AttemptEvent("passed")
		s.logger.Printf("attempt %d passed: user %d score %d/%d", attemptID, identity.UserID, result.Score, result.Total)
	default:
		s.metrics.AttemptEvent("failed")
		s.logger.Printf("attempt %d failed: user %d score %d/%d", attemptID, identity.UserID, result.Score, result.Total)
	}

	return result, nil
}

// resolveOption находит вариант ответа, принадлежащий вопросу модуля
func resolveOption(module *model.TrainingModule, questionID, optionID int) (model.Option, error) {
	question, ok := module.FindQuestion(questionID)
	if !ok {
		return model.Option{}, fmt.Errorf("question %d is not part of module %d: %w", questionID, module.ID, model.ErrIntegrityAnomaly)
	}
	option, ok := question.FindOption(optionID)
	if !ok {
		return model.Option{}, fmt.Errorf("option %d does not belong to question %d: %w", optionID, questionID, model.ErrIntegrityAnomaly)
	}
	return option, nil
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func prefill(answers []model.Answer) map[int]int {
	prefilled := make(map[int]int, len(answers))
	for _, a := range answers {
		if a.SelectedOptionID != nil {
			prefilled[a.QuestionID] = *a.SelectedOptionID
		}
	}
	return prefilled
}

func newSession(attempt *model.Attempt, module *model.TrainingModule, state model.AttemptState, readOnly bool, prefilled map[int]int) *dto.AttemptSession {
	questions := make([]dto.QuestionView, 0, len(module.Questions))
	for _, q := range module.Questions {
		view := dto.QuestionView{QuestionID: q.ID, Text: q.Text, Options: make([]dto.OptionView, 0, len(q.Options))}
		for _, o := range q.Options {
			view.Options = append(view.Options, dto.OptionView{OptionID: o.ID, Text: o.Text})
		}
		questions = append(questions, view)
	}

	return &dto.AttemptSession{
		AttemptID:     attempt.ID,
		AttemptNumber: attempt.AttemptNumber,
		ModuleID:      module.ID,
		ModuleTitle:   module.Title,
		State:         state,
		ReadOnly:      readOnly,
		StartedAt:     attempt.StartedAt,
		Score:         attempt.Score,
		Prefilled:     prefilled,
		Questions:     questions,
	}
}
