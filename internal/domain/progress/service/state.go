package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/storage"
)

// DefaultPassingThreshold доля правильных ответов, достаточная для зачета
const DefaultPassingThreshold = 0.5

// Evaluator вычисляет состояние пары (пользователь, модуль) по последней попытке
type Evaluator struct {
	threshold float64
}

// NewEvaluator создает новый экземпляр Evaluator. Порог вне (0, 1] заменяется на DefaultPassingThreshold.
func NewEvaluator(threshold float64) *Evaluator {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultPassingThreshold
	}
	return &Evaluator{threshold: threshold}
}

// Threshold возвращает порог зачета
func (e *Evaluator) Threshold() float64 {
	return e.threshold
}

// Passed сообщает, достаточно ли score правильных ответов для зачета модуля
func (e *Evaluator) Passed(score int, module *model.TrainingModule) bool {
	return float64(score)/float64(module.QuestionCount()) >= e.threshold
}

// StateOf состояние по последней попытке. Завершенная попытка без оценки считается незачтенной.
func (e *Evaluator) StateOf(latest *model.Attempt, module *model.TrainingModule) model.AttemptState {
	switch {
	case latest == nil:
		return model.StateNone
	case !latest.Terminal():
		return model.StateActive
	case latest.Score != nil && e.Passed(*latest.Score, module):
		return model.StateCompletedPass
	default:
		return model.StateCompletedFail
	}
}

// State читает последнюю попытку пользователя по модулю и вычисляет состояние
func (e *Evaluator) State(ctx context.Context, uow storage.UnitOfWork, userID int, module *model.TrainingModule) (model.AttemptState, *model.Attempt, error) {
	latest, err := uow.Progress().LatestAttempt(ctx, userID, module.ID)
	if err != nil {
		return "", nil, err
	}
	return e.StateOf(latest, module), latest, nil
}

// wrapError оборачивает ошибку операцией. Ошибки, не относящиеся к домену, считаются ошибками хранилища.
func wrapError(op string, err error) error {
	switch {
	case errors.Is(err, model.ErrForbidden),
		errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrInvalidState),
		errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrPersistence),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}
}
