package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/infra/postgres"
)

const attemptColumns = "id, user_id, training_module_id, attempt_number, start_date, completed_date, score"

// ProgressRepository репозиторий попыток прохождения модулей и ответов
type ProgressRepository struct {
	db postgres.DBTX
}

// NewProgressRepository создает новый экземпляр ProgressRepository
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func scanAttempt(row interface{ Scan(dest ...any) error }) (*model.Attempt, error) {
	var a model.Attempt
	if err := row.Scan(&a.ID, &a.UserID, &a.ModuleID, &a.AttemptNumber, &a.StartedAt, &a.CompletedAt, &a.Score); err != nil {
		return nil, err
	}
	return &a, nil
}

// LockUserModule берет транзакционную advisory-блокировку на пару (пользователь, модуль).
// Вне транзакции блокировка снимается сразу после запроса.
func (r *ProgressRepository) LockUserModule(ctx context.Context, userID, moduleID int) error {
	if _, err := r.db.Exec(ctx, "SELECT pg_advisory_xact_lock($1::int4, $2::int4)", userID, moduleID); err != nil {
		return fmt.Errorf("failed to lock user module: %w", err)
	}
	return nil
}

// LatestAttempt получает последнюю попытку пользователя по модулю
func (r *ProgressRepository) LatestAttempt(ctx context.Context, userID, moduleID int) (*model.Attempt, error) {
	attempt, err := scanAttempt(r.db.QueryRow(ctx, `
                SELECT `+attemptColumns+`
                FROM user_module_progress
                WHERE user_id = $1 AND training_module_id = $2
                ORDER BY id DESC
                LIMIT 1
        `, userID, moduleID))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest attempt: %w", err)
	}
	return attempt, nil
}

// GetAttempt получает попытку по ID
func (r *ProgressRepository) GetAttempt(ctx context.Context, attemptID int) (*model.Attempt, error) {
	return r.getAttempt(ctx, "SELECT "+attemptColumns+" FROM user_module_progress WHERE id = $1", attemptID)
}

// GetAttemptForUpdate получает попытку и блокирует строку до конца транзакции
func (r *ProgressRepository) GetAttemptForUpdate(ctx context.Context, attemptID int) (*model.Attempt, error) {
	return r.getAttempt(ctx, "SELECT "+attemptColumns+" FROM user_module_progress WHERE id = $1 FOR UPDATE", attemptID)
}

func (r *ProgressRepository) getAttempt(ctx context.Context, query string, attemptID int) (*model.Attempt, error) {
	attempt, err := scanAttempt(r.db.QueryRow(ctx, query, attemptID))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("attempt %d: %w", attemptID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return attempt, nil
}

// CreateAttempt создает новую активную попытку
func (r *ProgressRepository) CreateAttempt(ctx context.Context, attempt *model.Attempt) (int, error) {
	err := r.db.QueryRow(ctx, `
                INSERT INTO user_module_progress (user_id, training_module_id, attempt_number, start_date)
                VALUES ($1, $2, $3, $4)
                RETURNING id
        `, attempt.UserID, attempt.ModuleID, attempt.AttemptNumber, attempt.StartedAt).Scan(&attempt.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return 0, fmt.Errorf("active attempt already exists for user %d module %d: %w",
				attempt.UserID, attempt.ModuleID, model.ErrInvalidState)
		}
		return 0, fmt.Errorf("failed to create attempt: %w", err)
	}
	return attempt.ID, nil
}

// ListAnswers получает ответы попытки
func (r *ProgressRepository) ListAnswers(ctx context.Context, attemptID int) ([]model.Answer, error) {
	rows, err := r.db.Query(ctx, `
                SELECT id, progress_id, question_id, selected_option_id, is_correct, updated_at
                FROM user_question_answer
                WHERE progress_id = $1
                ORDER BY id
        `, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.AttemptID, &a.QuestionID, &a.SelectedOptionID, &a.IsCorrect, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error in rows: %w", err)
	}

	return answers, nil
}

// UpsertAnswer сохраняет ответ; повторная отправка обновляет существующую запись
func (r *ProgressRepository) UpsertAnswer(ctx context.Context, answer *model.Answer) error {
	err := r.db.QueryRow(ctx, `
                INSERT INTO user_question_answer (progress_id, question_id, selected_option_id, is_correct, updated_at)
                VALUES ($1, $2, $3, $4, $5)
                ON CONFLICT (progress_id, question_id) DO UPDATE
                SET selected_option_id = EXCLUDED.selected_option_id,
                    is_correct = EXCLUDED.is_correct,
                    updated_at = EXCLUDED.updated_at
                RETURNING id
        `, answer.AttemptID, answer.QuestionID, answer.SelectedOptionID, answer.IsCorrect, answer.UpdatedAt).Scan(&answer.ID)
	if err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}
	return nil
}

// CountCorrectAnswers считает правильные ответы попытки
func (r *ProgressRepository) CountCorrectAnswers(ctx context.Context, attemptID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM user_question_answer WHERE progress_id = $1 AND is_correct", attemptID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count correct answers: %w", err)
	}
	return count, nil
}

// FinalizeAttempt проставляет оценку и дату завершения активной попытке
func (r *ProgressRepository) FinalizeAttempt(ctx context.Context, attemptID int, score int, completedAt time.Time) (bool, error) {
	result, err := r.db.Exec(ctx, `
                UPDATE user_module_progress
                SET score = $2,
                    completed_date = $3
                WHERE id = $1
                AND completed_date IS NULL
        `, attemptID, score, completedAt)
	if err != nil {
		return false, fmt.Errorf("failed to finalize attempt: %w", err)
	}
	return result.RowsAffected() == 1, nil
}
