package repository

import (
	"context"
	"fmt"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/infra/postgres"
)

// PathRepository репозиторий путей онбординга и их шагов
type PathRepository struct {
	db postgres.DBTX
}

// NewPathRepository создает новый экземпляр PathRepository
func NewPathRepository(db postgres.DBTX) *PathRepository {
	return &PathRepository{db: db}
}

// GetPath получает путь с шагами в порядке их следования
func (r *PathRepository) GetPath(ctx context.Context, pathID int) (*model.OnboardingPath, error) {
	var path model.OnboardingPath
	err := r.db.QueryRow(ctx, "SELECT id, path_name FROM onboarding_path WHERE id = $1", pathID).
		Scan(&path.ID, &path.Name)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("onboarding path %d: %w", pathID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get onboarding path: %w", err)
	}

	rows, err := r.db.Query(ctx, `
                SELECT id, onboarding_path_id, step_name, training_module_id, position
                FROM onboarding_step
                WHERE onboarding_path_id = $1
                ORDER BY position, id
        `, pathID)
	if err != nil {
		return nil, fmt.Errorf("failed to query onboarding steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var step model.OnboardingStep
		if err := rows.Scan(&step.ID, &step.PathID, &step.Name, &step.ModuleID, &step.Position); err != nil {
			return nil, fmt.Errorf("failed to scan onboarding step: %w", err)
		}
		path.Steps = append(path.Steps, step)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return &path, nil
}

// GetPathByName ищет путь по имени
func (r *PathRepository) GetPathByName(ctx context.Context, name string) (*model.OnboardingPath, error) {
	var pathID int
	err := r.db.QueryRow(ctx, "SELECT id FROM onboarding_path WHERE path_name = $1", name).Scan(&pathID)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get onboarding path by name: %w", err)
	}
	return r.GetPath(ctx, pathID)
}

// CreatePath создает путь онбординга
func (r *PathRepository) CreatePath(ctx context.Context, name string) (int, error) {
	var pathID int
	err := r.db.QueryRow(ctx, "INSERT INTO onboarding_path (path_name) VALUES ($1) RETURNING id", name).Scan(&pathID)
	if err != nil {
		return 0, fmt.Errorf("failed to create onboarding path: %w", err)
	}
	return pathID, nil
}

// AddStep добавляет шаг с модулем в конец пути
func (r *PathRepository) AddStep(ctx context.Context, pathID int, stepName string, moduleID int) (int, error) {
	var stepID int
	err := r.db.QueryRow(ctx, `
                INSERT INTO onboarding_step (onboarding_path_id, step_name, training_module_id, position)
                VALUES ($1, $2, $3, (SELECT COALESCE(MAX(position) + 1, 0) FROM onboarding_step WHERE onboarding_path_id = $1))
                RETURNING id
        `, pathID, stepName, moduleID).Scan(&stepID)
	if err != nil {
		return 0, fmt.Errorf("failed to add onboarding step: %w", err)
	}
	return stepID, nil
}
