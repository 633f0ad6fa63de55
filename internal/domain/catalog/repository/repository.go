package repository

import (
	"context"
	"fmt"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/infra/postgres"
)

// CatalogRepository репозиторий для работы с учебными модулями
type CatalogRepository struct {
	db postgres.DBTX
}

// NewCatalogRepository создает новый экземпляр CatalogRepository
func NewCatalogRepository(db postgres.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetModule получает модуль вместе с вопросами и вариантами ответов
func (r *CatalogRepository) GetModule(ctx context.Context, moduleID int) (*model.TrainingModule, error) {
	var module model.TrainingModule
	err := r.db.QueryRow(ctx, `
                SELECT id, module_title, module_description, module_instructions, video_url, active
                FROM training_module
                WHERE id = $1
        `, moduleID).Scan(&module.ID, &module.Title, &module.Description, &module.Instructions, &module.VideoURL, &module.Active)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("training module %d: %w", moduleID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get training module: %w", err)
	}

	questions, err := r.questionsByModuleID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	module.Questions = questions

	return &module, nil
}

func (r *CatalogRepository) questionsByModuleID(ctx context.Context, moduleID int) ([]model.Question, error) {
	rows, err := r.db.Query(ctx, `
                SELECT id, training_module_id, question_text, position
                FROM question
                WHERE training_module_id = $1
                ORDER BY position, id
        `, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	index := make(map[int]int)
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.ModuleID, &q.Text, &q.Position); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		index[q.ID] = len(questions)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over questions: %w", err)
	}
	rows.Close()

	optionRows, err := r.db.Query(ctx, `
                SELECT o.id, o.question_id, o.option_text, o.is_correct
                FROM option o
                JOIN question q ON q.id = o.question_id
                WHERE q.training_module_id = $1
                ORDER BY o.id
        `, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer optionRows.Close()

	for optionRows.Next() {
		var o model.Option
		if err := optionRows.Scan(&o.ID, &o.QuestionID, &o.Text, &o.IsCorrect); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		if i, ok := index[o.QuestionID]; ok {
			questions[i].Options = append(questions[i].Options, o)
		}
	}
	if err := optionRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over options: %w", err)
	}

	return questions, nil
}

// GetModuleByTitle ищет модуль по уникальному названию
func (r *CatalogRepository) GetModuleByTitle(ctx context.Context, title string) (*model.TrainingModule, error) {
	var moduleID int
	err := r.db.QueryRow(ctx, "SELECT id FROM training_module WHERE module_title = $1", title).Scan(&moduleID)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get training module by title: %w", err)
	}
	return r.GetModule(ctx, moduleID)
}

// ListActiveModules возвращает активные модули без вопросов
func (r *CatalogRepository) ListActiveModules(ctx context.Context) ([]model.TrainingModule, error) {
	rows, err := r.db.Query(ctx, `
                SELECT id, module_title, module_description, module_instructions, video_url, active
                FROM training_module
                WHERE active
                ORDER BY id
        `)
	if err != nil {
		return nil, fmt.Errorf("failed to query training modules: %w", err)
	}
	defer rows.Close()

	var modules []model.TrainingModule
	for rows.Next() {
		var m model.TrainingModule
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Instructions, &m.VideoURL, &m.Active); err != nil {
			return nil, fmt.Errorf("failed to scan training module: %w", err)
		}
		modules = append(modules, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return modules, nil
}

// CreateModule сохраняет модуль вместе с вопросами и вариантами, проставляя им ID
func (r *CatalogRepository) CreateModule(ctx context.Context, module *model.TrainingModule) (int, error) {
	err := r.db.QueryRow(ctx, `
                INSERT INTO training_module (module_title, module_description, module_instructions, video_url, active)
                VALUES ($1, $2, $3, $4, $5)
                RETURNING id
        `, module.Title, module.Description, module.Instructions, module.VideoURL, module.Active).Scan(&module.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to create training module: %w", err)
	}

	for qi := range module.Questions {
		q := &module.Questions[qi]
		q.ModuleID = module.ID
		q.Position = qi
		err := r.db.QueryRow(ctx, `
                        INSERT INTO question (training_module_id, question_text, position)
                        VALUES ($1, $2, $3)
                        RETURNING id
                `, module.ID, q.Text, q.Position).Scan(&q.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to create question: %w", err)
		}

		for oi := range q.Options {
			o := &q.Options[oi]
			o.QuestionID = q.ID
			err := r.db.QueryRow(ctx, `
                                INSERT INTO option (question_id, option_text, is_correct)
                                VALUES ($1, $2, $3)
                                RETURNING id
                        `, q.ID, o.Text, o.IsCorrect).Scan(&o.ID)
			if err != nil {
				return 0, fmt.Errorf("failed to create option: %w", err)
			}
		}
	}

	return module.ID, nil
}

// SetModuleActive включает или выключает модуль (мягкое удаление)
func (r *CatalogRepository) SetModuleActive(ctx context.Context, moduleID int, active bool) error {
	result, err := r.db.Exec(ctx, "UPDATE training_module SET active = $1 WHERE id = $2", active, moduleID)
	if err != nil {
		return fmt.Errorf("failed to update training module: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("training module %d: %w", moduleID, model.ErrNotFound)
	}
	return nil
}
