package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/storage"
)

// CatalogService содержит логику работы с каталогом учебных модулей
type CatalogService struct {
	store    storage.Store
	validate *validator.Validate
	logger   *log.Logger
}

// NewCatalogService создает новый экземпляр CatalogService
func NewCatalogService(store storage.Store, logger *log.Logger) *CatalogService {
	if logger == nil {
		logger = log.Default()
	}
	return &CatalogService{store: store, validate: validator.New(), logger: logger}
}

// ImportResult итог импорта каталога
type ImportResult struct {
	Created []int    `json:"created"`
	Skipped []string `json:"skipped"`
}

// GetModule возвращает модуль с вопросами и вариантами
func (s *CatalogService) GetModule(ctx context.Context, moduleID int) (*model.TrainingModule, error) {
	const op = "catalog.GetModule"

	module, err := s.store.Catalog().GetModule(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return module, nil
}

// ActiveModules возвращает активные модули без вопросов
func (s *CatalogService) ActiveModules(ctx context.Context, identity model.Identity) ([]model.TrainingModule, error) {
	const op = "catalog.ActiveModules"

	if !identity.Role.Can(model.PermissionManageCatalog) {
		return nil, fmt.Errorf("%s: %w", op, model.ErrForbidden)
	}

	modules, err := s.store.Catalog().ListActiveModules(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}
	return modules, nil
}

// Deactivate скрывает модуль из дашбордов. Попытки по модулю сохраняются.
func (s *CatalogService) Deactivate(ctx context.Context, identity model.Identity, moduleID int) error {
	const op = "catalog.Deactivate"

	if !identity.Role.Can(model.PermissionManageCatalog) {
		return fmt.Errorf("%s: %w", op, model.ErrForbidden)
	}

	if err := s.store.Catalog().SetModuleActive(ctx, moduleID, false); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, err)
		}
		return fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}

	s.logger.Printf("training module %d deactivated by user %d", moduleID, identity.UserID)
	return nil
}

// ImportFile импортирует каталог из YAML файла
func (s *CatalogService) ImportFile(ctx context.Context, filename string) (*ImportResult, error) {
	const op = "catalog.ImportFile"

	catalog, err := LoadCatalogFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrValidation, err)
	}
	if err := s.validate.Struct(catalog); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrValidation, err)
	}
	return s.Import(ctx, catalog.Modules)
}

// Import создает модули одной транзакцией. Модули с уже существующим названием пропускаются,
// поэтому повторный импорт того же файла ничего не меняет.
func (s *CatalogService) Import(ctx context.Context, specs []ModuleSpec) (*ImportResult, error) {
	const op = "catalog.Import"

	if err := validateSpecs(s.validate, specs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &ImportResult{Created: []int{}, Skipped: []string{}}
	err := s.store.InTx(ctx, func(ctx context.Context, uow storage.UnitOfWork) error {
		result.Created, result.Skipped = result.Created[:0], result.Skipped[:0]

		for _, spec := range specs {
			module := spec.toModule()

			existing, err := uow.Catalog().GetModuleByTitle(ctx, module.Title)
			if err != nil {
				return err
			}
			if existing != nil {
				result.Skipped = append(result.Skipped, module.Title)
				continue
			}

			moduleID, err := uow.Catalog().CreateModule(ctx, module)
			if err != nil {
				return err
			}
			result.Created = append(result.Created, moduleID)

			for _, pathName := range spec.Paths {
				if err := attachToPath(ctx, uow, pathName, module); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}

	s.logger.Printf("catalog import: %d created, %d skipped", len(result.Created), len(result.Skipped))
	return result, nil
}

// attachToPath добавляет модуль шагом в конец пути, создавая путь при необходимости
func attachToPath(ctx context.Context, uow storage.UnitOfWork, pathName string, module *model.TrainingModule) error {
	path, err := uow.Paths().GetPathByName(ctx, pathName)
	if err != nil {
		return err
	}

	var pathID int
	if path != nil {
		pathID = path.ID
	} else {
		pathID, err = uow.Paths().CreatePath(ctx, pathName)
		if err != nil {
			return err
		}
	}

	if _, err := uow.Paths().AddStep(ctx, pathID, module.Title, module.ID); err != nil {
		return err
	}
	return nil
}
