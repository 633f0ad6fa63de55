package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/storage"
)

// PathResolver определяет модули, назначенные пользователю через путь онбординга
type PathResolver struct{}

// NewPathResolver создает новый экземпляр PathResolver
func NewPathResolver() *PathResolver {
	return &PathResolver{}
}

// AssignedModules возвращает активные модули шагов пути пользователя в порядке шагов.
// Модуль, встречающийся в нескольких шагах, возвращается один раз (по первому шагу).
// Пользователь без пути получает пустой список.
func (r *PathResolver) AssignedModules(ctx context.Context, uow storage.UnitOfWork, userID int) ([]model.TrainingModule, error) {
	const op = "onboarding.AssignedModules"

	user, err := uow.Users().GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	modules := []model.TrainingModule{}
	if user.OnboardingPathID == nil {
		return modules, nil
	}

	path, err := uow.Paths().GetPath(ctx, *user.OnboardingPathID)
	if errors.Is(err, model.ErrNotFound) {
		return modules, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[int]bool)
	for _, step := range path.Steps {
		if step.ModuleID == nil || seen[*step.ModuleID] {
			continue
		}
		seen[*step.ModuleID] = true

		module, err := uow.Catalog().GetModule(ctx, *step.ModuleID)
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !module.Active {
			continue
		}
		modules = append(modules, *module)
	}

	return modules, nil
}
