package service

import (
	"context"
	"fmt"

	"github.com/IT-Nick/visionhub/internal/domain/dto"
	"github.com/IT-Nick/visionhub/internal/domain/model"
	onboarding "github.com/IT-Nick/visionhub/internal/domain/onboarding/service"
	"github.com/IT-Nick/visionhub/internal/storage"
)

// Classifier раскладывает назначенные модули сотрудника по корзинам дашборда
type Classifier struct {
	store     storage.Store
	resolver  *onboarding.PathResolver
	evaluator *Evaluator
}

// NewClassifier создает новый экземпляр Classifier
func NewClassifier(store storage.Store, resolver *onboarding.PathResolver, evaluator *Evaluator) *Classifier {
	return &Classifier{store: store, resolver: resolver, evaluator: evaluator}
}

// Classify возвращает дашборд сотрудника subjectUserID. Смотреть его могут сам сотрудник,
// его руководитель и администратор.
func (c *Classifier) Classify(ctx context.Context, identity model.Identity, subjectUserID int) (*dto.DashboardResponse, error) {
	const op = "progress.Classify"

	self := identity.UserID == subjectUserID
	switch {
	case self && identity.Role.Can(model.PermissionTakeTraining):
	case !self && (identity.Role.Can(model.PermissionViewAll) || identity.Role.Can(model.PermissionViewTeam)):
	default:
		return nil, fmt.Errorf("%s: role %q cannot view user %d: %w", op, identity.Role, subjectUserID, model.ErrForbidden)
	}

	subject, err := c.store.Users().GetUserByID(ctx, subjectUserID)
	if err != nil {
		return nil, wrapError(op, err)
	}
	if subject.Role != model.RoleStaff {
		return nil, fmt.Errorf("%s: user %d is not staff: %w", op, subjectUserID, model.ErrForbidden)
	}
	if !self && !identity.Role.Can(model.PermissionViewAll) &&
		(subject.ManagerID == nil || *subject.ManagerID != identity.UserID) {
		return nil, fmt.Errorf("%s: user %d is not a direct report of %d: %w", op, subjectUserID, identity.UserID, model.ErrForbidden)
	}

	dashboard, err := c.Dashboard(ctx, c.store, subjectUserID)
	if err != nil {
		return nil, wrapError(op, err)
	}
	return dashboard, nil
}

// Dashboard классифицирует модули без проверки прав. Вызывающий отвечает за авторизацию.
func (c *Classifier) Dashboard(ctx context.Context, uow storage.UnitOfWork, userID int) (*dto.DashboardResponse, error) {
	modules, err := c.resolver.AssignedModules(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &dto.DashboardResponse{
		UserID:     userID,
		ToDo:       []dto.ModuleSummary{},
		InProgress: []dto.ModuleSummary{},
		Completed:  []dto.CompletedModule{},
	}

	for i := range modules {
		module := &modules[i]
		state, latest, err := c.evaluator.State(ctx, uow, userID, module)
		if err != nil {
			return nil, err
		}

		summary := dto.ModuleSummary{
			ModuleID:    module.ID,
			Title:       module.Title,
			Description: module.Description,
			VideoURL:    module.VideoURL,
		}

		switch state {
		case model.StateNone, model.StateCompletedFail:
			dashboard.ToDo = append(dashboard.ToDo, summary)
		case model.StateActive:
			dashboard.InProgress = append(dashboard.InProgress, summary)
		case model.StateCompletedPass:
			dashboard.Completed = append(dashboard.Completed, dto.CompletedModule{
				Module: summary,
				Score:  *latest.Score,
				Total:  module.QuestionCount(),
				Passed: true,
			})
		}
	}

	return dashboard, nil
}
