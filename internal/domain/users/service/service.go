package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/storage"
)

// UserService содержит логику бизнес-операций для пользователей
type UserService struct {
	store    storage.Store
	validate *validator.Validate
}

// NewUserService создает новый экземпляр UserService
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store, validate: validator.New()}
}

// GetUserByID получает пользователя по ID
func (s *UserService) GetUserByID(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// IdentityByTelegram возвращает пользователя и контекст вызывающего по имени в Telegram.
// Пользователь, не заведенный в портале, получает model.ErrNotFound.
func (s *UserService) IdentityByTelegram(ctx context.Context, username string) (*model.User, model.Identity, error) {
	user, err := s.store.Users().GetUserByTelegramUsername(ctx, username)
	if err != nil {
		return nil, model.Identity{}, fmt.Errorf("failed to get user by telegram username: %w", err)
	}
	if user == nil {
		return nil, model.Identity{}, fmt.Errorf("telegram user %q: %w", username, model.ErrNotFound)
	}
	return user, model.Identity{UserID: user.ID, Role: user.Role}, nil
}

// VisibleStaff возвращает сотрудников, прогресс которых доступен вызывающему:
// администратору всех, руководителю только подчиненных
func (s *UserService) VisibleStaff(ctx context.Context, identity model.Identity) ([]model.User, error) {
	var (
		staff []model.User
		err   error
	)
	switch {
	case identity.Role.Can(model.PermissionViewAll):
		staff, err = s.store.Users().ListStaff(ctx)
	case identity.Role.Can(model.PermissionViewTeam):
		staff, err = s.store.Users().ListStaffByManager(ctx, identity.UserID)
	default:
		return nil, fmt.Errorf("role %q cannot view team: %w", identity.Role, model.ErrForbidden)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w: %w", model.ErrPersistence, err)
	}
	return staff, nil
}
