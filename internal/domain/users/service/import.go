package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/storage"
)

// UsersFile файл с сотрудниками портала в формате YAML
type UsersFile struct {
	Users []UserSpec `yaml:"users" validate:"required,min=1,dive"`
}

// UserSpec описание пользователя для импорта. Manager и Path ссылаются на логин
// руководителя и название пути онбординга.
type UserSpec struct {
	Username  string `yaml:"username" validate:"required,max=100"`
	FirstName string `yaml:"first_name" validate:"required"`
	Surname   string `yaml:"surname"`
	JobTitle  string `yaml:"job_title"`
	Role      string `yaml:"role" validate:"required,oneof=admin manager staff"`
	Telegram  string `yaml:"telegram" validate:"omitempty,max=64"`
	Manager   string `yaml:"manager"`
	Path      string `yaml:"path"`
}

// ImportResult итог импорта пользователей
type ImportResult struct {
	Created []int    `json:"created"`
	Skipped []string `json:"skipped"`
}

// LoadUsersFile читает пользователей из YAML файла
func LoadUsersFile(filename string) (*UsersFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file := &UsersFile{}
	if err := yaml.NewDecoder(f).Decode(file); err != nil {
		return nil, fmt.Errorf("failed to decode users %s: %w", filename, err)
	}
	return file, nil
}

// ImportFile загружает пользователей из файла и импортирует их
func (s *UserService) ImportFile(ctx context.Context, filename string) (*ImportResult, error) {
	file, err := LoadUsersFile(filename)
	if err != nil {
		return nil, fmt.Errorf("users.ImportFile: %w: %w", model.ErrValidation, err)
	}
	if err := s.validate.Struct(file); err != nil {
		return nil, fmt.Errorf("users.ImportFile: %w: %w", model.ErrValidation, err)
	}
	return s.Import(ctx, file.Users)
}

// Import создает пользователей одной транзакцией. Пользователи с существующим логином
// пропускаются. Руководитель должен быть описан раньше подчиненного или уже существовать.
func (s *UserService) Import(ctx context.Context, specs []UserSpec) (*ImportResult, error) {
	const op = "users.Import"

	for i := range specs {
		if err := s.validate.Struct(specs[i]); err != nil {
			return nil, fmt.Errorf("%s: user %q: %w: %w", op, specs[i].Username, model.ErrValidation, err)
		}
	}

	result := &ImportResult{Created: []int{}, Skipped: []string{}}
	err := s.store.InTx(ctx, func(ctx context.Context, uow storage.UnitOfWork) error {
		result.Created, result.Skipped = result.Created[:0], result.Skipped[:0]

		for _, spec := range specs {
			existing, err := uow.Users().GetUserByUsername(ctx, spec.Username)
			if err != nil {
				return err
			}
			if existing != nil {
				result.Skipped = append(result.Skipped, spec.Username)
				continue
			}

			user, err := resolveUser(ctx, uow, spec)
			if err != nil {
				return err
			}
			userID, err := uow.Users().CreateUser(ctx, user)
			if err != nil {
				return err
			}
			result.Created = append(result.Created, userID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}
	return result, nil
}

// resolveUser превращает описание в пользователя, подставляя id руководителя и пути
func resolveUser(ctx context.Context, uow storage.UnitOfWork, spec UserSpec) (*model.User, error) {
	user := &model.User{
		Username:  spec.Username,
		FirstName: spec.FirstName,
		Surname:   spec.Surname,
		JobTitle:  spec.JobTitle,
		Role:      model.RoleName(spec.Role),
	}
	if spec.Telegram != "" {
		telegram := spec.Telegram
		user.TelegramUsername = &telegram
	}

	if spec.Manager != "" {
		manager, err := uow.Users().GetUserByUsername(ctx, spec.Manager)
		if err != nil {
			return nil, err
		}
		if manager == nil {
			return nil, fmt.Errorf("manager %q of %q is unknown: %w", spec.Manager, spec.Username, model.ErrValidation)
		}
		user.ManagerID = &manager.ID
	}

	if spec.Path != "" {
		path, err := uow.Paths().GetPathByName(ctx, spec.Path)
		if err != nil {
			return nil, err
		}
		var pathID int
		if path != nil {
			pathID = path.ID
		} else if pathID, err = uow.Paths().CreatePath(ctx, spec.Path); err != nil {
			return nil, err
		}
		user.OnboardingPathID = &pathID
		user.IsOnboarding = user.Role == model.RoleStaff
	}

	return user, nil
}
