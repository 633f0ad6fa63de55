package repository

import (
	"context"
	"fmt"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/infra/postgres"
)

const userColumns = `id, username, first_name, surname, job_title, role_name,
               manager_id, onboarding_path_id, telegram_username, is_onboarding, created_at`

// UserRepository реализация репозитория пользователей поверх PostgreSQL
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var user model.User
	var role string
	err := row.Scan(
		&user.ID, &user.Username, &user.FirstName, &user.Surname, &user.JobTitle, &role,
		&user.ManagerID, &user.OnboardingPathID, &user.TelegramUsername, &user.IsOnboarding, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = model.RoleName(role)
	return &user, nil
}

// GetUserByID получает пользователя по ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID int) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", userID))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetUserByUsername ищет пользователя по логину портала
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// GetUserByTelegramUsername ищет пользователя по его Telegram-username
func (r *UserRepository) GetUserByTelegramUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE telegram_username = $1", username))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil // Если пользователя нет, возвращаем nil
		}
		return nil, fmt.Errorf("failed to get user by telegram username: %w", err)
	}
	return user, nil
}

// ListStaff возвращает всех сотрудников с ролью staff
func (r *UserRepository) ListStaff(ctx context.Context) ([]model.User, error) {
	return r.list(ctx, "SELECT "+userColumns+" FROM users WHERE role_name = $1 ORDER BY id", string(model.RoleStaff))
}

// ListStaffByManager возвращает сотрудников, подчиненных менеджеру
func (r *UserRepository) ListStaffByManager(ctx context.Context, managerID int) ([]model.User, error) {
	return r.list(ctx, "SELECT "+userColumns+" FROM users WHERE role_name = $1 AND manager_id = $2 ORDER BY id",
		string(model.RoleStaff), managerID)
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}

	return users, nil
}

// CreateUser создает нового пользователя в базе данных
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (int, error) {
	var userID int
	err := r.db.QueryRow(ctx, `
                INSERT INTO users (username, first_name, surname, job_title, role_name,
                                   manager_id, onboarding_path_id, telegram_username, is_onboarding)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                RETURNING id, created_at
        `, user.Username, user.FirstName, user.Surname, user.JobTitle, string(user.Role),
		user.ManagerID, user.OnboardingPathID, user.TelegramUsername, user.IsOnboarding).
		Scan(&userID, &user.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = userID
	return userID, nil
}
