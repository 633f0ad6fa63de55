package postgres

import (
	"context"
	"fmt"

	catalogRepo "github.com/IT-Nick/visionhub/internal/domain/catalog/repository"
	onboardingRepo "github.com/IT-Nick/visionhub/internal/domain/onboarding/repository"
	progressRepo "github.com/IT-Nick/visionhub/internal/domain/progress/repository"
	usersRepo "github.com/IT-Nick/visionhub/internal/domain/users/repository"
	"github.com/IT-Nick/visionhub/internal/infra/postgres"
	"github.com/IT-Nick/visionhub/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unit набор репозиториев поверх одного DBTX (пула или транзакции)
type unit struct {
	users    *usersRepo.UserRepository
	catalog  *catalogRepo.CatalogRepository
	paths    *onboardingRepo.PathRepository
	progress *progressRepo.ProgressRepository
}

func newUnit(db postgres.DBTX) *unit {
	return &unit{
		users:    usersRepo.NewUserRepository(db),
		catalog:  catalogRepo.NewCatalogRepository(db),
		paths:    onboardingRepo.NewPathRepository(db),
		progress: progressRepo.NewProgressRepository(db),
	}
}

func (u *unit) Users() storage.UserRepository { return u.users }
func (u *unit) Catalog() storage.CatalogRepository { return u.catalog }
func (u *unit) Paths() storage.PathRepository { return u.paths }
func (u *unit) Progress() storage.ProgressRepository { return u.progress }

// Store хранилище поверх PostgreSQL
type Store struct {
	*unit
	db *pgxpool.Pool
}

// NewStore создает хранилище поверх пула соединений
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{unit: newUnit(db), db: db}
}

// InTx выполняет fn в транзакции READ COMMITTED. Строки попыток блокируются явно
// (FOR UPDATE, advisory lock), поэтому более строгий уровень изоляции не нужен.
func (s *Store) InTx(ctx context.Context, fn storage.TxFunc) (err error) {
	const op = "postgres.Store.InTx"

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(ctx, newUnit(tx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}
	return nil
}

// Close закрывает пул соединений
func (s *Store) Close() {
	s.db.Close()
}
