package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX общий интерфейс pgxpool.Pool и pgx.Tx, поверх которого строятся репозитории
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Settings параметры подключения к базе данных
type Settings struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN строка подключения в формате postgres://
func (s Settings) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", s.User, s.Password, s.Host, s.Port, s.Name)
}

// Connect устанавливает подключение к базе данных
func Connect(ctx context.Context, s Settings, logger *log.Logger) (*pgxpool.Pool, error) {
	const op = "postgres.Connect"

	connConfig, err := pgxpool.ParseConfig(s.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	logger.Println("Database connected successfully!")
	return db, nil
}

// IsNoRows проверяет, что запрос не вернул строк
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation проверяет нарушение уникального ограничения (SQLSTATE 23505)
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
