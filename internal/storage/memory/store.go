// Package memory хранилище портала в памяти процесса. Транзакции сериализуются одним мьютексом
// и работают над копией данных, которая подменяет основную только при успешном завершении.
// При заданном snapshotPath состояние после каждой записи сохраняется в JSON-файл.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/storage"
)

// data состояние хранилища. Поля экспортируются для сериализации снапшота.
type data struct {
	Users    map[int]model.User           `json:"users"`
	Modules  map[int]model.TrainingModule `json:"modules"`
	Paths    map[int]model.OnboardingPath `json:"paths"`
	Attempts map[int]model.Attempt        `json:"attempts"`
	Answers  map[int]model.Answer         `json:"answers"`
	Seq      sequences                    `json:"seq"`
}

type sequences struct {
	User     int `json:"user"`
	Module   int `json:"module"`
	Question int `json:"question"`
	Option   int `json:"option"`
	Path     int `json:"path"`
	Step     int `json:"step"`
	Attempt  int `json:"attempt"`
	Answer   int `json:"answer"`
}

func newData() *data {
	return &data{
		Users:    make(map[int]model.User),
		Modules:  make(map[int]model.TrainingModule),
		Paths:    make(map[int]model.OnboardingPath),
		Attempts: make(map[int]model.Attempt),
		Answers:  make(map[int]model.Answer),
	}
}

// clone копирует карты. Значения не изменяются на месте (срезы шагов и вопросов
// пересоздаются при изменении), поэтому поверхностной копии достаточно.
func (d *data) clone() *data {
	c := &data{
		Users:    make(map[int]model.User, len(d.Users)),
		Modules:  make(map[int]model.TrainingModule, len(d.Modules)),
		Paths:    make(map[int]model.OnboardingPath, len(d.Paths)),
		Attempts: make(map[int]model.Attempt, len(d.Attempts)),
		Answers:  make(map[int]model.Answer, len(d.Answers)),
		Seq:      d.Seq,
	}
	for k, v := range d.Users {
		c.Users[k] = v
	}
	for k, v := range d.Modules {
		c.Modules[k] = v
	}
	for k, v := range d.Paths {
		c.Paths[k] = v
	}
	for k, v := range d.Attempts {
		c.Attempts[k] = v
	}
	for k, v := range d.Answers {
		c.Answers[k] = v
	}
	return c
}

// Store хранилище в памяти
type Store struct {
	*unit
	mu           sync.Mutex
	d            *data
	snapshotPath string
}

// NewStore создаёт пустое хранилище без снапшота
func NewStore() *Store {
	s := &Store{d: newData()}
	s.unit = &unit{s: s}
	return s
}

// NewJSONStore создаёт хранилище, загружая и сохраняя состояние в указанный файл
func NewJSONStore(filename string) (*Store, error) {
	s := NewStore()
	s.snapshotPath = filename

	raw, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return s, s.save(s.d)
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл %s: %w", filename, err)
	}
	if len(raw) == 0 {
		return s, nil
	}

	loaded := newData()
	if err := json.Unmarshal(raw, loaded); err != nil {
		return nil, fmt.Errorf("не удалось разобрать JSON: %w", err)
	}
	s.d = loaded
	return s, nil
}

// save записывает снапшот d; вызывается под s.mu
func (s *Store) save(d *data) error {
	if s.snapshotPath == "" {
		return nil
	}
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("не удалось сериализовать данные: %w", err)
	}
	if err := os.WriteFile(s.snapshotPath, raw, 0644); err != nil {
		return fmt.Errorf("не удалось записать файл %s: %w", s.snapshotPath, err)
	}
	return nil
}

// publish делает d текущим состоянием, только если снапшот записан
func (s *Store) publish(d *data) error {
	if err := s.save(d); err != nil {
		return fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	s.d = d
	return nil
}

// InTx выполняет fn над копией данных и публикует ее при успехе
func (s *Store) InTx(ctx context.Context, fn storage.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := s.d.clone()
	if err := fn(ctx, &unit{s: s, tx: tx}); err != nil {
		return err
	}

	return s.publish(tx)
}

// Close ничего не освобождает
func (s *Store) Close() {}

// unit реализация репозиториев. Внутри транзакции tx != nil и мьютекс уже взят;
// вне транзакции каждый вызов берет мьютекс сам и работает с текущими данными.
type unit struct {
	s  *Store
	tx *data
}

func (u *unit) acquire() (*data, func()) {
	if u.tx != nil {
		return u.tx, func() {}
	}
	u.s.mu.Lock()
	return u.s.d, u.s.mu.Unlock
}

// acquireWrite как acquire, но вне транзакции возвращает копию данных,
// которую публикует commit
func (u *unit) acquireWrite() (*data, func()) {
	if u.tx != nil {
		return u.tx, func() {}
	}
	u.s.mu.Lock()
	return u.s.d.clone(), u.s.mu.Unlock
}

// commit публикует копию после записи вне транзакции
func (u *unit) commit(d *data) error {
	if u.tx != nil {
		return nil
	}
	return u.s.publish(d)
}

func (u *unit) Users() storage.UserRepository { return users{u} }
func (u *unit) Catalog() storage.CatalogRepository { return catalog{u} }
func (u *unit) Paths() storage.PathRepository { return paths{u} }
func (u *unit) Progress() storage.ProgressRepository { return progress{u} }
