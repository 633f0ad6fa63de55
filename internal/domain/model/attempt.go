package model

import "time"

// Attempt одна попытка прохождения модуля пользователем (user_module_progress).
// CompletedAt устанавливается ровно один раз и делает попытку терминальной.
type Attempt struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	ModuleID      int        `json:"training_module_id"`
	AttemptNumber int        `json:"attempt_number"`
	StartedAt     time.Time  `json:"start_date"`
	CompletedAt   *time.Time `json:"completed_date,omitempty"`
	Score         *int       `json:"score,omitempty"`
}

// Terminal сообщает, завершена ли попытка
func (a Attempt) Terminal() bool {
	return a.CompletedAt != nil
}

// AttemptState состояние пары (пользователь, модуль) по последней попытке
type AttemptState string

const (
	StateNone          AttemptState = "none"
	StateActive        AttemptState = "active"
	StateCompletedPass AttemptState = "completed_pass"
	StateCompletedFail AttemptState = "completed_fail"
)

// Action действие при отправке ответов
type Action string

const (
	ActionSave   Action = "save"
	ActionSubmit Action = "submit"
)

// RecordStatus результат записи ответов
type RecordStatus string

const (
	StatusSaved     RecordStatus = "saved"
	StatusFinalized RecordStatus = "finalized"
)
