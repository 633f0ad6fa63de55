package dto

import (
	"time"

	"github.com/IT-Nick/visionhub/internal/domain/model"
)

// AttemptSession результат begin-or-resume
type AttemptSession struct {
	AttemptID     int                `json:"attempt_id"`
	AttemptNumber int                `json:"attempt_number"`
	ModuleID      int                `json:"module_id"`
	ModuleTitle   string             `json:"module_title"`
	State         model.AttemptState `json:"state"`
	ReadOnly      bool               `json:"read_only"`
	StartedAt     time.Time          `json:"start_date"`
	Score         *int               `json:"score,omitempty"`
	Prefilled     map[int]int        `json:"prefilled_answers"`
	Questions     []QuestionView     `json:"questions,omitempty"`
}

// QuestionView вопрос без признака правильности вариантов
type QuestionView struct {
	QuestionID int          `json:"question_id"`
	Text       string       `json:"question_text"`
	Options    []OptionView `json:"options"`
}

type OptionView struct {
	OptionID int    `json:"option_id"`
	Text     string `json:"option_text"`
}

// RecordResult результат record-answers
type RecordResult struct {
	AttemptID int                `json:"attempt_id"`
	Status    model.RecordStatus `json:"status"`
	Passed    bool               `json:"passed,omitempty"`
	Score     int                `json:"score,omitempty"`
	Total     int                `json:"total,omitempty"`
	Skipped   []int              `json:"skipped_questions,omitempty"`
}
