package model

import "time"

// Answer ответ пользователя на вопрос в рамках попытки. Не более одного на (попытка, вопрос).
type Answer struct {
	ID               int       `json:"id"`
	AttemptID        int       `json:"progress_id"`
	QuestionID       int       `json:"question_id"`
	SelectedOptionID *int      `json:"selected_option_id,omitempty"`
	IsCorrect        bool      `json:"is_correct"`
	UpdatedAt        time.Time `json:"updated_at"`
}
