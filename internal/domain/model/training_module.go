package model

// TrainingModule учебный модуль с тестом. Неактивные модули скрыты из дашбордов,
// но их попытки сохраняются.
type TrainingModule struct {
	ID           int        `json:"id"`
	Title        string     `json:"module_title"`
	Description  string     `json:"module_description"`
	Instructions string     `json:"module_instructions"`
	VideoURL     *string    `json:"video_url,omitempty"`
	Active       bool       `json:"active"`
	Questions    []Question `json:"questions,omitempty"`
}

// QuestionCount количество вопросов модуля; 0 заменяется на 1, чтобы не делить на ноль
func (m TrainingModule) QuestionCount() int {
	if len(m.Questions) == 0 {
		return 1
	}
	return len(m.Questions)
}

// FindQuestion ищет вопрос модуля по id
func (m TrainingModule) FindQuestion(questionID int) (Question, bool) {
	for _, q := range m.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return Question{}, false
}
