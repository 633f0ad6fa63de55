package model

// Question вопрос учебного модуля
type Question struct {
	ID       int      `json:"id"`
	ModuleID int      `json:"module_id"`
	Text     string   `json:"question_text"`
	Position int      `json:"position"`
	Options  []Option `json:"options"`
}

// Option вариант ответа на вопрос
type Option struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"question_id"`
	Text       string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
}

// FindOption ищет вариант ответа среди вариантов вопроса
func (q Question) FindOption(optionID int) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == optionID {
			return o, true
		}
	}
	return Option{}, false
}
