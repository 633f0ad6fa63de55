package record_answers_handler

// RecordAnswersRequest тело запроса: ответы вида {"<question_id>": <option_id>} и действие
type RecordAnswersRequest struct {
	Answers map[int]int `json:"answers" validate:"dive,keys,gt=0,endkeys,gt=0"`
	Action  string      `json:"action" validate:"required,oneof=save submit"`
}
