package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/IT-Nick/visionhub/internal/domain/model"
)

// AnswerData данные кнопки варианта ответа
type AnswerData struct {
	ModuleID   int
	AttemptID  int
	QuestionID int
	OptionID   int
}

// Args данные кнопки в порядке, в котором их разбирает ParseAnswer
func (a AnswerData) Args() []string {
	return []string{
		strconv.Itoa(a.ModuleID),
		strconv.Itoa(a.AttemptID),
		strconv.Itoa(a.QuestionID),
		strconv.Itoa(a.OptionID),
	}
}

// ParseAnswer разбирает данные кнопки варианта ответа
func ParseAnswer(args []string) (AnswerData, error) {
	ids, err := parseIDs(args, 4)
	if err != nil {
		return AnswerData{}, err
	}
	return AnswerData{ModuleID: ids[0], AttemptID: ids[1], QuestionID: ids[2], OptionID: ids[3]}, nil
}

// ParseID разбирает данные кнопки с одним идентификатором
func ParseID(args []string) (int, error) {
	ids, err := parseIDs(args, 1)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// ParseStartPayload извлекает идентификатор модуля из payload команды /start
func ParseStartPayload(payload string) (int, bool) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(payload), model.DeepLinkModulePrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseIDs(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("invalid callback data %q: want %d values", strings.Join(args, "|"), n)
	}
	ids := make([]int, n)
	for i, arg := range args {
		id, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid callback value %q", arg)
		}
		ids[i] = id
	}
	return ids, nil
}
