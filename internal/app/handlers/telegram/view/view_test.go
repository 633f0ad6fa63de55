package view

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT-Nick/visionhub/internal/domain/dto"
	messageService "github.com/IT-Nick/visionhub/internal/domain/messages/service"
	"github.com/IT-Nick/visionhub/internal/domain/model"
)

func TestParseAnswer(t *testing.T) {
	data := AnswerData{ModuleID: 1, AttemptID: 12, QuestionID: 40, OptionID: 161}
	parsed, err := ParseAnswer(data.Args())
	require.NoError(t, err)
	assert.Equal(t, data, parsed)

	for _, args := range [][]string{
		nil,
		{"1", "2", "3"},
		{"1", "2", "3", "x"},
		{"1", "2", "3", "0"},
		{"1", "2", "3", "4", "5"},
	} {
		_, err := ParseAnswer(args)
		assert.Error(t, err, args)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID([]string{" 7 "})
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	_, err = ParseID([]string{""})
	assert.Error(t, err)
}

func TestParseStartPayload(t *testing.T) {
	tests := []struct {
		payload string
		id      int
		ok      bool
	}{
		{payload: "module_5", id: 5, ok: true},
		{payload: " module_12 ", id: 12, ok: true},
		{payload: "", ok: false},
		{payload: "module_", ok: false},
		{payload: "module_-1", ok: false},
		{payload: "test_5", ok: false},
	}

	for _, tt := range tests {
		id, ok := ParseStartPayload(tt.payload)
		assert.Equal(t, tt.ok, ok, tt.payload)
		assert.Equal(t, tt.id, id, tt.payload)
	}
}

func TestDashboard(t *testing.T) {
	msgs := messageService.NewMessageService(nil)

	text, markup := Dashboard(msgs, &dto.DashboardResponse{
		ToDo:       []dto.ModuleSummary{},
		InProgress: []dto.ModuleSummary{},
		Completed:  []dto.CompletedModule{},
	})
	assert.Equal(t, msgs.GetMessage(messageService.EmptyDashboardKey), text)
	assert.Empty(t, markup.InlineKeyboard)

	text, markup = Dashboard(msgs, &dto.DashboardResponse{
		ToDo:       []dto.ModuleSummary{{ModuleID: 2, Title: "ИБ"}},
		InProgress: []dto.ModuleSummary{{ModuleID: 3, Title: "Склад"}},
		Completed:  []dto.CompletedModule{{Module: dto.ModuleSummary{ModuleID: 1, Title: "Safety 101"}, Score: 3, Total: 4, Passed: true}},
	})
	assert.Contains(t, text, "К выполнению: 1, в процессе: 1, завершено: 1")
	assert.Contains(t, text, "✅ Safety 101: 3 из 4")

	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "▶️ Склад", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, model.OpenModuleKey, markup.InlineKeyboard[0][0].Unique)
	assert.Equal(t, "3", markup.InlineKeyboard[0][0].Data)
	assert.Equal(t, "2", markup.InlineKeyboard[1][0].Data)
}

func session() *dto.AttemptSession {
	return &dto.AttemptSession{
		AttemptID: 12,
		ModuleID:  1,
		Prefilled: map[int]int{40: 160},
		Questions: []dto.QuestionView{
			{QuestionID: 40, Text: "Где выход?", Options: []dto.OptionView{{OptionID: 160, Text: "Слева"}, {OptionID: 161, Text: "Справа"}}},
			{QuestionID: 41, Text: "Куда звонить?", Options: []dto.OptionView{{OptionID: 162, Text: "112"}, {OptionID: 163, Text: "100"}}},
		},
	}
}

func TestQuestion(t *testing.T) {
	msgs := messageService.NewMessageService(nil)
	s := session()

	assert.Equal(t, 1, NextQuestion(s))
	text, markup := Question(msgs, s)
	assert.Equal(t, "Вопрос 2/2\n\nКуда звонить?", text)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, model.AnswerKey, markup.InlineKeyboard[0][0].Unique)
	assert.Equal(t, "1|12|41|162", markup.InlineKeyboard[0][0].Data)

	s.Prefilled[41] = 163
	assert.Equal(t, -1, NextQuestion(s))
	text, markup = Question(msgs, s)
	assert.Equal(t, msgs.GetMessage(messageService.ReadyToSubmitKey), text)
	require.Len(t, markup.InlineKeyboard, 1)
	assert.Equal(t, model.SubmitKey, markup.InlineKeyboard[0][0].Unique)
	assert.Equal(t, "12", markup.InlineKeyboard[0][0].Data)
}

func TestResult(t *testing.T) {
	msgs := messageService.NewMessageService(nil)

	text, _ := Result(msgs, &dto.RecordResult{Passed: true, Score: 2, Total: 4})
	assert.Equal(t, "🎉 Модуль пройден! Правильных ответов: 2 из 4.", text)

	text, markup := Result(msgs, &dto.RecordResult{Passed: false, Score: 1, Total: 4})
	assert.Contains(t, text, "не пройден: 1 из 4")
	assert.Equal(t, model.DashboardKey, markup.InlineKeyboard[0][0].Unique)
}

func TestErrorKey(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrUnknownSender, messageService.UnknownUserKey},
		{fmt.Errorf("op: %w", model.ErrForbidden), messageService.NotStaffKey},
		{fmt.Errorf("op: %w", model.ErrNotFound), messageService.ModuleNotFoundKey},
		{fmt.Errorf("op: %w", model.ErrInvalidState), messageService.AlreadyFinishedKey},
		{errors.New("boom"), messageService.GenericErrorKey},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKey(tt.err), tt.err.Error())
	}
}

func TestIntro(t *testing.T) {
	msgs := messageService.NewMessageService(nil)
	video := "https://video.example.com/safety"

	text := Intro(msgs, &model.TrainingModule{Title: "Safety 101", Description: "Основы", VideoURL: &video})
	assert.Equal(t, "📘 *Safety 101*\n\nОсновы\n\n🎬 "+video, text)
}

func TestIntro_EscapesCatalogText(t *testing.T) {
	msgs := messageService.NewMessageService(nil)
	video := "https://video.example.com/safety_intro"

	text := Intro(msgs, &model.TrainingModule{
		Title:        "Склад_1 *новый*",
		Description:  "Используйте `сканер` [ТСД]",
		Instructions: "Ответьте на 2 вопроса",
		VideoURL:     &video,
	})
	assert.Equal(t, "📘 *Склад\\_1 \\*новый\\**\n\nИспользуйте \\`сканер\\` \\[ТСД]\n\nОтветьте на 2 вопроса\n\n🎬 https://video.example.com/safety\\_intro", text)
}

func TestPassed(t *testing.T) {
	msgs := messageService.NewMessageService(nil)
	score := 2

	text := Passed(msgs, &dto.AttemptSession{ModuleTitle: "Охрана_труда", Score: &score, Questions: make([]dto.QuestionView, 3)})
	assert.Equal(t, "✅ Модуль *Охрана\\_труда* уже пройден: 2 из 3.", text)

	text = Passed(msgs, &dto.AttemptSession{ModuleTitle: "Safety 101"})
	assert.Equal(t, "✅ Модуль *Safety 101* уже пройден: 0 из 0.", text)
}
