package view

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/visionhub/internal/domain/dto"
	messageService "github.com/IT-Nick/visionhub/internal/domain/messages/service"
	"github.com/IT-Nick/visionhub/internal/domain/model"
)

// Dashboard текст и клавиатура дашборда. Кнопки есть у модулей к выполнению и в процессе.
func Dashboard(msgs *messageService.MessageService, d *dto.DashboardResponse) (string, *tele.ReplyMarkup) {
	markup := &tele.ReplyMarkup{}

	if len(d.ToDo)+len(d.InProgress)+len(d.Completed) == 0 {
		return msgs.GetMessage(messageService.EmptyDashboardKey), markup
	}

	lines := []string{msgs.GetMessage(messageService.DashboardTitleKey, len(d.ToDo), len(d.InProgress), len(d.Completed))}
	for _, c := range d.Completed {
		lines = append(lines, msgs.GetMessage(messageService.CompletedLineKey, c.Module.Title, c.Score, c.Total))
	}

	var rows []tele.Row
	for _, m := range append(append([]dto.ModuleSummary{}, d.InProgress...), d.ToDo...) {
		btn := markup.Data(msgs.GetButton(model.OpenModuleKey, m.Title), model.OpenModuleKey, strconv.Itoa(m.ModuleID))
		rows = append(rows, markup.Row(btn))
	}
	markup.Inline(rows...)

	return strings.Join(lines, "\n"), markup
}

// NextQuestion возвращает номер первого вопроса без ответа или -1, если отвечены все
func NextQuestion(session *dto.AttemptSession) int {
	for i, q := range session.Questions {
		if _, ok := session.Prefilled[q.QuestionID]; !ok {
			return i
		}
	}
	return -1
}

// Question текст и клавиатура следующего вопроса попытки. Когда все вопросы отвечены,
// возвращается предложение отправить модуль на проверку.
func Question(msgs *messageService.MessageService, session *dto.AttemptSession) (string, *tele.ReplyMarkup) {
	markup := &tele.ReplyMarkup{}

	i := NextQuestion(session)
	if i < 0 {
		submit := markup.Data(msgs.GetButton(model.SubmitKey), model.SubmitKey, strconv.Itoa(session.AttemptID))
		markup.Inline(markup.Row(submit))
		return msgs.GetMessage(messageService.ReadyToSubmitKey), markup
	}

	q := session.Questions[i]
	rows := make([]tele.Row, 0, len(q.Options))
	for _, o := range q.Options {
		data := AnswerData{
			ModuleID:   session.ModuleID,
			AttemptID:  session.AttemptID,
			QuestionID: q.QuestionID,
			OptionID:   o.OptionID,
		}
		rows = append(rows, markup.Row(markup.Data(o.Text, model.AnswerKey, data.Args()...)))
	}
	markup.Inline(rows...)

	return msgs.GetMessage(messageService.QuestionKey, i+1, len(session.Questions), q.Text), markup
}

// Result текст итога отправки и кнопка возврата к дашборду
func Result(msgs *messageService.MessageService, result *dto.RecordResult) (string, *tele.ReplyMarkup) {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data(msgs.GetButton(model.DashboardKey), model.DashboardKey)))

	key := messageService.ResultFailedKey
	if result.Passed {
		key = messageService.ResultPassedKey
	}
	return msgs.GetMessage(key, result.Score, result.Total), markup
}

// Options параметры отправки. Пустая клавиатура не передается.
func Options(markup *tele.ReplyMarkup) *tele.SendOptions {
	opts := &tele.SendOptions{}
	if markup != nil && len(markup.InlineKeyboard) > 0 {
		opts.ReplyMarkup = markup
	}
	return opts
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown экранирует служебные символы Markdown в тексте из каталога
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// Intro описание модуля перед первым вопросом, в разметке Markdown
func Intro(msgs *messageService.MessageService, module *model.TrainingModule) string {
	body := make([]string, 0, 3)
	for _, part := range []string{module.Description, module.Instructions} {
		if part != "" {
			body = append(body, EscapeMarkdown(part))
		}
	}
	if module.VideoURL != nil && *module.VideoURL != "" {
		body = append(body, "🎬 "+EscapeMarkdown(*module.VideoURL))
	}
	return msgs.GetMessage(messageService.ModuleIntroKey, EscapeMarkdown(module.Title), strings.Join(body, "\n\n"))
}

// Passed результат уже пройденного модуля, в разметке Markdown
func Passed(msgs *messageService.MessageService, session *dto.AttemptSession) string {
	score := 0
	if session.Score != nil {
		score = *session.Score
	}
	return msgs.GetMessage(messageService.ModulePassedKey, EscapeMarkdown(session.ModuleTitle), score, len(session.Questions))
}
