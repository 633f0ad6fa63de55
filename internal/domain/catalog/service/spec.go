package service

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/IT-Nick/visionhub/internal/domain/model"
)

// CatalogFile файл каталога модулей в формате YAML
type CatalogFile struct {
	Modules []ModuleSpec `yaml:"modules" validate:"required,min=1,dive"`
}

// ModuleSpec описание модуля для импорта
type ModuleSpec struct {
	Title        string         `yaml:"title" validate:"required,max=200"`
	Description  string         `yaml:"description"`
	Instructions string         `yaml:"instructions"`
	VideoURL     string         `yaml:"video_url" validate:"omitempty,url"`
	Paths        []string       `yaml:"paths" validate:"dive,required"`
	Questions    []QuestionSpec `yaml:"questions" validate:"required,min=1,dive"`
}

// QuestionSpec вопрос с вариантами ответа
type QuestionSpec struct {
	Text    string       `yaml:"text" validate:"required"`
	Options []OptionSpec `yaml:"options" validate:"min=2,max=4,dive"`
}

// OptionSpec вариант ответа
type OptionSpec struct {
	Text    string `yaml:"text" validate:"required"`
	Correct bool   `yaml:"correct"`
}

// LoadCatalogFile читает каталог модулей из YAML файла
func LoadCatalogFile(filename string) (*CatalogFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	catalog := &CatalogFile{}
	if err := yaml.NewDecoder(f).Decode(catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", filename, err)
	}
	return catalog, nil
}

// validateSpecs проверяет описания модулей. Кроме тегов validator проверяется уникальность
// названий в файле и ровно один правильный вариант у каждого вопроса.
func validateSpecs(validate *validator.Validate, specs []ModuleSpec) error {
	var problems []string

	seen := make(map[string]bool, len(specs))
	for i, spec := range specs {
		if err := validate.Struct(spec); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					problems = append(problems, fmt.Sprintf("modules[%d]: %s failed on %q", i, fe.Namespace(), fe.Tag()))
				}
			} else {
				problems = append(problems, fmt.Sprintf("modules[%d]: %v", i, err))
			}
		}

		title := strings.TrimSpace(spec.Title)
		if seen[title] {
			problems = append(problems, fmt.Sprintf("modules[%d]: duplicate title %q", i, title))
		}
		seen[title] = true

		for qi, q := range spec.Questions {
			correct := 0
			for _, o := range q.Options {
				if o.Correct {
					correct++
				}
			}
			if correct != 1 {
				problems = append(problems, fmt.Sprintf("modules[%d].questions[%d]: expected exactly one correct option, got %d", i, qi, correct))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", model.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

// toModule переводит описание в модель каталога
func (spec ModuleSpec) toModule() *model.TrainingModule {
	module := &model.TrainingModule{
		Title:        strings.TrimSpace(spec.Title),
		Description:  spec.Description,
		Instructions: spec.Instructions,
		Active:       true,
	}
	if spec.VideoURL != "" {
		url := spec.VideoURL
		module.VideoURL = &url
	}
	for _, q := range spec.Questions {
		question := model.Question{Text: q.Text}
		for _, o := range q.Options {
			question.Options = append(question.Options, model.Option{Text: o.Text, IsCorrect: o.Correct})
		}
		module.Questions = append(module.Questions, question)
	}
	return module
}
