package model

// OnboardingPath путь онбординга, упорядоченный набор шагов
type OnboardingPath struct {
	ID    int              `json:"id"`
	Name  string           `json:"path_name"`
	Steps []OnboardingStep `json:"steps,omitempty"`
}

// OnboardingStep шаг пути, ссылающийся на учебный модуль
type OnboardingStep struct {
	ID       int    `json:"id"`
	PathID   int    `json:"onboarding_path_id"`
	Name     string `json:"step_name"`
	ModuleID *int   `json:"training_module_id,omitempty"`
	Position int    `json:"position"`
}
