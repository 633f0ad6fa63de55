package dto

// DashboardResponse распределение назначенных модулей по корзинам
type DashboardResponse struct {
	UserID     int               `json:"user_id"`
	ToDo       []ModuleSummary   `json:"to_do"`
	InProgress []ModuleSummary   `json:"in_progress"`
	Completed  []CompletedModule `json:"completed"`
}

type ModuleSummary struct {
	ModuleID    int     `json:"module_id"`
	Title       string  `json:"module_title"`
	Description string  `json:"module_description"`
	VideoURL    *string `json:"video_url,omitempty"`
}

type CompletedModule struct {
	Module ModuleSummary `json:"module"`
	Score  int           `json:"score"`
	Total  int           `json:"total"`
	Passed bool          `json:"passed"`
}
