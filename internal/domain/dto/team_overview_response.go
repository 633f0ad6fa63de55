package dto

// TeamOverviewResponse сводка прохождения обучения по сотрудникам
type TeamOverviewResponse struct {
	TotalStaff int             `json:"total_staff"`
	Staff      []StaffProgress `json:"staff"`
}

type StaffProgress struct {
	UserID     int    `json:"user_id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	JobTitle   string `json:"job_title"`
	ToDo       int    `json:"to_do"`
	InProgress int    `json:"in_progress"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
}
