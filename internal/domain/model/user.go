package model

import "time"

// User сотрудник портала. Менеджер и путь онбординга хранятся как внешние ключи,
// связанные записи подгружаются через хранилище по id.
type User struct {
	ID               int       `json:"id"`
	Username         string    `json:"username"`
	FirstName        string    `json:"first_name"`
	Surname          string    `json:"surname"`
	JobTitle         string    `json:"job_title"`
	Role             RoleName  `json:"role"`
	ManagerID        *int      `json:"manager_id,omitempty"`
	OnboardingPathID *int      `json:"onboarding_path_id,omitempty"`
	TelegramUsername *string   `json:"telegram_username,omitempty"`
	IsOnboarding     bool      `json:"is_onboarding"`
	CreatedAt        time.Time `json:"created_at"`
}

// FullName возвращает имя и фамилию пользователя
func (u User) FullName() string {
	if u.Surname == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.Surname
}
