package model

// RoleName роль пользователя в портале
type RoleName string

const (
	RoleAdmin   RoleName = "admin"
	RoleManager RoleName = "manager"
	RoleStaff   RoleName = "staff"
)

// Permission право, которое может быть привязано к роли
type Permission string

const (
	PermissionTakeTraining  Permission = "take_training"
	PermissionViewTeam      Permission = "view_team"
	PermissionViewAll       Permission = "view_all"
	PermissionManageCatalog Permission = "manage_catalog"
)

// rolePermissions статическая матрица прав. Роли портала фиксированы, поэтому
// таблица role_permissions не нужна.
var rolePermissions = map[RoleName][]Permission{
	RoleStaff:   {PermissionTakeTraining},
	RoleManager: {PermissionViewTeam},
	RoleAdmin:   {PermissionViewTeam, PermissionViewAll, PermissionManageCatalog},
}

// ParseRole проверяет строковое имя роли
func ParseRole(s string) (RoleName, bool) {
	r := RoleName(s)
	_, ok := rolePermissions[r]
	return r, ok
}

// Can сообщает, есть ли у роли указанное право
func (r RoleName) Can(p Permission) bool {
	for _, perm := range rolePermissions[r] {
		if perm == p {
			return true
		}
	}
	return false
}

// Identity контекст вызывающего пользователя, который передает слой представления
type Identity struct {
	UserID int
	Role   RoleName
}
