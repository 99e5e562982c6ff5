package models

// Роль пользователя в системе (из JWT)
type UserRole string

const (
	CompanyAdminRole UserRole = "COMPANY_ADMIN_ROLE"
	CompanyUserRole  UserRole = "COMPANY_USER_ROLE"
)

var roleHumanName = map[UserRole]string{
	CompanyAdminRole: "Администратор",
	CompanyUserRole:  "Пользователь",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

const SystemUser = "Система"
