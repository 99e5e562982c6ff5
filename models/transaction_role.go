package models

// Тип роли пользователя в жизненном цикле транзакции
type TransactionRoleType string

const (
	TransactionRoleManager  TransactionRoleType = "Manager"
	TransactionRoleApproval TransactionRoleType = "Approval"
)

// Атрибут роли - к какому процессу группы относится роль
type RoleAttribute string

const (
	RoleAttributeBorrowing   RoleAttribute = "borrowingRole"
	RoleAttributeTracking    RoleAttribute = "trackingRole"
	RoleAttributeMaintenance RoleAttribute = "maintenanceRole"
)

var roleAttributeHumanName = map[RoleAttribute]string{
	RoleAttributeBorrowing:   "Выдача активов",
	RoleAttributeTracking:    "Учёт активов",
	RoleAttributeMaintenance: "Обслуживание активов",
}

func (r RoleAttribute) ToHuman() string {
	if human, exist := roleAttributeHumanName[r]; exist {
		return human
	}
	return string(r)
}
