package dbmodels

import (
	"asset-tools-backend/models"
)

// UserTransactionRole - настройка ролей процесса выдачи:
// кто менеджер группы и кто на каком уровне согласует.
// Движок читает эти записи, но не изменяет их.
type UserTransactionRole struct {
	BaseModel
	GroupID       string                     `gorm:"type:varchar(36);index:idx_group_attr"`
	RoleAttribute models.RoleAttribute       `gorm:"type:varchar(50);index:idx_group_attr"`
	RoleType      models.TransactionRoleType `gorm:"type:varchar(20)"`
	ApprovalLevel int                        // только для RoleType = Approval
	ApprovalType  models.ApprovalType        `gorm:"type:varchar(10)"`
	User          EntityRef                  `gorm:"embedded;embeddedPrefix:user_"`
	IsActive      bool
}
