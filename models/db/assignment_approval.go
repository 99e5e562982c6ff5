package dbmodels

import (
	"time"

	"asset-tools-backend/models"
)

// AssignmentApproval - решение одного согласующего по одному запросу на одном уровне.
// Записи не удаляются, только переводятся в Finished Approval или Cancelled.
type AssignmentApproval struct {
	BaseModel
	RequestID        string                `gorm:"type:varchar(36);index"`
	Request          *AssignmentRequest    `gorm:"foreignKey:RequestID"`
	TransactionRecID string                `gorm:"type:varchar(36);index"`
	TransactionID    string                `gorm:"type:varchar(20)"` // человекочитаемый номер для журнала
	Approver         EntityRef             `gorm:"embedded;embeddedPrefix:approver_"`
	Level            int                   `gorm:"index"`
	Type             models.ApprovalType   `gorm:"type:varchar(10)"`
	Status           models.ApprovalStatus `gorm:"type:varchar(50);index"`
	IsApproved       *bool
	ApprovedAt       *time.Time
	Notes            string
}
