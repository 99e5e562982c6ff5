package dbmodels

// TransactionLog - неизменяемый журнал переходов статусов.
// Запись добавляется на каждый переход и никогда не правится.
const TransactionLogTypeAssignment = "Assignment"

type TransactionLog struct {
	BaseModel
	Type          string `gorm:"type:varchar(50)"`
	TransactionID string `gorm:"type:varchar(20);index"`
	RequestID     string `gorm:"type:varchar(36);index"`
	Action        string `gorm:"type:varchar(255)"`
	UserID        string `gorm:"type:varchar(36)"`
	UserFullName  string `gorm:"type:varchar(255)"`
	Detail        string
}

// UserAssignmentLog - журнал действий по активам в разрезе пользователя
type UserAssignmentLog struct {
	BaseModel
	UserID    string `gorm:"type:varchar(36);index"`
	RequestID string `gorm:"type:varchar(36);index"`
	AssetID   string `gorm:"type:varchar(36)"`
	AssetName string `gorm:"type:varchar(255)"`
	Action    string `gorm:"type:varchar(255)"`
	Notes     string
}
