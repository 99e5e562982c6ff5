package dbmodels

import "asset-tools-backend/models"

// NotificationData - отложенное уведомление для пользователя без активного ws-соединения
type NotificationData struct {
	BaseModel
	UserID    string                `gorm:"type:varchar(36);index:idx_notify_user"`
	Title     string                `gorm:"type:varchar(255)"`
	Msg       string
	Severity  models.NotifySeverity `gorm:"type:varchar(20)"`
	IsManager bool
	Data      string // json со ссылками на транзакцию/запрос
}
