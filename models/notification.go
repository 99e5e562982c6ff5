package models

// Важность уведомления
type NotifySeverity string

const (
	NotifySeverityInfo    NotifySeverity = "info"
	NotifySeveritySuccess NotifySeverity = "success"
	NotifySeverityWarning NotifySeverity = "warning"
	NotifySeverityDanger  NotifySeverity = "danger"
)

// Элемент исходящего уведомления, доставка без гарантий
type NotificationItem struct {
	UserID    string
	Title     string
	Detail    string
	Severity  NotifySeverity
	IsManager bool
	Data      NotificationRef
}

// Ссылки на записи, вызвавшие уведомление
type NotificationRef struct {
	TransactionID string `json:"transaction_id,omitempty"`
	RequestID     string `json:"request_id,omitempty"`
}

const (
	NotifyTitleWaitingApproval = "Ожидается согласование выдачи"
	NotifyTitleRequestRejected = "Запрос на выдачу отклонён"
	NotifyTitleWaitingHandover = "Транзакция ожидает передачи"
	NotifyTitleReportMissing   = "Заявлена утеря актива"
	NotifyTitleReportDamaged   = "Заявлено повреждение актива"
)
