package models

// Статусы задачи согласования
type ApprovalStatus string

const (
	ApprovalStatusPending   ApprovalStatus = "Pending"
	ApprovalStatusNeed      ApprovalStatus = "Need Approval"
	ApprovalStatusFinished  ApprovalStatus = "Finished Approval"
	ApprovalStatusCancelled ApprovalStatus = "Cancelled"
)

var approvalStatusHumanName = map[ApprovalStatus]string{
	ApprovalStatusPending:   "Ожидает активации",
	ApprovalStatusNeed:      "Требует решения",
	ApprovalStatusFinished:  "Решение принято",
	ApprovalStatusCancelled: "Отменена",
}

func (s ApprovalStatus) ToHuman() string {
	if human, exist := approvalStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// Правило прохождения уровня согласования
type ApprovalType string

const (
	ApprovalTypeAnd ApprovalType = "And" // нужны решения всех согласующих уровня
	ApprovalTypeOr  ApprovalType = "Or"  // достаточно первого решения
)
