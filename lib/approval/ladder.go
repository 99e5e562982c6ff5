package approvalhandler

import (
	"gorm.io/gorm"

	approvalstore "asset-tools-backend/lib/assignment/approval-store"
	requeststore "asset-tools-backend/lib/assignment/request-store"
	transactionrolestore "asset-tools-backend/lib/transaction-role/store"
	"asset-tools-backend/models"
	dbmodels "asset-tools-backend/models/db"
)

// GenerateLadder создаёт задачи согласования по запросу в рамках открытой транзакции БД.
// Возвращает активированные задачи первого уровня для последующего уведомления.
// Если согласующие для группы не настроены, запрос сразу переводится в ожидание передачи.
func GenerateLadder(tx *gorm.DB, transaction dbmodels.AssignmentTransaction, request dbmodels.AssignmentRequest) ([]dbmodels.AssignmentApproval, error) {
	approvers, err := transactionrolestore.NewInstance(tx).FindApprovers(request.AssetGroup.RefID, models.RoleAttributeBorrowing)
	if err != nil {
		return nil, err
	}
	if len(approvers) == 0 {
		_, err = requeststore.NewInstance(tx).UpdateStatus(request.ID, []models.RequestStatus{models.RQStatusWaitingApproval}, models.RQStatusWaitingHandover)
		return nil, err
	}
	recs := buildLadder(transaction, request, approvers)
	err = approvalstore.NewInstance(tx).CreateBatch(recs)
	if err != nil {
		return nil, err
	}
	active := make([]dbmodels.AssignmentApproval, 0, len(recs))
	for _, rec := range recs {
		if rec.Status == models.ApprovalStatusNeed {
			active = append(active, rec)
		}
	}
	return active, nil
}

// buildLadder раскладывает настроенных согласующих в набор задач.
// Одна задача на согласующего на уровне, активируется только нижний уровень.
func buildLadder(transaction dbmodels.AssignmentTransaction, request dbmodels.AssignmentRequest, approvers []dbmodels.UserTransactionRole) []dbmodels.AssignmentApproval {
	firstLevel := 0
	for _, role := range approvers {
		if firstLevel == 0 || role.ApprovalLevel < firstLevel {
			firstLevel = role.ApprovalLevel
		}
	}
	recs := make([]dbmodels.AssignmentApproval, 0, len(approvers))
	for _, role := range approvers {
		status := models.ApprovalStatusPending
		if role.ApprovalLevel == firstLevel {
			status = models.ApprovalStatusNeed
		}
		recs = append(recs, dbmodels.AssignmentApproval{
			RequestID:        request.ID,
			TransactionRecID: transaction.ID,
			TransactionID:    transaction.TransactionID,
			Approver:         role.User,
			Level:            role.ApprovalLevel,
			Type:             role.ApprovalType,
			Status:           status,
		})
	}
	return recs
}

// Итог классификации запросов транзакции
type aggregateOutcome int

const (
	aggregateNone aggregateOutcome = iota
	aggregateWait
	aggregateCancelled
	aggregateRejected
	aggregateHandover
)

// classifyRequests определяет статус транзакции по статусам её запросов.
// Пока хотя бы один запрос на согласовании, транзакция не меняется.
func classifyRequests(list []dbmodels.AssignmentRequest) aggregateOutcome {
	if len(list) == 0 {
		return aggregateNone
	}
	cancelled := 0
	rejected := 0
	for _, rec := range list {
		switch {
		case rec.Status.InFlight():
			return aggregateWait
		case rec.Status == models.RQStatusCancelled:
			cancelled++
		case rec.Status == models.RQStatusRejected:
			rejected++
		}
	}
	if cancelled == len(list) {
		return aggregateCancelled
	}
	// отклонение вместе с частичной отменой считается отклонением всей транзакции
	if cancelled+rejected == len(list) {
		return aggregateRejected
	}
	return aggregateHandover
}
