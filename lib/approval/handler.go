package approvalhandler

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"asset-tools-backend/db"
	approvalstore "asset-tools-backend/lib/assignment/approval-store"
	logstore "asset-tools-backend/lib/assignment/log-store"
	requeststore "asset-tools-backend/lib/assignment/request-store"
	transactionstore "asset-tools-backend/lib/assignment/transaction-store"
	notificationhandler "asset-tools-backend/lib/notification"
	transactionrolestore "asset-tools-backend/lib/transaction-role/store"
	"asset-tools-backend/models"
	assignmentapimodels "asset-tools-backend/models/api/assignment"
	dbmodels "asset-tools-backend/models/db"
)

// Provider - процессор решений по задачам согласования.
// Решение применяется только к задаче в статусе Need Approval и только её согласующим,
// повторное решение по той же задаче отклоняется как конфликт.
type Provider interface {
	Decide(companyCode, userID string, data []assignmentapimodels.ApprovalDecisionData) error
	AggregateTransaction(companyCode, transactionRecID string) error
	ListByRequest(companyCode, requestID string) ([]assignmentapimodels.ApprovalView, error)
}

var Instance Provider

func NewHandler(pool *db.Pool) {
	Instance = impl{
		pool: pool,
	}
}

type impl struct {
	pool *db.Pool
}

func (i impl) Decide(companyCode, userID string, data []assignmentapimodels.ApprovalDecisionData) error {
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return err
	}
	for _, decision := range data {
		err = i.decideOne(conn, companyCode, userID, decision)
		if err != nil {
			return err
		}
	}
	return nil
}

// decideOne применяет одно решение и продвигает лестницу согласования.
// Переходы выполняются условными обновлениями, поэтому повторный вызов
// после сбоя каскада безопасен.
func (i impl) decideOne(conn *gorm.DB, companyCode, userID string, decision assignmentapimodels.ApprovalDecisionData) error {
	logger := log.
		WithField("company_code", companyCode).
		WithField("approval_id", decision.ApprovalID)
	notify := []models.NotificationItem{}
	err := conn.Transaction(func(tx *gorm.DB) error {
		store := approvalstore.NewInstance(tx)
		rec, err := store.GetByID(decision.ApprovalID)
		if err != nil {
			return err
		}
		if rec == nil {
			return errors.Wrapf(models.ErrNotFound, "задача согласования %v не найдена", decision.ApprovalID)
		}
		if !decisionAllowed(*rec, userID) {
			return errors.Wrapf(models.ErrConflict, "задача согласования %v не активна или решается другим согласующим", decision.ApprovalID)
		}
		decided, err := store.Decide(decision.ApprovalID, userID, *decision.IsApproved, decision.Notes)
		if err != nil {
			return err
		}
		if decided == 0 {
			return errors.Wrapf(models.ErrConflict, "задача согласования %v изменена параллельным решением", decision.ApprovalID)
		}

		action := fmt.Sprintf("Level %v Approved", rec.Level)
		if !*decision.IsApproved {
			action = fmt.Sprintf("Level %v Rejected", rec.Level)
		}
		_, err = logstore.NewInstance(tx).Create(dbmodels.TransactionLog{
			Type:          dbmodels.TransactionLogTypeAssignment,
			TransactionID: rec.TransactionID,
			RequestID:     rec.RequestID,
			Action:        action,
			UserID:        rec.Approver.RefID,
			UserFullName:  rec.Approver.Name,
			Detail:        decision.Notes,
		})
		if err != nil {
			return err
		}

		if *decision.IsApproved {
			notify, err = i.applyApprove(tx, *rec)
			return err
		}
		notify, err = i.applyReject(tx, *rec)
		return err
	})
	if err != nil {
		return err
	}
	notificationhandler.Instance.SendNotification(companyCode, notify)
	err = i.aggregate(conn, companyCode, "", decision.ApprovalID)
	if err != nil {
		logger.WithError(err).Error("ошибка пересчёта статуса транзакции после решения")
		return errors.Wrap(err, "решение принято, но пересчёт статуса транзакции не завершён")
	}
	return nil
}

// applyApprove продвигает лестницу после одобрения:
// And-уровень ждёт остальных, завершённый уровень активирует следующий,
// исчерпанная лестница согласует запрос.
func (i impl) applyApprove(tx *gorm.DB, rec dbmodels.AssignmentApproval) ([]models.NotificationItem, error) {
	store := approvalstore.NewInstance(tx)
	ladder, err := store.ListByRequest(rec.RequestID)
	if err != nil {
		return nil, err
	}
	outcome, nextLevel := approveAdvance(rec, ladder)
	if outcome == advanceWait {
		return nil, nil
	}
	_, err = store.FinishLevel(rec.RequestID, rec.Level)
	if err != nil {
		return nil, err
	}
	if outcome == advanceApproved {
		// лестница пройдена
		_, err = requeststore.NewInstance(tx).UpdateStatus(rec.RequestID, []models.RequestStatus{models.RQStatusWaitingApproval}, models.RQStatusApproved)
		return nil, err
	}
	activated, err := store.ActivateLevel(rec.RequestID, nextLevel)
	if err != nil {
		return nil, err
	}
	if activated == 0 {
		// уровень уже активирован прошлым запуском каскада, согласующие уведомлены
		return nil, nil
	}
	next, err := store.ListByRequestLevel(rec.RequestID, nextLevel)
	if err != nil {
		return nil, err
	}
	notify := make([]models.NotificationItem, 0, len(next))
	for _, item := range next {
		if item.Status != models.ApprovalStatusNeed {
			continue
		}
		notify = append(notify, models.NotificationItem{
			UserID:   item.Approver.RefID,
			Title:    models.NotifyTitleWaitingApproval,
			Detail:   fmt.Sprintf("Транзакция %v, уровень %v", rec.TransactionID, item.Level),
			Severity: models.NotifySeverityWarning,
			Data: models.NotificationRef{
				TransactionID: rec.TransactionRecID,
				RequestID:     rec.RequestID,
			},
		})
	}
	return notify, nil
}

// applyReject завершает согласование запроса целиком: одного отклонения достаточно
// независимо от типа уровня, оставшиеся задачи закрываются без решения.
func (i impl) applyReject(tx *gorm.DB, rec dbmodels.AssignmentApproval) ([]models.NotificationItem, error) {
	_, err := approvalstore.NewInstance(tx).FinishUndecidedByRequest(rec.RequestID)
	if err != nil {
		return nil, err
	}
	_, err = requeststore.NewInstance(tx).UpdateStatus(rec.RequestID, []models.RequestStatus{models.RQStatusWaitingApproval}, models.RQStatusRejected)
	if err != nil {
		return nil, err
	}
	transaction, err := transactionstore.NewInstance(tx).GetByID(rec.TransactionRecID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "транзакция %v не найдена", rec.TransactionRecID)
	}
	managers, err := transactionrolestore.NewInstance(tx).FindManagers(transaction.Group.RefID, models.RoleAttributeBorrowing)
	if err != nil {
		return nil, err
	}
	detail := fmt.Sprintf("Транзакция %v, согласование уровня %v", rec.TransactionID, rec.Level)
	notify := []models.NotificationItem{
		{
			UserID:    transaction.Manager.RefID,
			Title:     models.NotifyTitleRequestRejected,
			Detail:    detail,
			Severity:  models.NotifySeverityDanger,
			IsManager: true,
			Data: models.NotificationRef{
				TransactionID: rec.TransactionRecID,
				RequestID:     rec.RequestID,
			},
		},
	}
	for _, manager := range managers {
		if manager.User.RefID == transaction.Manager.RefID {
			continue
		}
		notify = append(notify, models.NotificationItem{
			UserID:    manager.User.RefID,
			Title:     models.NotifyTitleRequestRejected,
			Detail:    detail,
			Severity:  models.NotifySeverityDanger,
			IsManager: true,
			Data: models.NotificationRef{
				TransactionID: rec.TransactionRecID,
				RequestID:     rec.RequestID,
			},
		})
	}
	return notify, nil
}

func (i impl) AggregateTransaction(companyCode, transactionRecID string) error {
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return err
	}
	return i.aggregate(conn, companyCode, transactionRecID, "")
}

// aggregate пересчитывает статус транзакции по статусам её запросов.
// Идемпотентен: повторный запуск на устоявшемся наборе ничего не меняет
// и не шлёт повторных уведомлений.
// Транзакция задаётся либо напрямую, либо через задачу согласования.
func (i impl) aggregate(conn *gorm.DB, companyCode, transactionRecID, approvalID string) error {
	if transactionRecID == "" {
		rec, err := approvalstore.NewInstance(conn).GetByID(approvalID)
		if err != nil {
			return err
		}
		if rec == nil {
			return errors.Wrapf(models.ErrNotFound, "задача согласования %v не найдена", approvalID)
		}
		transactionRecID = rec.TransactionRecID
	}
	notify := []models.NotificationItem{}
	err := conn.Transaction(func(tx *gorm.DB) error {
		txStore := transactionstore.NewInstance(tx)
		reqStore := requeststore.NewInstance(tx)
		transaction, err := txStore.GetByID(transactionRecID)
		if err != nil {
			return err
		}
		if transaction == nil {
			return errors.Wrapf(models.ErrNotFound, "транзакция %v не найдена", transactionRecID)
		}
		requests, err := reqStore.ListByTransaction(transactionRecID)
		if err != nil {
			return err
		}
		switch classifyRequests(requests) {
		case aggregateNone, aggregateWait:
			return nil
		case aggregateCancelled:
			_, err = txStore.UpdateStatus(transactionRecID, []models.TransactionStatus{models.TRStatusWaitingApproval, models.TRStatusWaitingHandover}, models.TRStatusCancelled)
			return err
		case aggregateRejected:
			_, err = txStore.UpdateStatus(transactionRecID, []models.TransactionStatus{models.TRStatusWaitingApproval}, models.TRStatusRejected)
			return err
		case aggregateHandover:
			_, err = reqStore.UpdateStatusByTransaction(transactionRecID, []models.RequestStatus{models.RQStatusApproved}, models.RQStatusWaitingHandover)
			if err != nil {
				return err
			}
			changed, err := txStore.UpdateStatus(transactionRecID, []models.TransactionStatus{models.TRStatusWaitingApproval}, models.TRStatusWaitingHandover)
			if err != nil {
				return err
			}
			if changed == 0 {
				return nil
			}
			managers, err := transactionrolestore.NewInstance(tx).FindManagers(transaction.Group.RefID, models.RoleAttributeBorrowing)
			if err != nil {
				return err
			}
			detail := fmt.Sprintf("Транзакция %v готова к передаче", transaction.TransactionID)
			seen := map[string]bool{}
			for _, manager := range append([]dbmodels.UserTransactionRole{{User: transaction.Manager}}, managers...) {
				if seen[manager.User.RefID] {
					continue
				}
				seen[manager.User.RefID] = true
				notify = append(notify, models.NotificationItem{
					UserID:    manager.User.RefID,
					Title:     models.NotifyTitleWaitingHandover,
					Detail:    detail,
					Severity:  models.NotifySeverityWarning,
					IsManager: true,
					Data: models.NotificationRef{
						TransactionID: transactionRecID,
					},
				})
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	notificationhandler.Instance.SendNotification(companyCode, notify)
	return nil
}

func (i impl) ListByRequest(companyCode, requestID string) ([]assignmentapimodels.ApprovalView, error) {
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return nil, err
	}
	list, err := approvalstore.NewInstance(conn).ListByRequest(requestID)
	if err != nil {
		return nil, err
	}
	result := make([]assignmentapimodels.ApprovalView, 0, len(list))
	for _, rec := range list {
		result = append(result, assignmentapimodels.ApprovalConvert(rec))
	}
	return result, nil
}
