package assignmenthandler

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"asset-tools-backend/db"
	approvalhandler "asset-tools-backend/lib/approval"
	approvalstore "asset-tools-backend/lib/assignment/approval-store"
	damagestore "asset-tools-backend/lib/assignment/damage-store"
	logstore "asset-tools-backend/lib/assignment/log-store"
	requeststore "asset-tools-backend/lib/assignment/request-store"
	transactionstore "asset-tools-backend/lib/assignment/transaction-store"
	xlsexport "asset-tools-backend/lib/export/xls"
	filestorage "asset-tools-backend/lib/file-storage"
	notificationhandler "asset-tools-backend/lib/notification"
	transactionrolehandler "asset-tools-backend/lib/transaction-role"
	usersstore "asset-tools-backend/lib/users/store"
	"asset-tools-backend/models"
	assignmentapimodels "asset-tools-backend/models/api/assignment"
	dbmodels "asset-tools-backend/models/db"
)

// Provider - операции жизненного цикла выдачи активов.
// Пакет позиций раскладывается на транзакции по парам (группа, получатель),
// привилегированные действия требуют роли менеджера группы.
type Provider interface {
	Create(companyCode, managerID string, data assignmentapimodels.CreateTransactionData) ([]assignmentapimodels.TransactionView, error)
	GetTransaction(companyCode, id string) (*assignmentapimodels.TransactionView, []assignmentapimodels.RequestView, error)
	CancelTransaction(companyCode, userID, id string) (*assignmentapimodels.TransactionView, error)
	CancelRequests(companyCode, userID string, ids []string) error
	HandoverTransaction(companyCode, userID, id string, data assignmentapimodels.HandoverData) (*assignmentapimodels.TransactionView, error)
	UnassignRequests(companyCode, userID string, ids []string) error
	Report(ctx context.Context, companyCode, userID, requestID string, kind models.ReportKind, data assignmentapimodels.ReportData, image assignmentapimodels.DamageImageData) (*assignmentapimodels.RequestView, error)
	LogList(companyCode, requestID string) ([]assignmentapimodels.TransactionLogView, error)
	LogExport(companyCode, requestID string) (*bytes.Buffer, error)
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

var cancelableRequestStatuses = []models.RequestStatus{
	models.RQStatusWaitingApproval,
	models.RQStatusApproved,
	models.RQStatusWaitingHandover,
}

func (i impl) Create(companyCode, managerID string, data assignmentapimodels.CreateTransactionData) ([]assignmentapimodels.TransactionView, error) {
	logger := log.
		WithField("company_code", companyCode).
		WithField("manager_id", managerID)
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return nil, err
	}
	manager, err := usersstore.NewInstance(conn).GetActiveByID(managerID)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "пользователь %v не найден", managerID)
	}
	managerRef := manager.ToRef()
	groups := groupRequests(data.Requests)
	created := make([]dbmodels.AssignmentTransaction, 0, len(groups))
	notify := []models.NotificationItem{}

	err = conn.Transaction(func(tx *gorm.DB) error {
		txStore := transactionstore.NewInstance(tx)
		reqStore := requeststore.NewInstance(tx)
		logStore := logstore.NewInstance(tx)
		prefix := transactionIDPrefix(time.Now())
		last, err := txStore.GetLastTransactionID(prefix)
		if err != nil {
			return err
		}
		for _, group := range groups {
			number := nextTransactionID(prefix, last)
			last = number
			transaction := dbmodels.AssignmentTransaction{
				TransactionID: number,
				Manager:       managerRef,
				Group:         group.Group.ToRef(),
				AssignedTo:    group.User.ToRef(),
				Status:        models.TRStatusWaitingApproval,
			}
			id, err := txStore.Create(transaction)
			if err != nil {
				return err
			}
			transaction.ID = id
			for _, item := range group.Items {
				request := dbmodels.AssignmentRequest{
					TransactionRecID: id,
					AssetID:          item.Asset,
					AssetName:        item.AssetName.ToRef(),
					AssetBrand:       item.AssetBrand.ToRef(),
					AssetModel:       item.AssetModel.ToRef(),
					AssetGroup:       item.AssetGroup.ToRef(),
					AssignedTo:       group.User.ToRef(),
					Status:           models.RQStatusWaitingApproval,
				}
				requestID, err := reqStore.Create(request)
				if err != nil {
					return err
				}
				request.ID = requestID
				_, err = logStore.Create(dbmodels.TransactionLog{
					Type:          dbmodels.TransactionLogTypeAssignment,
					TransactionID: number,
					RequestID:     requestID,
					Action:        "Assignment requested",
					UserID:        managerRef.RefID,
					UserFullName:  managerRef.Name,
					Detail:        item.AssetName.Name,
				})
				if err != nil {
					return err
				}
				active, err := approvalhandler.GenerateLadder(tx, transaction, request)
				if err != nil {
					return err
				}
				for _, approval := range active {
					notify = append(notify, models.NotificationItem{
						UserID:   approval.Approver.RefID,
						Title:    models.NotifyTitleWaitingApproval,
						Detail:   fmt.Sprintf("Транзакция %v, уровень %v", number, approval.Level),
						Severity: models.NotifySeverityWarning,
						Data: models.NotificationRef{
							TransactionID: id,
							RequestID:     requestID,
						},
					})
				}
			}
			created = append(created, transaction)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	notificationhandler.Instance.SendNotification(companyCode, notify)
	result := make([]assignmentapimodels.TransactionView, 0, len(created))
	for _, transaction := range created {
		// подхватывает транзакции, чьи группы настроены без согласующих
		err = approvalhandler.Instance.AggregateTransaction(companyCode, transaction.ID)
		if err != nil {
			logger.WithError(err).
				WithField("transaction_id", transaction.TransactionID).
				Error("ошибка пересчёта статуса созданной транзакции")
		}
		rec, err := transactionstore.NewInstance(conn).GetByID(transaction.ID)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			transaction = *rec
		}
		result = append(result, assignmentapimodels.TransactionConvert(transaction))
	}
	return result, nil
}

func (i impl) GetTransaction(companyCode, id string) (*assignmentapimodels.TransactionView, []assignmentapimodels.RequestView, error) {
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return nil, nil, err
	}
	rec, err := transactionstore.NewInstance(conn).GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, errors.Wrapf(models.ErrNotFound, "транзакция %v не найдена", id)
	}
	requests, err := requeststore.NewInstance(conn).ListByTransaction(id)
	if err != nil {
		return nil, nil, err
	}
	view := assignmentapimodels.TransactionConvert(*rec)
	requestViews := make([]assignmentapimodels.RequestView, 0, len(requests))
	for _, request := range requests {
		requestViews = append(requestViews, assignmentapimodels.RequestConvert(request))
	}
	return &view, requestViews, nil
}

func (i impl) CancelTransaction(companyCode, userID, id string) (*assignmentapimodels.TransactionView, error) {
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return nil, err
	}
	rec, err := transactionstore.NewInstance(conn).GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "транзакция %v не найдена", id)
	}
	role, err := transactionrolehandler.Instance.IsManager(companyCode, rec.Group.RefID, userID, models.RoleAttributeBorrowing, []models.TransactionRoleType{models.TransactionRoleManager})
	if err != nil {
		return nil, err
	}
	if !rec.Status.AllowCancel() {
		return nil, errors.Wrapf(models.ErrConflict, "транзакция %v в статусе %v не может быть отменена", rec.TransactionID, rec.Status.ToHuman())
	}
	err = conn.Transaction(func(tx *gorm.DB) error {
		txStore := transactionstore.NewInstance(tx)
		reqStore := requeststore.NewInstance(tx)
		requests, err := reqStore.ListByTransaction(id)
		if err != nil {
			return err
		}
		changed, err := txStore.UpdateStatus(id, []models.TransactionStatus{models.TRStatusWaitingApproval, models.TRStatusWaitingHandover}, models.TRStatusCancelled)
		if err != nil {
			return err
		}
		if changed == 0 {
			return errors.Wrapf(models.ErrConflict, "транзакция %v уже изменена", rec.TransactionID)
		}
		_, err = reqStore.UpdateStatusByTransaction(id, cancelableRequestStatuses, models.RQStatusCancelled)
		if err != nil {
			return err
		}
		_, err = approvalstore.NewInstance(tx).CancelUndecidedByTransaction(id)
		if err != nil {
			return err
		}
		logStore := logstore.NewInstance(tx)
		for _, request := range requests {
			if !request.Status.AllowCancel() {
				continue
			}
			_, err = logStore.Create(dbmodels.TransactionLog{
				Type:          dbmodels.TransactionLogTypeAssignment,
				TransactionID: rec.TransactionID,
				RequestID:     request.ID,
				Action:        "Assignment cancelled",
				UserID:        role.User.RefID,
				UserFullName:  role.User.Name,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return i.transactionView(conn, id)
}

func (i impl) CancelRequests(companyCode, userID string, ids []string) error {
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return err
	}
	for _, id := range ids {
		rec, err := requeststore.NewInstance(conn).GetByID(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errors.Wrapf(models.ErrNotFound, "запрос %v не найден", id)
		}
		// роль проверяется на каждый запрос, группы могут различаться
		role, err := transactionrolehandler.Instance.IsManager(companyCode, rec.AssetGroup.RefID, userID, models.RoleAttributeBorrowing, []models.TransactionRoleType{models.TransactionRoleManager})
		if err != nil {
			return err
		}
		transactionID := ""
		if rec.Transaction != nil {
			transactionID = rec.Transaction.TransactionID
		}
		err = conn.Transaction(func(tx *gorm.DB) error {
			changed, err := requeststore.NewInstance(tx).UpdateStatus(id, cancelableRequestStatuses, models.RQStatusCancelled)
			if err != nil {
				return err
			}
			if changed == 0 {
				return errors.Wrapf(models.ErrConflict, "запрос %v в статусе %v не может быть отменён", id, rec.Status.ToHuman())
			}
			_, err = approvalstore.NewInstance(tx).CancelUndecidedByRequest(id)
			if err != nil {
				return err
			}
			_, err = logstore.NewInstance(tx).Create(dbmodels.TransactionLog{
				Type:          dbmodels.TransactionLogTypeAssignment,
				TransactionID: transactionID,
				RequestID:     id,
				Action:        "Assignment cancelled",
				UserID:        role.User.RefID,
				UserFullName:  role.User.Name,
			})
			return err
		})
		if err != nil {
			return err
		}
		err = approvalhandler.Instance.AggregateTransaction(companyCode, rec.TransactionRecID)
		if err != nil {
			return errors.Wrap(err, "запрос отменён, но пересчёт статуса транзакции не завершён")
		}
	}
	return nil
}

func (i impl) HandoverTransaction(companyCode, userID, id string, data assignmentapimodels.HandoverData) (*assignmentapimodels.TransactionView, error) {
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return nil, err
	}
	rec, err := transactionstore.NewInstance(conn).GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "транзакция %v не найдена", id)
	}
	role, err := transactionrolehandler.Instance.IsManager(companyCode, rec.Group.RefID, userID, models.RoleAttributeBorrowing, []models.TransactionRoleType{models.TransactionRoleManager})
	if err != nil {
		return nil, err
	}
	if rec.Status != models.TRStatusWaitingHandover {
		return nil, errors.Wrapf(models.ErrConflict, "транзакция %v в статусе %v не может быть передана", rec.TransactionID, rec.Status.ToHuman())
	}
	if !data.EmailConfirmed {
		return nil, errors.Wrap(models.ErrConflict, "передача не подтверждена получателем")
	}
	err = conn.Transaction(func(tx *gorm.DB) error {
		txStore := transactionstore.NewInstance(tx)
		reqStore := requeststore.NewInstance(tx)
		requests, err := reqStore.ListByTransaction(id)
		if err != nil {
			return err
		}
		changed, err := txStore.UpdateStatus(id, []models.TransactionStatus{models.TRStatusWaitingHandover}, models.TRStatusAssigned)
		if err != nil {
			return err
		}
		if changed == 0 {
			return errors.Wrapf(models.ErrConflict, "транзакция %v уже изменена", rec.TransactionID)
		}
		_, err = reqStore.UpdateStatusByTransaction(id, []models.RequestStatus{models.RQStatusWaitingHandover}, models.RQStatusAssigned)
		if err != nil {
			return err
		}
		logStore := logstore.NewInstance(tx)
		for _, request := range requests {
			if request.Status != models.RQStatusWaitingHandover {
				continue
			}
			_, err = logStore.Create(dbmodels.TransactionLog{
				Type:          dbmodels.TransactionLogTypeAssignment,
				TransactionID: rec.TransactionID,
				RequestID:     request.ID,
				Action:        "Assignment handed over",
				UserID:        role.User.RefID,
				UserFullName:  role.User.Name,
			})
			if err != nil {
				return err
			}
			_, err = logStore.CreateUserLog(dbmodels.UserAssignmentLog{
				UserID:    request.AssignedTo.RefID,
				RequestID: request.ID,
				AssetID:   request.AssetID,
				AssetName: request.AssetName.Name,
				Action:    "Asset assigned",
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return i.transactionView(conn, id)
}

func (i impl) UnassignRequests(companyCode, userID string, ids []string) error {
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return err
	}
	for _, id := range ids {
		rec, err := requeststore.NewInstance(conn).GetByID(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return errors.Wrapf(models.ErrNotFound, "запрос %v не найден", id)
		}
		role, err := transactionrolehandler.Instance.IsManager(companyCode, rec.AssetGroup.RefID, userID, models.RoleAttributeBorrowing, []models.TransactionRoleType{models.TransactionRoleManager})
		if err != nil {
			return err
		}
		transactionID := ""
		if rec.Transaction != nil {
			transactionID = rec.Transaction.TransactionID
		}
		err = conn.Transaction(func(tx *gorm.DB) error {
			reqStore := requeststore.NewInstance(tx)
			changed, err := reqStore.UpdateStatus(id, []models.RequestStatus{models.RQStatusAssigned}, models.RQStatusUnassigned)
			if err != nil {
				return err
			}
			if changed == 0 {
				return errors.Wrapf(models.ErrConflict, "запрос %v в статусе %v не может быть возвращён", id, rec.Status.ToHuman())
			}
			logStore := logstore.NewInstance(tx)
			_, err = logStore.Create(dbmodels.TransactionLog{
				Type:          dbmodels.TransactionLogTypeAssignment,
				TransactionID: transactionID,
				RequestID:     id,
				Action:        "Assignment unassigned",
				UserID:        role.User.RefID,
				UserFullName:  role.User.Name,
			})
			if err != nil {
				return err
			}
			_, err = logStore.CreateUserLog(dbmodels.UserAssignmentLog{
				UserID:    rec.AssignedTo.RefID,
				RequestID: id,
				AssetID:   rec.AssetID,
				AssetName: rec.AssetName.Name,
				Action:    "Asset returned",
			})
			if err != nil {
				return err
			}
			// транзакция закрывается, когда возвращён последний актив
			siblings, err := reqStore.ListByTransaction(rec.TransactionRecID)
			if err != nil {
				return err
			}
			if allRequestsEqualStatus(siblings, models.RQStatusUnassigned) {
				_, err = transactionstore.NewInstance(tx).UpdateStatus(rec.TransactionRecID, []models.TransactionStatus{models.TRStatusAssigned}, models.TRStatusUnassigned)
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (i impl) Report(ctx context.Context, companyCode, userID, requestID string, kind models.ReportKind, data assignmentapimodels.ReportData, image assignmentapimodels.DamageImageData) (*assignmentapimodels.RequestView, error) {
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return nil, err
	}
	rec, err := requeststore.NewInstance(conn).GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "запрос %v не найден", requestID)
	}
	selfReport := rec.AssignedTo.RefID == userID
	actor := rec.AssignedTo
	if !selfReport {
		role, err := transactionrolehandler.Instance.IsManager(companyCode, rec.AssetGroup.RefID, userID, models.RoleAttributeBorrowing, []models.TransactionRoleType{models.TransactionRoleManager})
		if err != nil {
			return nil, err
		}
		actor = role.User
	}
	newStatus := kind.RequestStatus(selfReport)
	if newStatus == "" {
		return nil, errors.Errorf("неизвестный вид заявления %v", kind)
	}

	damage := dbmodels.FileDamage{}
	withDamageFile := kind == models.ReportKindDamaged && !image.IsEmpty()
	if withDamageFile {
		damage, err = i.uploadDamagePhotos(ctx, companyCode, requestID, data.Note, image)
		if err != nil {
			return nil, err
		}
	}

	transactionID := ""
	if rec.Transaction != nil {
		transactionID = rec.Transaction.TransactionID
	}
	err = conn.Transaction(func(tx *gorm.DB) error {
		changed, err := requeststore.NewInstance(tx).UpdateStatus(requestID, []models.RequestStatus{models.RQStatusAssigned}, newStatus)
		if err != nil {
			return err
		}
		if changed == 0 {
			return errors.Wrapf(models.ErrConflict, "заявление допустимо только по выданному активу, текущий статус %v", rec.Status.ToHuman())
		}
		logStore := logstore.NewInstance(tx)
		_, err = logStore.Create(dbmodels.TransactionLog{
			Type:          dbmodels.TransactionLogTypeAssignment,
			TransactionID: transactionID,
			RequestID:     requestID,
			Action:        string(newStatus),
			UserID:        actor.RefID,
			UserFullName:  actor.Name,
			Detail:        data.Note,
		})
		if err != nil {
			return err
		}
		_, err = logStore.CreateUserLog(dbmodels.UserAssignmentLog{
			UserID:    rec.AssignedTo.RefID,
			RequestID: requestID,
			AssetID:   rec.AssetID,
			AssetName: rec.AssetName.Name,
			Action:    string(newStatus),
			Notes:     data.Note,
		})
		if err != nil {
			return err
		}
		if withDamageFile {
			_, err = damagestore.NewInstance(tx).Create(damage)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	i.notifyReport(companyCode, *rec, kind, data.Note)

	updated, err := requeststore.NewInstance(conn).GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "запрос %v не найден", requestID)
	}
	view := assignmentapimodels.RequestConvert(*updated)
	return &view, nil
}

func (i impl) LogList(companyCode, requestID string) ([]assignmentapimodels.TransactionLogView, error) {
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return nil, err
	}
	list, err := logstore.NewInstance(conn).ListByRequest(requestID)
	if err != nil {
		return nil, err
	}
	result := make([]assignmentapimodels.TransactionLogView, 0, len(list))
	for _, rec := range list {
		result = append(result, assignmentapimodels.TransactionLogConvert(rec))
	}
	return result, nil
}

func (i impl) LogExport(companyCode, requestID string) (*bytes.Buffer, error) {
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return nil, err
	}
	list, err := logstore.NewInstance(conn).ListByRequest(requestID)
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportTransactionLog(list)
}

// uploadDamagePhotos сохраняет три размера фотофиксации до открытия транзакции БД,
// чтобы не держать её на время обмена с S3
func (i impl) uploadDamagePhotos(ctx context.Context, companyCode, requestID, note string, image assignmentapimodels.DamageImageData) (dbmodels.FileDamage, error) {
	rec := dbmodels.FileDamage{
		RequestID: requestID,
		Notes:     note,
	}
	fileID := uuid.NewString()
	var err error
	if len(image.Big) != 0 {
		rec.BigPath, err = filestorage.Instance.Upload(ctx, companyCode, fmt.Sprintf("damage/%v/%v_big.jpg", requestID, fileID), image.Big, "image/jpeg")
		if err != nil {
			return rec, err
		}
	}
	if len(image.Medium) != 0 {
		rec.MediumPath, err = filestorage.Instance.Upload(ctx, companyCode, fmt.Sprintf("damage/%v/%v_medium.jpg", requestID, fileID), image.Medium, "image/jpeg")
		if err != nil {
			return rec, err
		}
	}
	if len(image.Small) != 0 {
		rec.SmallPath, err = filestorage.Instance.Upload(ctx, companyCode, fmt.Sprintf("damage/%v/%v_small.jpg", requestID, fileID), image.Small, "image/jpeg")
		if err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// notifyReport уведомляет ответственных за учёт или обслуживание активов
func (i impl) notifyReport(companyCode string, rec dbmodels.AssignmentRequest, kind models.ReportKind, note string) {
	attr := models.RoleAttributeTracking
	title := models.NotifyTitleReportMissing
	if kind == models.ReportKindDamaged {
		attr = models.RoleAttributeMaintenance
		title = models.NotifyTitleReportDamaged
	}
	managers, err := transactionrolehandler.Instance.FindManagers(companyCode, rec.AssetGroup.RefID, attr)
	if err != nil {
		log.WithError(err).
			WithField("company_code", companyCode).
			WithField("request_id", rec.ID).
			Error("ошибка поиска ответственных для уведомления по заявлению")
		return
	}
	detail := fmt.Sprintf("Актив %v, получатель %v", rec.AssetName.Name, rec.AssignedTo.Name)
	if note != "" {
		detail = fmt.Sprintf("%v: %v", detail, note)
	}
	notify := make([]models.NotificationItem, 0, len(managers))
	for _, manager := range managers {
		notify = append(notify, models.NotificationItem{
			UserID:    manager.User.RefID,
			Title:     title,
			Detail:    detail,
			Severity:  models.NotifySeverityDanger,
			IsManager: true,
			Data: models.NotificationRef{
				TransactionID: rec.TransactionRecID,
				RequestID:     rec.ID,
			},
		})
	}
	notificationhandler.Instance.SendNotification(companyCode, notify)
}

func (i impl) transactionView(conn *gorm.DB, id string) (*assignmentapimodels.TransactionView, error) {
	rec, err := transactionstore.NewInstance(conn).GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "транзакция %v не найдена", id)
	}
	view := assignmentapimodels.TransactionConvert(*rec)
	return &view, nil
}
