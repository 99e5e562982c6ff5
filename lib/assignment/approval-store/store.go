package approvalstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"asset-tools-backend/models"
	dbmodels "asset-tools-backend/models/db"
)

type Provider interface {
	CreateBatch(recs []dbmodels.AssignmentApproval) error
	GetByID(id string) (rec *dbmodels.AssignmentApproval, err error)
	Decide(id, userID string, isApproved bool, notes string) (updated int64, err error)
	ListByRequestLevel(requestID string, level int) (list []dbmodels.AssignmentApproval, err error)
	ListByRequest(requestID string) (list []dbmodels.AssignmentApproval, err error)
	FinishLevel(requestID string, level int) (updated int64, err error)
	ActivateLevel(requestID string, level int) (updated int64, err error)
	FinishUndecidedByRequest(requestID string) (updated int64, err error)
	CancelUndecidedByRequest(requestID string) (updated int64, err error)
	CancelUndecidedByTransaction(transactionRecID string) (updated int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// статусы, в которых по задаче ещё не принято решение
var undecidedStatuses = []models.ApprovalStatus{
	models.ApprovalStatusPending,
	models.ApprovalStatusNeed,
}

func (i impl) CreateBatch(recs []dbmodels.AssignmentApproval) error {
	if len(recs) == 0 {
		return nil
	}
	return i.db.
		Omit("Request").
		Create(&recs).
		Error
}

func (i impl) GetByID(id string) (*dbmodels.AssignmentApproval, error) {
	rec := dbmodels.AssignmentApproval{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Decide применяет решение согласующего.
// Условие status = Need Approval защищает от повторного решения:
// уже решённая задача не изменится, updated вернётся 0.
func (i impl) Decide(id, userID string, isApproved bool, notes string) (int64, error) {
	updMap := map[string]interface{}{
		"is_approved": isApproved,
		"status":      models.ApprovalStatusFinished,
		"notes":       notes,
	}
	if isApproved {
		updMap["approved_at"] = time.Now()
	} else {
		updMap["approved_at"] = nil
	}
	tx := i.db.
		Model(&dbmodels.AssignmentApproval{}).
		Where("id = ?", id).
		Where("status = ?", models.ApprovalStatusNeed).
		Where("approver_ref_id = ?", userID).
		Updates(updMap)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) ListByRequestLevel(requestID string, level int) (list []dbmodels.AssignmentApproval, err error) {
	list = []dbmodels.AssignmentApproval{}
	err = i.db.
		Where("request_id = ?", requestID).
		Where("level = ?", level).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByRequest(requestID string) (list []dbmodels.AssignmentApproval, err error) {
	list = []dbmodels.AssignmentApproval{}
	err = i.db.
		Where("request_id = ?", requestID).
		Order("level ASC, created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) FinishLevel(requestID string, level int) (int64, error) {
	tx := i.db.
		Model(&dbmodels.AssignmentApproval{}).
		Where("request_id = ?", requestID).
		Where("level = ?", level).
		Where("status IN ?", undecidedStatuses).
		Update("status", models.ApprovalStatusFinished)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// ActivateLevel переводит задачи уровня из Pending в Need Approval
func (i impl) ActivateLevel(requestID string, level int) (int64, error) {
	tx := i.db.
		Model(&dbmodels.AssignmentApproval{}).
		Where("request_id = ?", requestID).
		Where("level = ?", level).
		Where("status = ?", models.ApprovalStatusPending).
		Update("status", models.ApprovalStatusNeed)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) FinishUndecidedByRequest(requestID string) (int64, error) {
	tx := i.db.
		Model(&dbmodels.AssignmentApproval{}).
		Where("request_id = ?", requestID).
		Where("status IN ?", undecidedStatuses).
		Update("status", models.ApprovalStatusFinished)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) CancelUndecidedByRequest(requestID string) (int64, error) {
	tx := i.db.
		Model(&dbmodels.AssignmentApproval{}).
		Where("request_id = ?", requestID).
		Where("status IN ?", undecidedStatuses).
		Update("status", models.ApprovalStatusCancelled)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) CancelUndecidedByTransaction(transactionRecID string) (int64, error) {
	tx := i.db.
		Model(&dbmodels.AssignmentApproval{}).
		Where("transaction_rec_id = ?", transactionRecID).
		Where("status IN ?", undecidedStatuses).
		Update("status", models.ApprovalStatusCancelled)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
