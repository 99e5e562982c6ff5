package requeststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"asset-tools-backend/models"
	dbmodels "asset-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AssignmentRequest) (id string, err error)
	GetByID(id string) (rec *dbmodels.AssignmentRequest, err error)
	ListByTransaction(transactionRecID string) (list []dbmodels.AssignmentRequest, err error)
	UpdateStatus(id string, from []models.RequestStatus, to models.RequestStatus) (updated int64, err error)
	UpdateStatusByTransaction(transactionRecID string, from []models.RequestStatus, to models.RequestStatus) (updated int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AssignmentRequest) (id string, err error) {
	err = i.db.
		Omit("Transaction").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.AssignmentRequest, error) {
	rec := dbmodels.AssignmentRequest{}
	err := i.db.
		Where("id = ?", id).
		Preload("Transaction").
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

func (i impl) ListByTransaction(transactionRecID string) (list []dbmodels.AssignmentRequest, err error) {
	list = []dbmodels.AssignmentRequest{}
	err = i.db.
		Where("transaction_rec_id = ?", transactionRecID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpdateStatus(id string, from []models.RequestStatus, to models.RequestStatus) (int64, error) {
	tx := i.db.
		Model(&dbmodels.AssignmentRequest{}).
		Where("id = ?", id).
		Where("status IN ?", from).
		Update("status", to)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// UpdateStatusByTransaction - массовый условный перевод статусов запросов транзакции
func (i impl) UpdateStatusByTransaction(transactionRecID string, from []models.RequestStatus, to models.RequestStatus) (int64, error) {
	tx := i.db.
		Model(&dbmodels.AssignmentRequest{}).
		Where("transaction_rec_id = ?", transactionRecID).
		Where("status IN ?", from).
		Update("status", to)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
