package transactionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"asset-tools-backend/models"
	dbmodels "asset-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AssignmentTransaction) (id string, err error)
	GetByID(id string) (rec *dbmodels.AssignmentTransaction, err error)
	GetLastTransactionID(prefix string) (transactionID string, err error)
	UpdateStatus(id string, from []models.TransactionStatus, to models.TransactionStatus) (updated int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AssignmentTransaction) (id string, err error) {
	err = i.db.
		Omit("Requests").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.AssignmentTransaction, error) {
	rec := dbmodels.AssignmentTransaction{}
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

// GetLastTransactionID - максимальный номер транзакции за день,
// prefix вида "ASG-240901-"
func (i impl) GetLastTransactionID(prefix string) (string, error) {
	rec := dbmodels.AssignmentTransaction{}
	err := i.db.
		Where("transaction_id LIKE ?", prefix+"%").
		Order("transaction_id DESC").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return rec.TransactionID, nil
}

// UpdateStatus - условное обновление статуса,
// из статусов from в to, возвращает число изменённых записей
func (i impl) UpdateStatus(id string, from []models.TransactionStatus, to models.TransactionStatus) (int64, error) {
	tx := i.db.
		Model(&dbmodels.AssignmentTransaction{}).
		Where("id = ?", id).
		Where("status IN ?", from).
		Update("status", to)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
