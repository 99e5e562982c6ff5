package logstore

import (
	"gorm.io/gorm"

	dbmodels "asset-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.TransactionLog) (id string, err error)
	CreateUserLog(rec dbmodels.UserAssignmentLog) (id string, err error)
	ListByRequest(requestID string) (list []dbmodels.TransactionLog, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TransactionLog) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) CreateUserLog(rec dbmodels.UserAssignmentLog) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByRequest(requestID string) (list []dbmodels.TransactionLog, err error) {
	list = []dbmodels.TransactionLog{}
	err = i.db.
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
