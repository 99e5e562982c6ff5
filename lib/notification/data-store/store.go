package notificationdatastore

import (
	"gorm.io/gorm"

	dbmodels "asset-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.NotificationData) (id string, err error)
	List(userID string) (list []dbmodels.NotificationData, err error)
	Delete(ids []string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.NotificationData) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(userID string) (list []dbmodels.NotificationData, err error) {
	list = []dbmodels.NotificationData{}
	err = i.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return i.db.
		Where("id IN ?", ids).
		Delete(&dbmodels.NotificationData{}).
		Error
}
