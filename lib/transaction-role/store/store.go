package transactionrolestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"asset-tools-backend/models"
	dbmodels "asset-tools-backend/models/db"
)

type Provider interface {
	FindApprovers(groupID string, attr models.RoleAttribute) (list []dbmodels.UserTransactionRole, err error)
	FindManagers(groupID string, attr models.RoleAttribute) (list []dbmodels.UserTransactionRole, err error)
	FindRole(groupID, userID string, attr models.RoleAttribute, roleTypes []models.TransactionRoleType) (rec *dbmodels.UserTransactionRole, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) FindApprovers(groupID string, attr models.RoleAttribute) (list []dbmodels.UserTransactionRole, err error) {
	list = []dbmodels.UserTransactionRole{}
	err = i.db.
		Where("group_id = ?", groupID).
		Where("role_attribute = ?", attr).
		Where("role_type = ?", models.TransactionRoleApproval).
		Where("is_active = true").
		Order("approval_level ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) FindManagers(groupID string, attr models.RoleAttribute) (list []dbmodels.UserTransactionRole, err error) {
	list = []dbmodels.UserTransactionRole{}
	err = i.db.
		Where("group_id = ?", groupID).
		Where("role_attribute = ?", attr).
		Where("role_type = ?", models.TransactionRoleManager).
		Where("is_active = true").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) FindRole(groupID, userID string, attr models.RoleAttribute, roleTypes []models.TransactionRoleType) (*dbmodels.UserTransactionRole, error) {
	rec := dbmodels.UserTransactionRole{}
	err := i.db.
		Where("group_id = ?", groupID).
		Where("user_ref_id = ?", userID).
		Where("role_attribute = ?", attr).
		Where("role_type IN ?", roleTypes).
		Where("is_active = true").
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
