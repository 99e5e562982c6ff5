package transactionrolehandler

import (
	"github.com/pkg/errors"

	"asset-tools-backend/db"
	transactionrolestore "asset-tools-backend/lib/transaction-role/store"
	"asset-tools-backend/models"
	dbmodels "asset-tools-backend/models/db"
)

// Provider отвечает на вопросы авторизации процесса выдачи:
// кто согласует запросы группы, кто менеджер и является ли пользователь менеджером.
type Provider interface {
	FindApprovers(companyCode, groupID string, attr models.RoleAttribute) ([]dbmodels.UserTransactionRole, error)
	FindManagers(companyCode, groupID string, attr models.RoleAttribute) ([]dbmodels.UserTransactionRole, error)
	IsManager(companyCode, groupID, userID string, attr models.RoleAttribute, roleTypes []models.TransactionRoleType) (*dbmodels.UserTransactionRole, error)
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

func (i impl) store(companyCode string) (transactionrolestore.Provider, error) {
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		return nil, err
	}
	return transactionrolestore.NewInstance(conn), nil
}

func (i impl) FindApprovers(companyCode, groupID string, attr models.RoleAttribute) ([]dbmodels.UserTransactionRole, error) {
	store, err := i.store(companyCode)
	if err != nil {
		return nil, err
	}
	return store.FindApprovers(groupID, attr)
}

func (i impl) FindManagers(companyCode, groupID string, attr models.RoleAttribute) ([]dbmodels.UserTransactionRole, error) {
	store, err := i.store(companyCode)
	if err != nil {
		return nil, err
	}
	return store.FindManagers(groupID, attr)
}

// IsManager возвращает роль пользователя или ErrForbidden
func (i impl) IsManager(companyCode, groupID, userID string, attr models.RoleAttribute, roleTypes []models.TransactionRoleType) (*dbmodels.UserTransactionRole, error) {
	store, err := i.store(companyCode)
	if err != nil {
		return nil, err
	}
	rec, err := store.FindRole(groupID, userID, attr, roleTypes)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrapf(models.ErrForbidden, "пользователь %v не менеджер группы %v", userID, groupID)
	}
	return rec, nil
}
