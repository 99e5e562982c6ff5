package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	dbmodels "asset-tools-backend/models/db"
)

func autoMigrate(conn *gorm.DB) error {
	conn.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := conn.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := conn.AutoMigrate(&dbmodels.AssignmentTransaction{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AssignmentTransaction")
	}
	if err := conn.AutoMigrate(&dbmodels.AssignmentRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AssignmentRequest")
	}
	if err := conn.AutoMigrate(&dbmodels.AssignmentApproval{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AssignmentApproval")
	}
	if err := conn.AutoMigrate(&dbmodels.UserTransactionRole{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры UserTransactionRole")
	}
	if err := conn.AutoMigrate(&dbmodels.TransactionLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TransactionLog")
	}
	if err := conn.AutoMigrate(&dbmodels.UserAssignmentLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры UserAssignmentLog")
	}
	if err := conn.AutoMigrate(&dbmodels.FileDamage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры FileDamage")
	}
	if err := conn.AutoMigrate(&dbmodels.NotificationData{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры NotificationData")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
