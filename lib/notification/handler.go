package notificationhandler

import (
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	"asset-tools-backend/db"
	notificationdatastore "asset-tools-backend/lib/notification/data-store"
	"asset-tools-backend/lib/smtp"
	usersstore "asset-tools-backend/lib/users/store"
	connectionhub "asset-tools-backend/lib/ws/hub/connection-hub"
	"asset-tools-backend/models"
	dbmodels "asset-tools-backend/models/db"
	wsmodels "asset-tools-backend/models/ws"
)

// Provider доставляет уведомления без гарантий:
// ошибка доставки никогда не откатывает переход статуса, вызвавший уведомление.
type Provider interface {
	SendNotification(companyCode string, items []models.NotificationItem)
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

func (i impl) SendNotification(companyCode string, items []models.NotificationItem) {
	logger := log.WithField("company_code", companyCode)
	if len(items) == 0 {
		return
	}
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		logger.WithError(err).Error("уведомления не доставлены: ошибка получения подключения тенанта")
		return
	}
	dataStore := notificationdatastore.NewInstance(conn)
	userStore := usersstore.NewInstance(conn)
	for _, item := range items {
		payload, err := json.Marshal(item.Data)
		if err != nil {
			logger.WithError(err).Error("ошибка сериализации данных уведомления")
			payload = nil
		}
		msg := wsmodels.ServerMessage{
			ToUserID:  item.UserID,
			Time:      time.Now().Format("02.01.2006 15:04:05"),
			Title:     item.Title,
			Msg:       item.Detail,
			Severity:  string(item.Severity),
			IsManager: item.IsManager,
			Data:      string(payload),
		}
		if !connectionhub.Instance.SendMessage(companyCode, msg) {
			// пользователь офлайн, уведомление ждёт подключения в очереди
			rec := dbmodels.NotificationData{
				UserID:    item.UserID,
				Title:     item.Title,
				Msg:       item.Detail,
				Severity:  item.Severity,
				IsManager: item.IsManager,
				Data:      string(payload),
			}
			if _, err = dataStore.Create(rec); err != nil {
				logger.WithError(err).
					WithField("user_id", item.UserID).
					Error("ошибка сохранения отложенного уведомления")
			}
		}
		// менеджерам дублируем на почту
		if item.IsManager {
			i.sendEmail(companyCode, userStore, item)
		}
	}
}

func (i impl) sendEmail(companyCode string, userStore usersstore.Provider, item models.NotificationItem) {
	logger := log.
		WithField("company_code", companyCode).
		WithField("user_id", item.UserID)
	if smtp.Instance == nil {
		return
	}
	user, err := userStore.GetByID(item.UserID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения пользователя для отправки письма")
		return
	}
	if user == nil || user.Email == "" {
		return
	}
	err = smtp.Instance.SendEMail(models.SystemUser, user.Email, item.Detail, item.Title)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки письма с уведомлением")
	}
}
