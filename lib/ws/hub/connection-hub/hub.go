package connectionhub

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"

	"asset-tools-backend/db"
	notificationdatastore "asset-tools-backend/lib/notification/data-store"
	wsmodels "asset-tools-backend/models/ws"
)

type Provider interface {
	AddClient(companyCode, userID string, conn *websocket.Conn)
	DeleteClient(companyCode, userID string)
	SendMessage(companyCode string, msg wsmodels.ServerMessage) (delivered bool)
}

var Instance Provider

func Init(pool *db.Pool) {
	Instance = &impl{
		clients: map[string]clientSession{},
		pool:    pool,
	}
}

type impl struct {
	mu      sync.Mutex
	clients map[string]clientSession //map[companyCode/userID]
	pool    *db.Pool
}

func clientKey(companyCode, userID string) string {
	return companyCode + "/" + userID
}

func (i *impl) DeleteClient(companyCode, userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	key := clientKey(companyCode, userID)
	sess, ok := i.clients[key]
	if !ok {
		return
	}
	delete(i.clients, key)
	// канал не закрывается, потребитель завершается отменой контекста
	sess.stop()
}

func (i *impl) AddClient(companyCode, userID string, conn *websocket.Conn) {
	i.mu.Lock()
	key := clientKey(companyCode, userID)
	oldSess, ok := i.clients[key]
	if ok {
		oldSess.stop()
	}
	i.clients[key] = newSession(conn)
	i.mu.Unlock()
	go i.sendDelayedMessages(companyCode, userID)
}

// SendMessage передаёт сообщение сессии пользователя.
// Отправка выполняется под мьютексом, чтобы не попасть в канал
// сессии, удалённой параллельным DeleteClient.
func (i *impl) SendMessage(companyCode string, msg wsmodels.ServerMessage) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[clientKey(companyCode, msg.ToUserID)]
	if !ok {
		return false
	}
	select {
	case sess.sendCh <- msg:
		return true
	default:
		log.
			WithField("user_id", msg.ToUserID).
			Warn("буфер отправки переполнен, сообщение не доставлено")
		return false
	}
}

// sendDelayedMessages доставляет уведомления, накопленные пока пользователь был офлайн
func (i *impl) sendDelayedMessages(companyCode, userID string) {
	logger := log.
		WithField("company_code", companyCode).
		WithField("user_id", userID)
	conn, err := i.pool.Resolve(companyCode)
	if err != nil {
		logger.WithError(err).Error("ошибка получения подключения тенанта")
		return
	}
	store := notificationdatastore.NewInstance(conn)
	list, err := store.List(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка не отправленных событий")
		return
	}
	sentIDs := []string{}
	for _, item := range list {
		msg := wsmodels.ServerMessage{
			ToUserID:  userID,
			Time:      item.CreatedAt.Format("02.01.2006 15:04:05"),
			Title:     item.Title,
			Msg:       item.Msg,
			Severity:  string(item.Severity),
			IsManager: item.IsManager,
			Data:      item.Data,
		}
		if !i.SendMessage(companyCode, msg) {
			// пользователь отключился, остаток очереди доставит следующее подключение
			break
		}
		sentIDs = append(sentIDs, item.ID)
	}
	if len(sentIDs) > 0 {
		err = store.Delete(sentIDs)
		if err != nil {
			logger.WithError(err).Error("ошибка удаления отправленных событий")
			return
		}
	}
}
