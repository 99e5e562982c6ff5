package connectionhub

import (
	"sync"
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"

	wsmodels "asset-tools-backend/models/ws"
)

func newTestHub() *impl {
	return &impl{
		clients: map[string]clientSession{},
	}
}

func (i *impl) addTestSession(companyCode, userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.clients[clientKey(companyCode, userID)] = newSession(&websocket.Conn{})
}

func TestHubSendMessage(t *testing.T) {
	t.Run(`сообщение не доставляется без сессии`, func(t *testing.T) {
		h := newTestHub()
		require.False(t, h.SendMessage("alpha", wsmodels.ServerMessage{ToUserID: "u1"}))
	})
	t.Run(`сообщение доставляется в сессию пользователя`, func(t *testing.T) {
		h := newTestHub()
		h.addTestSession("alpha", "u1")
		require.True(t, h.SendMessage("alpha", wsmodels.ServerMessage{ToUserID: "u1"}))
		require.False(t, h.SendMessage("beta", wsmodels.ServerMessage{ToUserID: "u1"}))
	})
	t.Run(`после отключения доставка прекращается`, func(t *testing.T) {
		h := newTestHub()
		h.addTestSession("alpha", "u1")
		h.DeleteClient("alpha", "u1")
		require.False(t, h.SendMessage("alpha", wsmodels.ServerMessage{ToUserID: "u1"}))
	})
	t.Run(`конкурентные отправка и отключение`, func(t *testing.T) {
		h := newTestHub()
		for n := 0; n < 500; n++ {
			h.addTestSession("alpha", "u1")
			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				h.SendMessage("alpha", wsmodels.ServerMessage{ToUserID: "u1"})
			}()
			go func() {
				defer wg.Done()
				h.DeleteClient("alpha", "u1")
			}()
			wg.Wait()
		}
		require.False(t, h.SendMessage("alpha", wsmodels.ServerMessage{ToUserID: "u1"}))
	})
}
