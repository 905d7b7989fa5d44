package wsclient

import (
	"strings"

	wsmodels "employee-management-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

const pingMessage = "ping"

type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
}

type Sender interface {
	SendMessage(msg wsmodels.ServerMessage) bool
}

func NewClient(userID string, c Conn, sender Sender) *WsClient {
	return &WsClient{
		conn:   c,
		userID: userID,
		sender: sender,
	}
}

type WsClient struct {
	conn   Conn
	userID string
	sender Sender
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch читает входящие сообщения до закрытия соединения, на ping отвечает PONG
func (c *WsClient) Dispatch() {
	logger := log.WithField("user_id", c.userID)
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("ошибка получения сообщения")
			}
			break
		}
		if strings.EqualFold(strings.TrimSpace(string(data)), pingMessage) {
			c.sender.SendMessage(wsmodels.ServerMessage{ToUserID: c.userID, Code: "PONG"})
			continue
		}
		logger.WithField("ws_message", string(data)).Debug("ws-msg")
	}
}
