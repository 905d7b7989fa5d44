package wsclient

import (
	"io"
	"testing"

	wsmodels "employee-management-backend/models/ws"

	"github.com/stretchr/testify/require"
)

type scriptedConn struct {
	messages []string
}

func (c *scriptedConn) ReadMessage() (int, []byte, error) {
	if len(c.messages) == 0 {
		return 0, nil, io.EOF
	}
	msg := c.messages[0]
	c.messages = c.messages[1:]
	return 1, []byte(msg), nil
}

type recordingSender struct {
	sent []wsmodels.ServerMessage
}

func (s *recordingSender) SendMessage(msg wsmodels.ServerMessage) bool {
	s.sent = append(s.sent, msg)
	return true
}

func TestDispatch(t *testing.T) {
	sender := &recordingSender{}
	client := NewClient("u1", &scriptedConn{messages: []string{"hello", " PING ", "ping"}}, sender)
	client.Dispatch()
	require.Len(t, sender.sent, 2)
	require.Equal(t, "PONG", sender.sent[0].Code)
	require.Equal(t, "u1", sender.sent[0].ToUserID)
}
