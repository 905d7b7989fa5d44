package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage("hr@company.com", "ivan@company.com", "Заявка согласована", "Строка 1\nСтрока 2")
	t.Run(`headers`, func(t *testing.T) {
		require.True(t, strings.HasPrefix(msg, "From: hr@company.com\r\nTo: ivan@company.com\r\nSubject: =?UTF-8?q?"))
		require.Contains(t, msg, "Content-Type: text/plain; charset=\"UTF-8\"")
	})
	t.Run(`body uses crlf`, func(t *testing.T) {
		require.True(t, strings.HasSuffix(msg, "\r\n\r\nСтрока 1\r\nСтрока 2\r\n"))
	})
}

func TestNotConfigured(t *testing.T) {
	require.NoError(t, Connect("", "", "", "", true))
	require.False(t, Instance.IsConfigured())
	require.NoError(t, Instance.SendEMail("ivan@company.com", "тема", "текст"))
}
