package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	apimodels "employee-management-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type errNotification struct {
	Code   int    `json:"code"`
	Method string `json:"method"`
	Path   string `json:"path"`
	UserID string `json:"user_id,omitempty"`
	Error  string `json:"error"`
}

// ErrNotify ответы 5xx дублируются на webhook addr
func ErrNotify(addr string) fiber.Handler {
	client := &http.Client{Timeout: 5 * time.Second}
	return func(c *fiber.Ctx) error {
		err := c.Next()
		statusCode := c.Response().StatusCode()
		if statusCode < fiber.StatusInternalServerError {
			return err
		}
		var resp apimodels.Response
		msg := string(c.Response().Body())
		if json.Unmarshal(c.Response().Body(), &resp) == nil && resp.Message != "" {
			msg = resp.Message
		}
		notification := errNotification{
			Code:   statusCode,
			Method: c.Method(),
			Path:   c.OriginalURL(),
			UserID: GetUserID(c),
			Error:  msg,
		}
		if r := c.Route(); r != nil {
			notification.Path = r.Path
		}
		go sendErrNotification(client, addr, notification)
		return err
	}
}

func sendErrNotification(client *http.Client, addr string, notification errNotification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		return
	}
	resp, err := client.Post(addr, fiber.MIMEApplicationJSON, bytes.NewReader(payload))
	if err != nil {
		log.WithError(err).Warn("ошибка отправки уведомления об ошибке")
		return
	}
	_ = resp.Body.Close()
}
