package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	app := fiber.New()
	app.Use(New(Config{Logger: logger, Tags: []string{TagMethod, TagPath, TagStatus}}))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warning", entry["level"])
	require.Equal(t, fiber.MethodGet, entry[TagMethod])
	require.Equal(t, "/missing", entry[TagPath])
	require.Equal(t, float64(fiber.StatusNotFound), entry[TagStatus])
}

func TestBodyTags(t *testing.T) {
	newApp := func(buf *bytes.Buffer) *fiber.App {
		logger := logrus.New()
		logger.SetOutput(buf)
		logger.SetFormatter(&logrus.JSONFormatter{})
		app := fiber.New()
		app.Use(New(Config{Logger: logger, Tags: []string{TagBody, TagResBody}}))
		app.Post("/*", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		})
		return app
	}
	t.Run("тело запроса и ответа в логе", func(t *testing.T) {
		buf := &bytes.Buffer{}
		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/leaves", bytes.NewBufferString(`{"reason":"отпуск"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		_, err := newApp(buf).Test(req)
		require.NoError(t, err)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, `{"reason":"отпуск"}`, entry[TagBody])
		require.Equal(t, `{"ok":true}`, entry[TagResBody])
	})
	t.Run("авторизация без тел", func(t *testing.T) {
		buf := &bytes.Buffer{}
		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"password":"secret"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		_, err := newApp(buf).Test(req)
		require.NoError(t, err)

		require.NotContains(t, buf.String(), "secret")
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.NotContains(t, entry, TagBody)
		require.NotContains(t, entry, TagResBody)
	})
}
