package controllers

import (
	apimodels "employee-management-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrorHandler ответ в общем формате для ошибок, не обработанных контроллером
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "внутренняя ошибка сервера"
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.
			WithError(err).
			WithField("method", ctx.Method()).
			WithField("path", ctx.Path()).
			Error("необработанная ошибка запроса")
	}
	return ctx.Status(code).JSON(apimodels.NewError(message))
}
