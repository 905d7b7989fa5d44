package controllers

import (
	"strings"

	employeeprovider "employee-management-backend/lib/employee"
	apperrors "employee-management-backend/lib/utils/app-errors"
	"employee-management-backend/middleware"
	"employee-management-backend/models"
	apimodels "employee-management-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) QueryParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.QueryParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания параметров запроса")
		return errors.New("некорректные параметры запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(ctx.Params("id"))
	if id == "" {
		return "", errors.New("не указан идентификатор")
	}
	return id, nil
}

func (c *BaseAPIController) GetUser(ctx *fiber.Ctx) (userID string, role models.UserRole) {
	return middleware.GetUserID(ctx), middleware.GetUserRole(ctx)
}

// GetVisibility записи сотрудников, доступные пользователю запроса
func (c *BaseAPIController) GetVisibility(ctx *fiber.Ctx) (models.Visibility, error) {
	userID, role := c.GetUser(ctx)
	return employeeprovider.Instance.Visibility(userID, role)
}

// BadRequest ошибка разбора запроса, ошибки валидации отдаются по полям
func (c *BaseAPIController) BadRequest(ctx *fiber.Ctx, err error) error {
	if fields := apperrors.FieldErrors(err); len(fields) != 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewValidationError(err.Error(), fields))
	}
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
}

// SendError статус ответа по виду ошибки обработчика
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if fields := apperrors.FieldErrors(err); len(fields) != 0 {
		return ctx.Status(status).JSON(apimodels.NewValidationError(err.Error(), fields))
	}
	if status == fiber.StatusInternalServerError {
		log.
			WithField("path", ctx.Path()).
			WithField("user_id", middleware.GetUserID(ctx)).
			WithError(err).
			Error("ошибка обработки запроса")
	}
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}

func (c *BaseAPIController) SendFile(ctx *fiber.Ctx, data []byte, fileName, contentType string) error {
	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(data)
}
