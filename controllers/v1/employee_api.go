package apiv1

import (
	"encoding/json"
	"io"
	"mime/multipart"

	"employee-management-backend/controllers"
	employeeprovider "employee-management-backend/lib/employee"
	filestorage "employee-management-backend/lib/file-storage"
	apperrors "employee-management-backend/lib/utils/app-errors"
	"employee-management-backend/middleware"
	apimodels "employee-management-backend/models/api"
	employeeapimodels "employee-management-backend/models/api/employee"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type employeeApiController struct {
	controllers.BaseAPIController
}

func InitEmployeeApiRouters(app *fiber.App) {
	controller := employeeApiController{}
	app.Route("employees", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get(":id", controller.get)
		router.Put(":id", controller.update)
		router.Patch(":id", controller.patch)
		router.Delete(":id", controller.delete)
		router.Put(":id/restore", controller.restore)
		router.Post(":id/face", controller.enrollFace)
	})
}

// @Summary Список
// @Tags Сотрудники
// @Description Список сотрудников с учетом видимости пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	filter query	 employeeapimodels.EmployeeFilter	false	"filter"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees [get]
func (c *employeeApiController) list(ctx *fiber.Ctx) error {
	var filter employeeapimodels.EmployeeFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.BadRequest(ctx, err)
	}
	visibility, err := c.GetVisibility(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	list, rowCount, err := employeeprovider.Instance.List(filter, visibility)
	if err != nil {
		return c.SendError(ctx, err)
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewPageResponse(list, rowCount, page, limit))
}

// @Summary Создание
// @Tags Сотрудники
// @Description Создание сотрудника, табельный номер генерируется если не указан
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.EmployeeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees [post]
func (c *employeeApiController) create(ctx *fiber.Ctx) error {
	var payload employeeapimodels.EmployeeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.BadRequest(ctx, err)
	}
	id, err := employeeprovider.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение по ИД
// @Tags Сотрудники
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id} [get]
func (c *employeeApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	visibility, err := c.GetVisibility(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	resp, err := employeeprovider.Instance.Get(id, visibility)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Сотрудники
// @Description Полное обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 employeeapimodels.EmployeeData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id} [put]
func (c *employeeApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload employeeapimodels.EmployeeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.BadRequest(ctx, err)
	}
	err = employeeprovider.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Частичное обновление
// @Tags Сотрудники
// @Description Изменяются только переданные поля
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 employeeapimodels.EmployeePatch	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id} [patch]
func (c *employeeApiController) patch(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload employeeapimodels.EmployeePatch
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.BadRequest(ctx, err)
	}
	err = employeeprovider.Instance.Patch(id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление
// @Tags Сотрудники
// @Description Мягкое удаление, запись остается и может быть восстановлена
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id} [delete]
func (c *employeeApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	err = employeeprovider.Instance.Delete(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Восстановление
// @Tags Сотрудники
// @Description Восстановление удаленного сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id}/restore [put]
func (c *employeeApiController) restore(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	err = employeeprovider.Instance.Restore(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Профиль лица
// @Tags Сотрудники
// @Description Загрузка фото лица (спереди, слева, справа) и вектора лица в формате JSON массива
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   front	formData	file	true	"фото спереди"
// @Param   left	formData	file	true	"фото слева"
// @Param   right	formData	file	true	"фото справа"
// @Param   encoding	formData	string	true	"вектор лица, JSON массив"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.FaceEnrollResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id}/face [post]
func (c *employeeApiController) enrollFace(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var encoding []float64
	if err = json.Unmarshal([]byte(ctx.FormValue("encoding")), &encoding); err != nil {
		return c.BadRequest(ctx, apperrors.ValidationFields(map[string]string{"encoding": "вектор лица должен быть JSON массивом чисел"}))
	}
	photos := make([]employeeprovider.FacePhoto, 0, len(filestorage.FaceSides))
	for _, side := range filestorage.FaceSides {
		fileHeader, err := ctx.FormFile(string(side))
		if err != nil {
			continue
		}
		data, err := readFormFile(fileHeader)
		if err != nil {
			return c.BadRequest(ctx, err)
		}
		photos = append(photos, employeeprovider.FacePhoto{
			Side:        side,
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
			Data:        data,
		})
	}
	resp, err := employeeprovider.Instance.EnrollFace(ctx.UserContext(), id, photos, encoding)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

func readFormFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка открытия файла")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла")
	}
	return data, nil
}
