package dict

import (
	"employee-management-backend/controllers"
	divisionprovider "employee-management-backend/lib/dicts/division"
	"employee-management-backend/middleware"
	apimodels "employee-management-backend/models/api"
	dictapimodels "employee-management-backend/models/api/dict"
	employeeapimodels "employee-management-backend/models/api/employee"

	"github.com/gofiber/fiber/v2"
)

type divisionDictApiController struct {
	controllers.BaseAPIController
}

type divisionDeleteResult struct {
	SoftDeleted bool `json:"soft_deleted"` // подразделение деактивировано, так как в нем есть сотрудники
}

func InitDivisionDictApiRouters(app *fiber.App) {
	controller := divisionDictApiController{}
	app.Route("divisions", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get(":id", controller.get)
		router.Put(":id", controller.update)
		router.Patch(":id", controller.patch)
		router.Delete(":id", controller.delete)
		router.Get(":id/statistics", controller.statistics)
		router.Get(":id/employees", controller.employees)
	})
}

// @Summary Список
// @Tags Справочник. Подразделения
// @Description Список с поиском, фильтрами и сортировкой
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	filter query	 dictapimodels.DivisionFilter	false	"filter"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]dictapimodels.DivisionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/divisions [get]
func (c *divisionDictApiController) list(ctx *fiber.Ctx) error {
	var filter dictapimodels.DivisionFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.BadRequest(ctx, err)
	}
	list, rowCount, err := divisionprovider.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewPageResponse(list, rowCount, page, limit))
}

// @Summary Создание
// @Tags Справочник. Подразделения
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DivisionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/divisions [post]
func (c *divisionDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.DivisionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.BadRequest(ctx, err)
	}
	id, err := divisionprovider.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение по ИД
// @Tags Справочник. Подразделения
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DivisionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/divisions/{id} [get]
func (c *divisionDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := divisionprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Справочник. Подразделения
// @Description Полное обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 dictapimodels.DivisionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/divisions/{id} [put]
func (c *divisionDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.DivisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.BadRequest(ctx, err)
	}
	err = divisionprovider.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Частичное обновление
// @Tags Справочник. Подразделения
// @Description Изменяются только переданные поля
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 dictapimodels.DivisionPatch	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/divisions/{id} [patch]
func (c *divisionDictApiController) patch(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.DivisionPatch
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.BadRequest(ctx, err)
	}
	err = divisionprovider.Instance.Patch(id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление
// @Tags Справочник. Подразделения
// @Description Подразделение с сотрудниками деактивируется, без сотрудников удаляется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=divisionDeleteResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/divisions/{id} [delete]
func (c *divisionDictApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	softDeleted, err := divisionprovider.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(divisionDeleteResult{SoftDeleted: softDeleted}))
}

// @Summary Статистика
// @Tags Справочник. Подразделения
// @Description Количество сотрудников подразделения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DivisionStatistics}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/divisions/{id}/statistics [get]
func (c *divisionDictApiController) statistics(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	visibility, err := c.GetVisibility(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	resp, err := divisionprovider.Instance.Statistics(id, visibility)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Сотрудники
// @Tags Справочник. Подразделения
// @Description Сотрудники подразделения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	filter query	 employeeapimodels.EmployeeFilter	false	"filter"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/divisions/{id}/employees [get]
func (c *divisionDictApiController) employees(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var filter employeeapimodels.EmployeeFilter
	if err = c.QueryParser(ctx, &filter); err != nil {
		return c.BadRequest(ctx, err)
	}
	visibility, err := c.GetVisibility(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	list, rowCount, err := divisionprovider.Instance.Employees(id, visibility, filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewPageResponse(list, rowCount, page, limit))
}
