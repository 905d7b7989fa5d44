package dict

import (
	"employee-management-backend/controllers"
	positionprovider "employee-management-backend/lib/dicts/position"
	"employee-management-backend/middleware"
	apimodels "employee-management-backend/models/api"
	dictapimodels "employee-management-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type positionDictApiController struct {
	controllers.BaseAPIController
}

func InitPositionDictApiRouters(app *fiber.App) {
	controller := positionDictApiController{}
	app.Route("positions", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get(":id", controller.get)
		router.Put(":id", controller.update)
		router.Patch(":id", controller.patch)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Список
// @Tags Справочник. Должности
// @Description Список, упорядоченный по уровню
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	filter query	 dictapimodels.PositionFilter	false	"filter"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]dictapimodels.PositionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/positions [get]
func (c *positionDictApiController) list(ctx *fiber.Ctx) error {
	var filter dictapimodels.PositionFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.BadRequest(ctx, err)
	}
	list, rowCount, err := positionprovider.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewPageResponse(list, rowCount, page, limit))
}

// @Summary Создание
// @Tags Справочник. Должности
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.PositionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/positions [post]
func (c *positionDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.PositionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.BadRequest(ctx, err)
	}
	id, err := positionprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение по ИД
// @Tags Справочник. Должности
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.PositionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/positions/{id} [get]
func (c *positionDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := positionprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Справочник. Должности
// @Description Полное обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 dictapimodels.PositionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/positions/{id} [put]
func (c *positionDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.PositionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.BadRequest(ctx, err)
	}
	err = positionprovider.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Частичное обновление
// @Tags Справочник. Должности
// @Description Изменяются только переданные поля
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 dictapimodels.PositionPatch	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/positions/{id} [patch]
func (c *positionDictApiController) patch(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.PositionPatch
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.BadRequest(ctx, err)
	}
	err = positionprovider.Instance.Patch(id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление
// @Tags Справочник. Должности
// @Description Удаление недоступно, пока должность занята или на нее ссылаются другие должности
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/positions/{id} [delete]
func (c *positionDictApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	err = positionprovider.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
