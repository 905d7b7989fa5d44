package apiv1

import (
	"employee-management-backend/controllers"
	"employee-management-backend/lib/approval"
	leaveprovider "employee-management-backend/lib/leave"
	"employee-management-backend/middleware"
	apimodels "employee-management-backend/models/api"
	leaveapimodels "employee-management-backend/models/api/leave"

	"github.com/gofiber/fiber/v2"
)

type leaveApiController struct {
	controllers.BaseAPIController
}

func InitLeaveApiRouters(app *fiber.App) {
	controller := leaveApiController{}
	app.Route("leaves", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Get("balance", controller.balance)
		router.Get("report", controller.report)
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get(":id", controller.get)
		router.Put(":id", controller.update)
		router.Patch(":id", controller.patch)
		router.Delete(":id", controller.delete)
		router.Post(":id/approve", controller.approve)
		router.Post(":id/reject", controller.reject)
		router.Get(":id/history", controller.history)
		router.Get(":id/letter", controller.letter)
	})
}

func (c *leaveApiController) actor(ctx *fiber.Ctx) approval.Actor {
	userID, role := c.GetUser(ctx)
	return approval.Actor{ID: userID, Role: role}
}

// @Summary Список
// @Tags Отпуска
// @Description Список заявок с учетом видимости пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	filter query	 leaveapimodels.LeaveFilter	false	"filter"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]leaveapimodels.LeaveView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves [get]
func (c *leaveApiController) list(ctx *fiber.Ctx) error {
	var filter leaveapimodels.LeaveFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.BadRequest(ctx, err)
	}
	visibility, err := c.GetVisibility(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	list, rowCount, err := leaveprovider.Instance.List(filter, visibility)
	if err != nil {
		return c.SendError(ctx, err)
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewPageResponse(list, rowCount, page, limit))
}

// @Summary Создание
// @Tags Отпуска
// @Description Заявка на отпуск, HR может оформить заявку за сотрудника (employee_id)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 leaveapimodels.LeaveData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves [post]
func (c *leaveApiController) create(ctx *fiber.Ctx) error {
	var payload leaveapimodels.LeaveData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.BadRequest(ctx, err)
	}
	id, err := leaveprovider.Instance.Create(c.actor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение по ИД
// @Tags Отпуска
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.LeaveView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/{id} [get]
func (c *leaveApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := leaveprovider.Instance.Get(c.actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Отпуска
// @Description Полное обновление заявки на согласовании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 leaveapimodels.LeaveData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/{id} [put]
func (c *leaveApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload leaveapimodels.LeaveData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.BadRequest(ctx, err)
	}
	err = leaveprovider.Instance.Update(c.actor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Частичное обновление
// @Tags Отпуска
// @Description Изменяются только переданные поля заявки на согласовании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 leaveapimodels.LeavePatch	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/{id} [patch]
func (c *leaveApiController) patch(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload leaveapimodels.LeavePatch
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.BadRequest(ctx, err)
	}
	err = leaveprovider.Instance.Patch(c.actor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление
// @Tags Отпуска
// @Description Отзыв заявки на согласовании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/{id} [delete]
func (c *leaveApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	err = leaveprovider.Instance.Delete(c.actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Согласование
// @Tags Отпуска
// @Description Согласование заявки руководителем подразделения или HR
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 leaveapimodels.LeaveDecision	false	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/{id}/approve [post]
func (c *leaveApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload leaveapimodels.LeaveDecision
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return c.BadRequest(ctx, err)
		}
	}
	err = leaveprovider.Instance.Approve(c.actor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонение
// @Tags Отпуска
// @Description Отклонение заявки, комментарий обязателен
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 leaveapimodels.LeaveDecision	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/{id}/reject [post]
func (c *leaveApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload leaveapimodels.LeaveDecision
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	err = leaveprovider.Instance.Reject(c.actor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary История
// @Tags Отпуска
// @Description История изменений заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]leaveapimodels.LeaveHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/{id}/history [get]
func (c *leaveApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := leaveprovider.Instance.History(c.actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

type balanceQuery struct {
	EmployeeID string `query:"employee_id"`
	Year       int    `query:"year"`
}

// @Summary Остаток отпуска
// @Tags Отпуска
// @Description Остаток ежегодного отпуска за год, по умолчанию свой за текущий год
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   employee_id	query	string	false	"ИД сотрудника"
// @Param   year	query	int	false	"год"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.LeaveBalance}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/balance [get]
func (c *leaveApiController) balance(ctx *fiber.Ctx) error {
	var query balanceQuery
	if err := c.QueryParser(ctx, &query); err != nil {
		return c.BadRequest(ctx, err)
	}
	visibility, err := c.GetVisibility(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	resp, err := leaveprovider.Instance.Balance(visibility, query.EmployeeID, query.Year)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Письмо о согласовании
// @Tags Отпуска
// @Description PDF письмо по согласованной заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/{id}/letter [get]
func (c *leaveApiController) letter(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	pdf, fileName, err := leaveprovider.Instance.Letter(c.actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendFile(ctx, pdf, fileName, "application/pdf")
}

// @Summary Отчет
// @Tags Отпуска
// @Description Выгрузка заявок в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	filter query	 leaveapimodels.LeaveFilter	false	"filter"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/report [get]
func (c *leaveApiController) report(ctx *fiber.Ctx) error {
	var filter leaveapimodels.LeaveFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.BadRequest(ctx, err)
	}
	visibility, err := c.GetVisibility(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	buf, err := leaveprovider.Instance.Report(ctx.UserContext(), filter, visibility)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendFile(ctx, buf.Bytes(), "leaves.xlsx", xlsxContentType)
}
