package apiv1

import (
	"employee-management-backend/controllers"
	dashboardprovider "employee-management-backend/lib/dashboard"
	"employee-management-backend/middleware"
	apimodels "employee-management-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type dashboardApiController struct {
	controllers.BaseAPIController
}

func InitDashboardApiRouters(app *fiber.App) {
	controller := dashboardApiController{}
	app.Route("dashboard", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Get("", controller.get)
	})
}

// @Summary Сводка
// @Tags Сводка
// @Description HR видит показатели компании, руководитель показатели своих подразделений, сотрудник только свои
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.DashboardView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard [get]
func (c *dashboardApiController) get(ctx *fiber.Ctx) error {
	userID, role := c.GetUser(ctx)
	resp, err := dashboardprovider.Instance.Get(userID, role)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
