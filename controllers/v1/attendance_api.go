package apiv1

import (
	"encoding/json"
	"strconv"
	"strings"

	"employee-management-backend/controllers"
	attendanceprovider "employee-management-backend/lib/attendance"
	apperrors "employee-management-backend/lib/utils/app-errors"
	"employee-management-backend/middleware"
	apimodels "employee-management-backend/models/api"
	attendanceapimodels "employee-management-backend/models/api/attendance"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type attendanceApiController struct {
	controllers.BaseAPIController
}

func InitAttendanceApiRouters(app *fiber.App) {
	controller := attendanceApiController{}
	app.Route("attendance", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Post("check_in", controller.checkIn)
		router.Post("check_out", controller.checkOut)
		router.Get("report", controller.report)
		router.Get("", controller.list)
		router.Get(":id", controller.get)
	})
}

// @Summary Отметка прихода
// @Tags Посещаемость
// @Description Отметка прихода за текущую дату. JSON или multipart форма с необязательным фото (photo) и полями encoding (JSON массив), latitude, longitude, notes
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.CheckInRequest	false	"request body"
// @Param   photo	formData	file	false	"снимок при отметке"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/check_in [post]
func (c *attendanceApiController) checkIn(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.CheckInRequest
	var photo *attendanceprovider.Photo
	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		var err error
		payload, err = parseCheckInForm(ctx)
		if err != nil {
			return c.BadRequest(ctx, err)
		}
		if fileHeader, err := ctx.FormFile("photo"); err == nil {
			data, err := readFormFile(fileHeader)
			if err != nil {
				return c.BadRequest(ctx, err)
			}
			photo = &attendanceprovider.Photo{
				FileName:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
				Data:        data,
			}
		}
	} else if len(ctx.Body()) != 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return c.BadRequest(ctx, err)
		}
	}
	resp, err := attendanceprovider.Instance.CheckIn(ctx.UserContext(), middleware.GetUserID(ctx), payload, photo)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

func parseCheckInForm(ctx *fiber.Ctx) (payload attendanceapimodels.CheckInRequest, err error) {
	payload.Notes = ctx.FormValue("notes")
	if value := ctx.FormValue("encoding"); value != "" {
		if err = json.Unmarshal([]byte(value), &payload.Encoding); err != nil {
			return payload, apperrors.ValidationFields(map[string]string{"encoding": "вектор лица должен быть JSON массивом чисел"})
		}
	}
	payload.Latitude, err = formFloat(ctx, "latitude")
	if err != nil {
		return payload, err
	}
	payload.Longitude, err = formFloat(ctx, "longitude")
	return payload, err
}

func formFloat(ctx *fiber.Ctx, key string) (*float64, error) {
	value := ctx.FormValue(key)
	if value == "" {
		return nil, nil
	}
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, apperrors.ValidationFields(map[string]string{key: "должно быть числом"})
	}
	return &result, nil
}

// @Summary Отметка ухода
// @Tags Посещаемость
// @Description Отметка ухода за текущую дату, один раз после прихода
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.CheckOutRequest	false	"request body"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/check_out [post]
func (c *attendanceApiController) checkOut(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.CheckOutRequest
	if len(ctx.Body()) != 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return c.BadRequest(ctx, err)
		}
	}
	resp, err := attendanceprovider.Instance.CheckOut(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список
// @Tags Посещаемость
// @Description Список отметок с учетом видимости пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	filter query	 attendanceapimodels.AttendanceFilter	false	"filter"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance [get]
func (c *attendanceApiController) list(ctx *fiber.Ctx) error {
	var filter attendanceapimodels.AttendanceFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.BadRequest(ctx, err)
	}
	visibility, err := c.GetVisibility(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	list, rowCount, err := attendanceprovider.Instance.List(filter, visibility)
	if err != nil {
		return c.SendError(ctx, err)
	}
	page, limit := filter.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewPageResponse(list, rowCount, page, limit))
}

// @Summary Получение по ИД
// @Tags Посещаемость
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/{id} [get]
func (c *attendanceApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	visibility, err := c.GetVisibility(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	resp, err := attendanceprovider.Instance.Get(id, visibility)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отчет
// @Tags Посещаемость
// @Description Выгрузка отметок в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	filter query	 attendanceapimodels.AttendanceFilter	false	"filter"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/report [get]
func (c *attendanceApiController) report(ctx *fiber.Ctx) error {
	var filter attendanceapimodels.AttendanceFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.BadRequest(ctx, err)
	}
	visibility, err := c.GetVisibility(ctx)
	if err != nil {
		return c.SendError(ctx, err)
	}
	buf, err := attendanceprovider.Instance.Report(ctx.UserContext(), filter, visibility)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return c.SendFile(ctx, buf.Bytes(), "attendance.xlsx", xlsxContentType)
}
