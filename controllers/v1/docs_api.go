package apiv1

import (
	"employee-management-backend/config"
	_ "employee-management-backend/docs"
	apimodels "employee-management-backend/models/api"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/swag"
)

const redocPage = `<!DOCTYPE html>
<html>
<head>
<title>Employee Management API</title>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
<redoc spec-url="/api/schema/"></redoc>
<script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`

// InitDocsRouters /api/schema/ документ OpenAPI, /api/docs/ swagger UI, /api/redoc/ ReDoc
func InitDocsRouters(app *fiber.App) {
	app.Get("/api/schema", schema)
	app.Get("/api/redoc", func(ctx *fiber.Ctx) error {
		ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return ctx.SendString(redocPage)
	})
	app.Use(swagger.New(swagger.Config{
		BasePath: "/api/",
		Path:     "docs",
		FilePath: config.Conf.App.DocsPath,
		Title:    "Employee Management API",
	}))
}

func schema(ctx *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		log.WithError(err).Error("ошибка чтения документа OpenAPI")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("документ OpenAPI недоступен"))
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return ctx.SendString(doc)
}
