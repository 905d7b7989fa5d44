package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"employee-management-backend/config"
	"employee-management-backend/controllers"
	apiv1 "employee-management-backend/controllers/v1"
	"employee-management-backend/controllers/v1/dict"
	"employee-management-backend/fiberlog"
	"employee-management-backend/initializers"
	"employee-management-backend/lib/ws"
	"employee-management-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit:    config.Conf.App.BodyLimit,
		ErrorHandler: controllers.ErrorHandler,
	})
	app.Use(fiberRecover.New())
	app.Use(requestid.New())
	if config.Conf.Notify.ErrWebhook != "" {
		app.Use(middleware.ErrNotify(config.Conf.Notify.ErrWebhook))
	}

	apiv1.InitDocsRouters(app)

	//api
	apiV1 := fiber.New(fiber.Config{
		ErrorHandler: controllers.ErrorHandler,
	})
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(int64(config.Conf.App.BodyLimit)))
	apiv1.InitAuthApiRouters(apiV1)

	//ws
	wsApp := fiber.New()
	apiV1.Mount("/ws", wsApp)
	wsApp.Use(middleware.AuthorizationRequired())
	ws.InitWs(wsApp)

	apiv1.InitEmployeeApiRouters(apiV1)
	apiv1.InitAttendanceApiRouters(apiV1)
	apiv1.InitLeaveApiRouters(apiV1)
	apiv1.InitDashboardApiRouters(apiV1)

	//dict
	dict.InitDivisionDictApiRouters(apiV1)
	dict.InitPositionDictApiRouters(apiV1)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-c
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
