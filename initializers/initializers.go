package initializers

import (
	"context"

	"employee-management-backend/config"
	"employee-management-backend/fiberlog"
	attendanceprovider "employee-management-backend/lib/attendance"
	authhandler "employee-management-backend/lib/auth"
	tokenstore "employee-management-backend/lib/auth/token-store"
	dashboardprovider "employee-management-backend/lib/dashboard"
	divisionprovider "employee-management-backend/lib/dicts/division"
	positionprovider "employee-management-backend/lib/dicts/position"
	employeeprovider "employee-management-backend/lib/employee"
	xlsexport "employee-management-backend/lib/export/xls"
	filestorage "employee-management-backend/lib/file-storage"
	leaveprovider "employee-management-backend/lib/leave"
	leaveworker "employee-management-backend/lib/leave/worker"
	pushhandler "employee-management-backend/lib/notification"
	"employee-management-backend/lib/rbac"
	connectionhub "employee-management-backend/lib/ws/hub/connection-hub"
	s3client "employee-management-backend/s3"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	redisClient := InitRedis(ctx)
	connectionhub.Init()
	if err := filestorage.NewHandler(ctx, s3client.Client); err != nil {
		panic(err.Error())
	}
	pushhandler.NewHandler()
	xlsexport.NewHandler()
	divisionprovider.NewHandler()
	positionprovider.NewHandler()
	employeeprovider.NewHandler()
	attendanceprovider.NewHandler()
	leaveprovider.NewHandler()
	rbac.NewHandler(leaveprovider.Instance.GetRbacFlowAllow())
	tokenstore.NewHandler(redisClient)
	authhandler.NewHandler()
	dashboardprovider.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Синхронизация статусов сотрудников с утвержденными отпусками
	leaveworker.StartWorker(ctx)
}
