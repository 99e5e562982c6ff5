package initializers

import (
	"asset-tools-backend/config"
	"asset-tools-backend/fiberlog"
	approvalhandler "asset-tools-backend/lib/approval"
	assignmenthandler "asset-tools-backend/lib/assignment"
	xlsexport "asset-tools-backend/lib/export/xls"
	notificationhandler "asset-tools-backend/lib/notification"
	transactionrolehandler "asset-tools-backend/lib/transaction-role"
	connectionhub "asset-tools-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices() {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBPool()
	InitS3()
	InitSmtp()
	connectionhub.Init(Pool)
	xlsexport.NewHandler()
	transactionrolehandler.NewHandler(Pool)
	notificationhandler.NewHandler(Pool)
	approvalhandler.NewHandler(Pool)
	assignmenthandler.NewHandler(Pool)
}
