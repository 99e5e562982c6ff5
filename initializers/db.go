package initializers

import (
	"asset-tools-backend/config"
	"asset-tools-backend/db"
)

// Pool отдаёт соединения с базами компаний, по базе на арендатора
var Pool *db.Pool

func InitDBPool() {
	Pool = db.NewPool(config.Conf.Database.Host, config.Conf.Database.Port,
		config.Conf.Database.User, config.Conf.Database.Password, config.Conf.Database.NameSuffix,
		*config.Conf.Database.DebugMode, *config.Conf.Database.MigrateOnStart)
}
