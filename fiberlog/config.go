package fiberlog

import "github.com/sirupsen/logrus"

// Config настраивает журналирование запросов
type Config struct {
	// Logger задаёт используемый логгер, nil - стандартный логгер logrus
	Logger *logrus.Logger
	// Tags задаёт набор полей лога (Tag* константы)
	Tags []string
}

// ConfigDefault включает базовый набор полей запроса
var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
}
