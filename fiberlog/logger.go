package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const requestMessage = "обработан запрос api"

// New создаёт middleware журналирования запросов api.
// Ответы со статусом 3xx и выше пишутся с уровнем warning.
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}
	d := &data{pid: os.Getpid()}
	ftm := getFuncTagMap(cfg, d)
	return func(c *fiber.Ctx) error {
		d.start = time.Now()
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}
		entry := log.WithFields(getLogrusFields(ftm, c, d))
		if cfg.Logger != nil {
			entry = cfg.Logger.WithFields(getLogrusFields(ftm, c, d))
		}
		if c.Response().StatusCode() >= fiber.StatusMultipleChoices {
			entry.Warn(requestMessage)
			return err
		}
		entry.Info(requestMessage)
		return err
	}
}

// getLogrusFields вычисляет поля лога, пустые строковые значения опускаются
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	fields := make(log.Fields, len(ftm))
	for tag, fn := range ftm {
		value := fn(c, d)
		if str, ok := value.(string); ok && str == "" {
			continue
		}
		fields[tag] = value
	}
	return fields
}
