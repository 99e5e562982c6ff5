package fiberlog

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestGetLogrusFields(t *testing.T) {
	t.Run(`пустые строковые значения опускаются`, func(t *testing.T) {
		d := &data{pid: 42}
		ftm := map[string]FuncTag{
			TagPid: tagFuncs[TagPid],
			TagPath: func(c *fiber.Ctx, d *data) interface{} {
				return ""
			},
		}
		fields := getLogrusFields(ftm, nil, d)
		require.Equal(t, 42, fields[TagPid])
		require.NotContains(t, fields, TagPath)
	})
	t.Run(`набор полей по умолчанию содержит идентификатор запроса`, func(t *testing.T) {
		require.Contains(t, ConfigDefault.Tags, RequestID)
		ftm := getFuncTagMap(ConfigDefault, &data{})
		require.Len(t, ftm, len(ConfigDefault.Tags))
	})
}
