package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	wsclient "asset-tools-backend/lib/ws/client"
	connectionhub "asset-tools-backend/lib/ws/hub/connection-hub"
	"asset-tools-backend/middleware"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		ctx.Locals("userID", middleware.GetUserID(ctx))
		ctx.Locals("companyCode", middleware.GetCompanyCode(ctx))
		return ctx.Next()
	})
	app.Get("/", websocket.New(notifyHandler))
}

// @Summary Системные пуши
// @Tags Websocket Системные пуши
// @Description Уведомления о событиях процесса выдачи
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 403
// @Failure 500
// @router /ws [get]
func notifyHandler(c *websocket.Conn) {
	userID := c.Locals("userID").(string)
	companyCode := c.Locals("companyCode").(string)
	client := wsclient.NewClient(userID, c)
	connectionhub.Instance.AddClient(companyCode, userID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(companyCode, userID)
	}()
	client.Dispatch()
}
