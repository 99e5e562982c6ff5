package apiv1

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"asset-tools-backend/controllers"
	approvalhandler "asset-tools-backend/lib/approval"
	assignmenthandler "asset-tools-backend/lib/assignment"
	"asset-tools-backend/middleware"
	"asset-tools-backend/models"
	apimodels "asset-tools-backend/models/api"
	assignmentapimodels "asset-tools-backend/models/api/assignment"
)

type assignmentApiController struct {
	controllers.BaseAPIController
}

func InitAssignmentApiRouters(app *fiber.App) {
	controller := assignmentApiController{}
	app.Route("assignment", func(router fiber.Router) {
		router.Post("transaction", controller.create)
		router.Put("approve", controller.approve)
		router.Route("transaction/:id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.getTransaction)
			idRoute.Put("cancel", controller.cancelTransaction)
			idRoute.Put("handover", controller.handoverTransaction)
		})
		router.Put("request/cancel", controller.cancelRequests)
		router.Put("request/unassign", controller.unassignRequests)
		router.Route("request/:id", func(idRoute fiber.Router) {
			idRoute.Get("approvals", controller.getApprovals)
			idRoute.Put("missing", controller.reportMissing)
			idRoute.Put("damaged", controller.reportDamaged)
			idRoute.Get("transaction-log", controller.transactionLog)
			idRoute.Get("transaction-log/export", controller.transactionLogExport)
		})
	})
}

// @Summary Создание транзакций выдачи
// @Tags Выдача активов
// @Description Пакет позиций раскладывается на транзакции по парам (группа, получатель)
// @Param   Authorization		header	string										true	"Authorization token"
// @Param	body 				body	assignmentapimodels.CreateTransactionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]assignmentapimodels.TransactionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/transaction [post]
func (c *assignmentApiController) create(ctx *fiber.Ctx) error {
	var payload assignmentapimodels.CreateTransactionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyCode := middleware.GetCompanyCode(ctx)
	userID := middleware.GetUserID(ctx)
	result, err := assignmenthandler.Instance.Create(companyCode, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания транзакций выдачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Карточка транзакции
// @Tags Выдача активов
// @Description Транзакция с запросами
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=assignmentapimodels.TransactionWithRequestsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/transaction/{id} [get]
func (c *assignmentApiController) getTransaction(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyCode := middleware.GetCompanyCode(ctx)
	transaction, requests, err := assignmenthandler.Instance.GetTransaction(companyCode, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения транзакции")
	}
	result := assignmentapimodels.TransactionWithRequestsView{
		Transaction: *transaction,
		Requests:    requests,
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Решения по задачам согласования
// @Tags Выдача активов
// @Description Пакет решений согласующего, каждое решение применяется один раз
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body 				body	assignmentapimodels.ApprovalDecisions	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/approve [put]
func (c *assignmentApiController) approve(ctx *fiber.Ctx) error {
	var payload assignmentapimodels.ApprovalDecisions
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyCode := middleware.GetCompanyCode(ctx)
	userID := middleware.GetUserID(ctx)
	err := approvalhandler.Instance.Decide(companyCode, userID, payload.Decisions)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка применения решений согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Задачи согласования по запросу
// @Tags Выдача активов
// @Description Лестница согласования запроса по уровням
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]assignmentapimodels.ApprovalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/request/{id}/approvals [get]
func (c *assignmentApiController) getApprovals(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyCode := middleware.GetCompanyCode(ctx)
	result, err := approvalhandler.Instance.ListByRequest(companyCode, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения задач согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Отмена транзакции
// @Tags Выдача активов
// @Description Отменяет транзакцию, её запросы и нерешённые задачи согласования
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=assignmentapimodels.TransactionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/transaction/{id}/cancel [put]
func (c *assignmentApiController) cancelTransaction(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyCode := middleware.GetCompanyCode(ctx)
	userID := middleware.GetUserID(ctx)
	result, err := assignmenthandler.Instance.CancelTransaction(companyCode, userID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены транзакции")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Передача активов
// @Tags Выдача активов
// @Description Передача согласованной транзакции получателю
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	assignmentapimodels.HandoverData	true	"request body"
// @Param   id          		path    string								true    "rec ID"
// @Success 200 {object} apimodels.Response{data=assignmentapimodels.TransactionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/transaction/{id}/handover [put]
func (c *assignmentApiController) handoverTransaction(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.HandoverData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyCode := middleware.GetCompanyCode(ctx)
	userID := middleware.GetUserID(ctx)
	result, err := assignmenthandler.Instance.HandoverTransaction(companyCode, userID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка передачи активов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Отмена запросов
// @Tags Выдача активов
// @Description Отмена отдельных запросов, роль менеджера проверяется по каждому
// @Param   Authorization		header	string						true	"Authorization token"
// @Param	body 				body	assignmentapimodels.IdsData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/request/cancel [put]
func (c *assignmentApiController) cancelRequests(ctx *fiber.Ctx) error {
	var payload assignmentapimodels.IdsData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyCode := middleware.GetCompanyCode(ctx)
	userID := middleware.GetUserID(ctx)
	err := assignmenthandler.Instance.CancelRequests(companyCode, userID, payload.IDs)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены запросов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Возврат активов
// @Tags Выдача активов
// @Description Возврат выданных активов, роль менеджера проверяется по каждому запросу
// @Param   Authorization		header	string						true	"Authorization token"
// @Param	body 				body	assignmentapimodels.IdsData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/request/unassign [put]
func (c *assignmentApiController) unassignRequests(ctx *fiber.Ctx) error {
	var payload assignmentapimodels.IdsData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyCode := middleware.GetCompanyCode(ctx)
	userID := middleware.GetUserID(ctx)
	err := assignmenthandler.Instance.UnassignRequests(companyCode, userID, payload.IDs)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка возврата активов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Заявление об утере
// @Tags Выдача активов
// @Description Заявление подаёт держатель актива или менеджер группы
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	assignmentapimodels.ReportData	true	"request body"
// @Param   id          		path    string							true    "rec ID"
// @Success 200 {object} apimodels.Response{data=assignmentapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/request/{id}/missing [put]
func (c *assignmentApiController) reportMissing(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.ReportData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyCode := middleware.GetCompanyCode(ctx)
	userID := middleware.GetUserID(ctx)
	result, err := assignmenthandler.Instance.Report(ctx.Context(), companyCode, userID, id, models.ReportKindMissing, payload, assignmentapimodels.DamageImageData{})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подачи заявления об утере")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Заявление о повреждении
// @Tags Выдача активов
// @Description Заявление с фотофиксацией, multipart поля big/medium/small и note
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path		string	true    "rec ID"
// @Param   big					formData	file	false	"фото, полный размер"
// @Param   medium				formData	file	false	"фото, средний размер"
// @Param   small				formData	file	false	"фото, превью"
// @Param   note				formData	string	false	"комментарий"
// @Success 200 {object} apimodels.Response{data=assignmentapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/request/{id}/damaged [put]
func (c *assignmentApiController) reportDamaged(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload := assignmentapimodels.ReportData{}
	image := assignmentapimodels.DamageImageData{}
	form, err := ctx.MultipartForm()
	if err == nil {
		if values, ok := form.Value["note"]; ok && len(values) != 0 {
			payload.Note = values[0]
		}
		image.Big, err = readFormFile(form, "big")
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		image.Medium, err = readFormFile(form, "medium")
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		image.Small, err = readFormFile(form, "small")
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	companyCode := middleware.GetCompanyCode(ctx)
	userID := middleware.GetUserID(ctx)
	result, err := assignmenthandler.Instance.Report(ctx.Context(), companyCode, userID, id, models.ReportKindDamaged, payload, image)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подачи заявления о повреждении")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Журнал по запросу
// @Tags Выдача активов
// @Description Журнал действий по запросу выдачи
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]assignmentapimodels.TransactionLogView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/request/{id}/transaction-log [get]
func (c *assignmentApiController) transactionLog(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyCode := middleware.GetCompanyCode(ctx)
	result, err := assignmenthandler.Instance.LogList(companyCode, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения журнала")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Выгрузка журнала
// @Tags Выдача активов
// @Description Журнал действий по запросу в виде файла xlsx
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignment/request/{id}/transaction-log/export [get]
func (c *assignmentApiController) transactionLogExport(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyCode := middleware.GetCompanyCode(ctx)
	buf, err := assignmenthandler.Instance.LogExport(companyCode, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки журнала")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="transaction-log.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

func readFormFile(form *multipart.Form, key string) ([]byte, error) {
	files, ok := form.File[key]
	if !ok || len(files) == 0 {
		return nil, nil
	}
	file, err := files[0].Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
