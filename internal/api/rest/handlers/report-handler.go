package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stockguard/damage_service/internal/api/rest/middleware"
	"github.com/stockguard/damage_service/internal/domain"
	"github.com/stockguard/damage_service/internal/dto"
	"github.com/stockguard/damage_service/internal/helper/utils"
	"github.com/stockguard/damage_service/internal/services"
)

type ReportHandler struct {
	svc     services.ReportService
	userSvc services.UserService
}

func NewReportHandler(svc services.ReportService, userSvc services.UserService) *ReportHandler {
	return &ReportHandler{svc: svc, userSvc: userSvc}
}

func (h *ReportHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	reports := api.Group("/reports")

	// bulk routes before the :reportID wildcard
	reports.Post("/bulk-status", middleware.AdminOnly(h.userSvc), h.BulkStatus)
	reports.Post("/bulk-archive", middleware.AdminOnly(h.userSvc), h.BulkArchive)

	reports.Post("/", h.Create)
	reports.Get("/", h.List)
	reports.Get("/:reportID", h.Get)
	reports.Get("/:reportID/history", h.History)
	reports.Patch("/:reportID/status", h.ChangeStatus)
	reports.Post("/:reportID/archive", h.Archive)
}

func actorID(ctx *fiber.Ctx) uint {
	id, _ := ctx.Locals("userID").(uint)
	return id
}

func (h *ReportHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.CreateReportRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	report, err := h.svc.CreateReport(requestBody, actorID(ctx), ctx.IP())
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, report)
}

func (h *ReportHandler) List(ctx *fiber.Ctx) error {
	filter := dto.ReportListFilter{
		Limit:  ctx.QueryInt("limit", 50),
		Offset: ctx.QueryInt("offset", 0),
	}
	if s := ctx.Query("status"); s != "" {
		if _, err := domain.ParseStatus(s); err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
		}
		filter.Status = &s
	}
	if a := ctx.Query("archived"); a != "" {
		archived := a == "true" || a == "1"
		filter.Archived = &archived
	}

	reports, err := h.svc.ListReports(filter)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, reports)
}

func (h *ReportHandler) Get(ctx *fiber.Ctx) error {
	reportID, err := ctx.ParamsInt("reportID")
	if err != nil || reportID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid report id")
	}

	report, err := h.svc.GetReport(uint(reportID))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, report)
}

func (h *ReportHandler) History(ctx *fiber.Ctx) error {
	reportID, err := ctx.ParamsInt("reportID")
	if err != nil || reportID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid report id")
	}

	history, err := h.svc.GetHistory(uint(reportID))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, history)
}

func (h *ReportHandler) ChangeStatus(ctx *fiber.Ctx) error {
	reportID, err := ctx.ParamsInt("reportID")
	if err != nil || reportID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid report id")
	}

	var requestBody dto.ChangeStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	target, err := domain.ParseStatus(requestBody.Status)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	report, err := h.svc.ChangeStatus(uint(reportID), target, actorID(ctx), requestBody.Note, ctx.IP())
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, report)
}

func (h *ReportHandler) Archive(ctx *fiber.Ctx) error {
	reportID, err := ctx.ParamsInt("reportID")
	if err != nil || reportID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid report id")
	}

	if err := h.svc.Archive(uint(reportID), actorID(ctx), ctx.IP()); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"archived": true})
}

// checkBulkRequest rejects a malformed batch atomically, before any
// item is attempted.
func checkBulkRequest(ids []string) (string, bool) {
	if len(ids) == 0 {
		return "ids are required", false
	}
	if len(ids) > dto.MaxBulkItems {
		return "at most 50 ids per request", false
	}
	return "", true
}

func (h *ReportHandler) BulkStatus(ctx *fiber.Ctx) error {
	var requestBody dto.BulkStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if msg, ok := checkBulkRequest(requestBody.IDs); !ok {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msg)
	}
	target, err := domain.ParseStatus(requestBody.Status)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	res := h.svc.BulkChangeStatus(requestBody.IDs, target, requestBody.Note, actorID(ctx), ctx.IP())
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"updated": res.Succeeded,
		"skipped": res.Skipped,
	})
}

func (h *ReportHandler) BulkArchive(ctx *fiber.Ctx) error {
	var requestBody dto.BulkArchiveRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if msg, ok := checkBulkRequest(requestBody.IDs); !ok {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, msg)
	}

	res, err := h.svc.BulkArchive(requestBody.IDs, actorID(ctx), ctx.IP())
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"archived": res.Succeeded,
		"skipped":  res.Skipped,
	})
}
