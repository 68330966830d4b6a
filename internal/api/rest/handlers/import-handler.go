package handlers

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/stockguard/damage_service/internal/api/rest/middleware"
	"github.com/stockguard/damage_service/internal/helper/utils"
	"github.com/stockguard/damage_service/internal/services"
	"github.com/stockguard/damage_service/pkg/batch"
	pkgutils "github.com/stockguard/damage_service/pkg/utils"
)

const maxImportSize = 10 * 1024 * 1024 // 10MB

type ImportHandler struct {
	svc     services.ImportService
	userSvc services.UserService
}

func NewImportHandler(svc services.ImportService, userSvc services.UserService) *ImportHandler {
	return &ImportHandler{svc: svc, userSvc: userSvc}
}

func (h *ImportHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/imports/:kind", middleware.AdminOnly(h.userSvc), h.Import)
}

// POST /api/imports/:kind
// form-data: file=<csv>
func (h *ImportHandler) Import(ctx *fiber.Ctx) error {
	kind := ctx.Params("kind")

	var run func(r io.Reader, actorID uint, clientIP string) (batch.ImportResult, error)
	switch kind {
	case "customers":
		run = h.svc.ImportCustomers
	case "products":
		run = h.svc.ImportProducts
	case "users":
		run = h.svc.ImportUsers
	case "locations":
		run = h.svc.ImportLocations
	default:
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "unknown import kind: "+kind)
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file is required")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	content, err := pkgutils.ReadAllLimit(f, maxImportSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	res, err := run(bytes.NewReader(content), actorID(ctx), ctx.IP())
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"created": res.Created,
		"errors":  res.Errors,
	})
}
