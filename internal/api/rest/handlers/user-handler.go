package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stockguard/damage_service/internal/api/rest/middleware"
	"github.com/stockguard/damage_service/internal/dto"
	"github.com/stockguard/damage_service/internal/helper/utils"
	"github.com/stockguard/damage_service/internal/services"
)

type UserHandler struct {
	svc      services.UserService
	auditSvc services.AuditService
}

func NewUserHandler(svc services.UserService, auditSvc services.AuditService) *UserHandler {
	return &UserHandler{svc: svc, auditSvc: auditSvc}
}

func (h *UserHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	user := api.Group("/user")

	user.Post("/register", middleware.AdminOnly(h.svc), h.Register)
	user.Get("/me", h.Me)
	user.Put("/password", h.ChangePassword)
	user.Get("/", middleware.AdminOnly(h.svc), h.ListUsers)

	api.Get("/audit", middleware.AdminOnly(h.svc), h.ListAudit)
	api.Get("/audit/:entity/:entityID", middleware.AdminOnly(h.svc), h.ListEntityAudit)
}

// SetupPublicRoutes registers the routes that live outside the auth
// middleware.
func (h *UserHandler) SetupPublicRoutes(app *fiber.App) {
	app.Post("/api/user/login", h.Login)
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.Register(requestBody, actorID(ctx), ctx.IP())
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, user)
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	resp, err := h.svc.Login(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Invalid email or password")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	user, err := h.svc.GetProfile(actorID(ctx))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *UserHandler) ChangePassword(ctx *fiber.Ctx) error {
	var requestBody dto.ChangePasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.ChangePassword(actorID(ctx), requestBody); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"changed": true})
}

func (h *UserHandler) ListUsers(ctx *fiber.Ctx) error {
	users, err := h.svc.ListUsers(ctx.QueryInt("limit", 50), ctx.QueryInt("offset", 0))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, users)
}

func (h *UserHandler) ListAudit(ctx *fiber.Ctx) error {
	entries, err := h.auditSvc.List(ctx.QueryInt("limit", 50), ctx.QueryInt("offset", 0))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, entries)
}

// ListEntityAudit returns the full trail for one record, e.g.
// /api/audit/damage_report/42.
func (h *UserHandler) ListEntityAudit(ctx *fiber.Ctx) error {
	entityID, err := ctx.ParamsInt("entityID")
	if err != nil || entityID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid entity id")
	}

	entries, err := h.auditSvc.ListByEntity(ctx.Params("entity"), uint(entityID))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, entries)
}
