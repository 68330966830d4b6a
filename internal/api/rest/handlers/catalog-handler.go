package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stockguard/damage_service/internal/dto"
	"github.com/stockguard/damage_service/internal/helper/utils"
	"github.com/stockguard/damage_service/internal/services"
)

type CatalogHandler struct {
	svc services.CatalogService
}

func NewCatalogHandler(svc services.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	customers := api.Group("/customers")
	customers.Post("/", h.CreateCustomer)
	customers.Get("/", h.ListCustomers)
	customers.Get("/:customerID", h.GetCustomer)
	customers.Delete("/:customerID", h.DeactivateCustomer)
	customers.Get("/:customerID/products", h.ListProducts)

	api.Post("/products", h.CreateProduct)
	api.Get("/locations", h.ListLocations)
}

func (h *CatalogHandler) CreateCustomer(ctx *fiber.Ctx) error {
	var requestBody dto.CreateCustomerRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	customer, err := h.svc.CreateCustomer(requestBody, actorID(ctx), ctx.IP())
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, customer)
}

func (h *CatalogHandler) ListCustomers(ctx *fiber.Ctx) error {
	customers, err := h.svc.ListCustomers(ctx.QueryInt("limit", 50), ctx.QueryInt("offset", 0))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, customers)
}

func (h *CatalogHandler) GetCustomer(ctx *fiber.Ctx) error {
	customerID, err := ctx.ParamsInt("customerID")
	if err != nil || customerID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid customer id")
	}

	customer, err := h.svc.GetCustomer(uint(customerID))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, customer)
}

func (h *CatalogHandler) DeactivateCustomer(ctx *fiber.Ctx) error {
	customerID, err := ctx.ParamsInt("customerID")
	if err != nil || customerID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid customer id")
	}

	if err := h.svc.DeactivateCustomer(uint(customerID), actorID(ctx), ctx.IP()); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"deactivated": true})
}

func (h *CatalogHandler) ListProducts(ctx *fiber.Ctx) error {
	customerID, err := ctx.ParamsInt("customerID")
	if err != nil || customerID <= 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid customer id")
	}

	products, err := h.svc.ListProducts(uint(customerID), ctx.QueryInt("limit", 50), ctx.QueryInt("offset", 0))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, products)
}

func (h *CatalogHandler) CreateProduct(ctx *fiber.Ctx) error {
	var requestBody dto.CreateProductRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	product, err := h.svc.CreateProduct(requestBody, actorID(ctx), ctx.IP())
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, product)
}

func (h *CatalogHandler) ListLocations(ctx *fiber.Ctx) error {
	locations, err := h.svc.ListLocations(ctx.QueryInt("limit", 50), ctx.QueryInt("offset", 0))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, locations)
}
