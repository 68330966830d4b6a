package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stockguard/damage_service/internal/helper"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// create a generic response function for success
func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// ResponseFromError maps the service error taxonomy onto HTTP statuses:
// not found -> 404, invalid transition -> 400, conflict -> 409,
// everything else -> 500.
func ResponseFromError(ctx *fiber.Ctx, err error) error {
	var nf *helper.NotFoundError
	if errors.As(err, &nf) {
		return ResponseError(ctx, fiber.StatusNotFound, err.Error())
	}
	var it *helper.InvalidTransitionError
	if errors.As(err, &it) {
		return ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	var ve *helper.ValidationError
	if errors.As(err, &ve) {
		return ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	var cf *helper.ConflictError
	if errors.As(err, &cf) {
		return ResponseError(ctx, fiber.StatusConflict, err.Error())
	}
	return ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
}
