package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bookhaven/internal/validate"
)

// Every response uses the same envelope:
// {success, message?, count?, data?, errors?, error?}.

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func okMsg(c *fiber.Ctx, msg string, data any) error {
	return c.JSON(fiber.Map{"success": true, "message": msg, "data": data})
}

func okList[T any](c *fiber.Ctx, items []T) error {
	return c.JSON(fiber.Map{"success": true, "count": len(items), "data": items})
}

func created(c *fiber.Ctx, msg string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": msg, "data": data})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}

func failValidation(c *fiber.Ctx, errs validate.FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  []string(errs),
	})
}

func failInternal(c *fiber.Ctx, msg string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": msg,
		"error":   err.Error(),
	})
}
