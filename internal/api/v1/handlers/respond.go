package handlers

import "github.com/gofiber/fiber/v2"

// respond writes the success envelope shared by every endpoint.
func respond(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"statusCode": status,
		"data":       data,
		"message":    message,
		"success":    true,
	})
}
