package response

import "github.com/gofiber/fiber/v2"

// Response is the JSON envelope every endpoint replies with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func send(c *fiber.Ctx, status int, body Response) error {
	return c.Status(status).JSON(body)
}

// Success replies 200 with data
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return send(c, fiber.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Created replies 201 with the new resource
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return send(c, fiber.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Error replies with an arbitrary failure status. Messages are shown to
// clients as-is, so callers never pass raw errors here.
func Error(c *fiber.Ctx, status int, message string) error {
	return send(c, status, Response{Error: message})
}

func failWith(status int) func(*fiber.Ctx, string) error {
	return func(c *fiber.Ctx, message string) error {
		return Error(c, status, message)
	}
}

// Shorthands for the failure statuses the API uses.
var (
	BadRequest          = failWith(fiber.StatusBadRequest)
	Unauthorized        = failWith(fiber.StatusUnauthorized)
	Forbidden           = failWith(fiber.StatusForbidden)
	NotFound            = failWith(fiber.StatusNotFound)
	Conflict            = failWith(fiber.StatusConflict)
	TooManyRequests     = failWith(fiber.StatusTooManyRequests)
	InternalServerError = failWith(fiber.StatusInternalServerError)
)
