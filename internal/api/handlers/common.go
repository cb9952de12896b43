package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"instabudget/internal/dto"
	"instabudget/internal/service"
)

var validate = validator.New()

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

// respondError maps service errors onto the uniform error envelope.
func respondError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   vErr.Message,
			Details: vErr.Details,
		})
	case errors.Is(err, service.ErrAIUnusable):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "AI returned unusable output",
			Details: err.Error(),
		})
	case errors.Is(err, service.ErrAIUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: "AI provider unavailable",
		})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "Resource not found",
		})
	case errors.Is(err, service.ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: "User already exists",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "Invalid credentials",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: message})
}
