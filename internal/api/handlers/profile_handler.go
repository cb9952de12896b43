package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"instabudget/internal/dto"
	"instabudget/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// UpsertProfile godoc
// @Summary Create or update the caller's profile
// @Description Persists profile fields and initializes the budget cycle on first save. Runs cycle renewal before returning.
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.UpsertProfileRequest true "Profile fields"
// @Security Bearer
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/upsert-profile [post]
func (h *ProfileHandler) UpsertProfile(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var req dto.UpsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID == "" {
		req.UserID = userID.String()
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "Validation failed",
			Details: err.Error(),
		})
	}

	profile, err := h.profileService.Upsert(c.Context(), &req)
	if err != nil {
		h.logger.Warn("Profile upsert failed", zap.Error(err), zap.String("user_id", req.UserID))
		return respondError(c, err)
	}

	return c.JSON(dto.ProfileResponse{Success: true, Profile: profile})
}

// GetProfile godoc
// @Summary Fetch the caller's profile
// @Description Runs budget cycle renewal before returning the profile.
// @Tags profile
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	profile, err := h.profileService.Get(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.ProfileResponse{Success: true, Profile: profile})
}
