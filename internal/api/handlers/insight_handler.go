package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"instabudget/internal/dto"
	"instabudget/internal/service"
)

type InsightHandler struct {
	insightService *service.InsightService
	logger         *zap.Logger
}

func NewInsightHandler(insightService *service.InsightService, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
		logger:         logger,
	}
}

// AIInsight godoc
// @Summary Generate AI spending insights
// @Description Aggregates the last 30 days of spending against budgets and asks the model for coaching insights.
// @Tags insight
// @Accept json
// @Produce json
// @Param request body dto.InsightRequest true "User"
// @Security Bearer
// @Success 200 {object} dto.InsightResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/ai-insight [post]
func (h *InsightHandler) AIInsight(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var req dto.InsightRequest
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
	// Insights are always generated for the authenticated caller.
	if req.UserID != userID.String() {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Forbidden"})
	}

	resp, err := h.insightService.Generate(c.Context(), userID)
	if err != nil {
		h.logger.Warn("Insight generation failed", zap.Error(err), zap.String("user_id", userID.String()))
		return respondError(c, err)
	}

	return c.JSON(resp)
}
