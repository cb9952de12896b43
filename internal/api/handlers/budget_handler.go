package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"instabudget/internal/dto"
	"instabudget/internal/service"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// ListCategories godoc
// @Summary List budget categories with live spend
// @Description Recomputes spend over the caller's current cycle window and returns usage status per category.
// @Tags budget
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.CategoryListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/budget-categories [get]
func (h *BudgetHandler) ListCategories(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	categories, err := h.budgetService.List(c.Context(), userID)
	if err != nil {
		h.logger.Warn("Budget list failed", zap.Error(err), zap.String("user_id", userID.String()))
		return respondError(c, err)
	}

	return c.JSON(dto.CategoryListResponse{Success: true, Categories: categories})
}

// CreateCategory godoc
// @Summary Create a budget category
// @Tags budget
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category and limit"
// @Security Bearer
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/budget-categories [post]
func (h *BudgetHandler) CreateCategory(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var req dto.CreateCategoryRequest
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

	category, err := h.budgetService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CategoryResponse{Success: true, Category: *category})
}

// UpdateCategory godoc
// @Summary Update a budget category limit
// @Tags budget
// @Accept json
// @Produce json
// @Param id query string true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "New limit"
// @Security Bearer
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/budget-categories [put]
func (h *BudgetHandler) UpdateCategory(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	category, err := h.budgetService.UpdateLimit(c.Context(), userID, id, req.LimitAmount)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.CategoryResponse{Success: true, Category: *category})
}

// DeleteCategory godoc
// @Summary Delete a budget category
// @Tags budget
// @Produce json
// @Param id query string true "Category ID"
// @Security Bearer
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/budget-categories [delete]
func (h *BudgetHandler) DeleteCategory(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	if err := h.budgetService.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.MessageResponse{Success: true, Message: "Budget category deleted"})
}
