package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"instabudget/internal/dto"
	"instabudget/internal/service"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
	logger             *zap.Logger
}

func NewTransactionHandler(transactionService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// ListTransactions godoc
// @Summary List the caller's transactions
// @Tags transactions
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.TransactionListResponse
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	transactions, err := h.transactionService.List(c.Context(), userID)
	if err != nil {
		h.logger.Warn("Transaction list failed", zap.Error(err), zap.String("user_id", userID.String()))
		return respondError(c, err)
	}

	return c.JSON(dto.TransactionListResponse{Success: true, Transactions: transactions})
}

// UpdateTransaction godoc
// @Summary Edit a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.UpdateTransactionRequest true "Fields to change"
// @Security Bearer
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid transaction ID")
	}

	var req dto.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "Validation failed",
			Details: err.Error(),
		})
	}

	transaction, err := h.transactionService.Update(c.Context(), userID, id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.TransactionResponse{Success: true, Transaction: *transaction})
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Security Bearer
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid transaction ID")
	}

	if err := h.transactionService.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.MessageResponse{Success: true, Message: "Transaction deleted"})
}
