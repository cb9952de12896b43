package handlers

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"instabudget/internal/dto"
	"instabudget/internal/service"
)

type ScanHandler struct {
	scanService  *service.ScanService
	voiceService *service.VoiceService
	logger       *zap.Logger
}

func NewScanHandler(scanService *service.ScanService, voiceService *service.VoiceService, logger *zap.Logger) *ScanHandler {
	return &ScanHandler{
		scanService:  scanService,
		voiceService: voiceService,
		logger:       logger,
	}
}

// ReceiptScan godoc
// @Summary Scan a receipt image or save a manual transaction
// @Description mode=receipt extracts a transaction from an uploaded receipt image; mode=manual saves a client-built transaction payload
// @Tags scan
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param mode query string false "receipt or manual" default(receipt)
// @Param receipt_file formData file false "Receipt image (mode=receipt)"
// @Param isAuto formData string false "Persist immediately" default(true)
// @Security Bearer
// @Success 200 {object} dto.ScanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/receipt-scan [post]
func (h *ScanHandler) ReceiptScan(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	mode := c.Query("mode", "receipt")
	switch mode {
	case "manual":
		return h.saveManual(c)
	case "receipt":
	default:
		return badRequest(c, "Invalid mode")
	}

	file, err := c.FormFile("receipt_file")
	if err != nil {
		return badRequest(c, "receipt_file is required")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return badRequest(c, "Only image uploads are accepted")
	}

	src, err := file.Open()
	if err != nil {
		return badRequest(c, "Failed to open file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return badRequest(c, "Failed to read file")
	}

	isAuto := c.FormValue("isAuto", "true") != "false"

	resp, err := h.scanService.ScanReceipt(c.Context(), userID, file.Filename, data, isAuto)
	if err != nil {
		h.logger.Warn("Receipt scan failed", zap.Error(err), zap.String("user_id", userID.String()))
		return respondError(c, err)
	}

	return c.JSON(resp)
}

func (h *ScanHandler) saveManual(c *fiber.Ctx) error {
	var payload dto.TransactionPayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "Validation failed",
			Details: err.Error(),
		})
	}

	saved, err := h.scanService.SaveManual(c.Context(), &payload)
	if err != nil {
		h.logger.Warn("Manual save failed", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(dto.ScanResponse{Success: true, Mode: service.ModeAuto, Transaction: *saved})
}

// VoiceScan godoc
// @Summary Extract a transaction from a voice note
// @Tags scan
// @Accept multipart/form-data
// @Produce json
// @Param audio_file formData file true "Voice note (audio/*)"
// @Param isAuto formData string false "Persist immediately" default(true)
// @Param timezone formData string false "IANA timezone of the caller"
// @Security Bearer
// @Success 200 {object} dto.ScanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/voice-scan [post]
func (h *ScanHandler) VoiceScan(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	file, err := c.FormFile("audio_file")
	if err != nil {
		return badRequest(c, "audio_file is required")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		return badRequest(c, "Only audio uploads are accepted")
	}

	src, err := file.Open()
	if err != nil {
		return badRequest(c, "Failed to open file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return badRequest(c, "Failed to read file")
	}

	isAuto := c.FormValue("isAuto", "true") != "false"
	timezone := c.FormValue("timezone")

	resp, err := h.voiceService.ScanVoice(c.Context(), userID, file.Filename, data, isAuto, timezone)
	if err != nil {
		h.logger.Warn("Voice scan failed", zap.Error(err), zap.String("user_id", userID.String()))
		return respondError(c, err)
	}

	return c.JSON(resp)
}
