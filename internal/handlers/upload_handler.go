package handlers

import (
	"mediarate-backend/internal/services"
	"mediarate-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UploadHandler struct {
	minioService *services.MinIOService
	logger       *logrus.Logger
}

func NewUploadHandler(minioService *services.MinIOService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		minioService: minioService,
		logger:       logger,
	}
}

// PresignPosterUpload godoc
// @Summary Get a presigned URL for a poster upload
// @Tags upload
// @Produce json
// @Security BearerAuth
// @Param filename query string true "Filename"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Router /upload/presign [get]
func (h *UploadHandler) PresignPosterUpload(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename is required")
	}

	presignedURL, publicURL, err := h.minioService.PresignPosterUpload(c.UserContext(), filename)
	if err != nil {
		h.logger.WithError(err).Error("Failed to presign poster upload")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to presign upload")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated", fiber.Map{
		"presigned_url": presignedURL,
		"public_url":    publicURL,
	})
}
