package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/vitrine/catalog-service/internal/httpapi"
	"github.com/vitrine/catalog-service/internal/image"
	"github.com/vitrine/catalog-service/internal/image/dto"
	"github.com/vitrine/catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type ImageHandler struct {
	uc     image.UseCase
	logger logger.ZapLogger
}

func NewImageHandler(uc image.UseCase, log logger.ZapLogger) *ImageHandler {
	return &ImageHandler{
		uc:     uc,
		logger: log,
	}
}

// Upload receives a multipart file, pushes it to the image store and
// returns {url, assetId}. Attaching the image to a variant is a separate
// call so the admin UI can upload before the variant form is saved.
func (h *ImageHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		httpapi.BadRequest(c, "upload.invalid_type")
		return
	}

	result, err := h.uc.Upload(c.Request.Context(), header)
	if err != nil {
		h.logger.Error("upload failed", zap.String("filename", header.Filename), zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.OKData(c, result)
}

func (h *ImageHandler) Create(c *gin.Context) {
	var input dto.CreateImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpapi.BadRequest(c, "validation.required")
		return
	}
	input.VariantID = c.Param("id")

	img, err := h.uc.CreateImage(c.Request.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create image", zap.String("variant_id", input.VariantID), zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.Created(c, "image.created", img)
}

func (h *ImageHandler) ListByVariant(c *gin.Context) {
	images, err := h.uc.ListImages(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OKData(c, images)
}

func (h *ImageHandler) Update(c *gin.Context) {
	var input dto.UpdateImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpapi.BadRequest(c, "validation.required")
		return
	}
	input.ID = c.Param("id")

	img, err := h.uc.UpdateImage(c.Request.Context(), &input)
	if err != nil {
		httpapi.Fail(c, err)
		return
	}

	httpapi.OK(c, "image.updated", img)
}

func (h *ImageHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteImage(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OK(c, "image.deleted", nil)
}
