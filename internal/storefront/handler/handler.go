package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vitrine/catalog-service/internal/httpapi"
	"github.com/vitrine/catalog-service/internal/product/dto"
	"github.com/vitrine/catalog-service/internal/storefront"
	"github.com/vitrine/catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type StorefrontHandler struct {
	uc     storefront.UseCase
	logger logger.ZapLogger
}

func NewStorefrontHandler(uc storefront.UseCase, log logger.ZapLogger) *StorefrontHandler {
	return &StorefrontHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	filters := &dto.ProductFilters{
		CategorySlug: c.Query("category"),
		SearchQuery:  c.Query("q"),
	}
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "24"))

	products, total, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("storefront product listing failed", zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.OKData(c, gin.H{"items": products, "total": total})
}

func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	page, err := h.uc.GetProductPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OKData(c, page)
}

func (h *StorefrontHandler) ListCategories(c *gin.Context) {
	cats, err := h.uc.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("storefront category listing failed", zap.Error(err))
		httpapi.Fail(c, err)
		return
	}
	httpapi.OKData(c, cats)
}
