package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vitrine/catalog-service/internal/httpapi"
	"github.com/vitrine/catalog-service/internal/product"
	"github.com/vitrine/catalog-service/internal/product/dto"
	"github.com/vitrine/catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input dto.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpapi.BadRequest(c, "validation.required")
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.Created(c, "product.created", p)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OKData(c, p)
}

func (h *ProductHandler) List(c *gin.Context) {
	filters := &dto.ProductFilters{
		CategoryID:  c.Query("category_id"),
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
	}
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	products, total, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.OKData(c, gin.H{"items": products, "total": total})
}

func (h *ProductHandler) Update(c *gin.Context) {
	var input dto.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpapi.BadRequest(c, "validation.required")
		return
	}
	input.ID = c.Param("id")

	p, err := h.uc.UpdateProduct(c.Request.Context(), &input)
	if err != nil {
		h.logger.Error("failed to update product", zap.String("id", input.ID), zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.OK(c, "product.updated", p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OK(c, "product.deleted", nil)
}

func (h *ProductHandler) AddVariant(c *gin.Context) {
	var input dto.CreateVariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpapi.BadRequest(c, "validation.required")
		return
	}
	input.ProductID = c.Param("id")

	v, err := h.uc.AddVariant(c.Request.Context(), &input)
	if err != nil {
		h.logger.Error("failed to add variant", zap.String("product_id", input.ProductID), zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.Created(c, "variant.created", v)
}

func (h *ProductHandler) ListVariants(c *gin.Context) {
	variants, err := h.uc.ListVariants(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OKData(c, variants)
}

func (h *ProductHandler) DeleteVariant(c *gin.Context) {
	if err := h.uc.DeleteVariant(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OK(c, "variant.deleted", nil)
}
