package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vitrine/catalog-service/internal/category"
	"github.com/vitrine/catalog-service/internal/category/dto"
	"github.com/vitrine/catalog-service/internal/httpapi"
	"github.com/vitrine/catalog-service/pkg/i18n"
	"github.com/vitrine/catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var input dto.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpapi.BadRequest(c, "validation.required")
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.Created(c, "category.created", cat)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.uc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OKData(c, cat)
}

func (h *CategoryHandler) List(c *gin.Context) {
	filters := &dto.CategoryFilters{}

	if parent, ok := c.GetQuery("parent_id"); ok {
		filters.ParentID = &parent
	}
	if activeStr, ok := c.GetQuery("is_active"); ok {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			filters.IsActive = &active
		}
	}
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "0"))

	cats, err := h.uc.ListCategories(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.OKData(c, cats)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var input dto.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpapi.BadRequest(c, "validation.required")
		return
	}
	input.ID = c.Param("id")

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &input)
	if err != nil {
		h.logger.Error("failed to update category", zap.String("id", input.ID), zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.OK(c, "category.updated", cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.uc.DeleteCategory(c.Request.Context(), id); err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.OK(c, "category.deleted", nil)
}

func (h *CategoryHandler) BulkDelete(c *gin.Context) {
	var input dto.BulkDeleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpapi.BadRequest(c, "validation.required")
		return
	}

	count, err := h.uc.BulkDeleteCategories(c.Request.Context(), input.IDs)
	if err != nil {
		h.logger.Error("failed to bulk delete categories", zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.OKMessage(c, i18n.TData("category.bulk_deleted", map[string]any{"Count": count}))
}
