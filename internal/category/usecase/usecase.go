package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vitrine/catalog-service/internal/apperr"
	"github.com/vitrine/catalog-service/internal/category"
	"github.com/vitrine/catalog-service/internal/category/dto"
	"github.com/vitrine/catalog-service/internal/events"
	"github.com/vitrine/catalog-service/internal/model"
	"github.com/vitrine/catalog-service/pkg/logger"
	"github.com/vitrine/catalog-service/pkg/postgres"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	events events.Publisher
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, pub events.Publisher, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		events: pub,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Slug) == "" {
		missing = append(missing, "slug")
	}
	if len(missing) > 0 {
		return nil, apperr.ValidationData("validation.required", map[string]any{
			"Fields": strings.Join(missing, ", "),
		})
	}

	// Validate parent exists when given
	if input.ParentID != nil && *input.ParentID != "" {
		parent, err := uc.repo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if parent == nil {
			return nil, apperr.NotFound("category.not_found")
		}
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ParentID:       input.ParentID,
		Name:           input.Name,
		Slug:           input.Slug,
		Description:    optional(input.Description),
		SEOTitle:       optional(input.SEOTitle),
		SEODescription: optional(input.SEODescription),
		IsActive:       isActive,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("category.slug_conflict")
		}
		return nil, apperr.Internal(err)
	}

	uc.publish(ctx, cat.ID, events.ActionCreated)
	return cat, nil
}

// GetCategory accepts either the row id or the slug; admin UIs link by
// slug as often as by id. The id column is UUID-typed, so anything that
// does not parse as a uuid can only be a slug.
func (uc *categoryUseCase) GetCategory(ctx context.Context, idOrSlug string) (*model.Category, error) {
	var cat *model.Category
	var err error
	if _, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		cat, err = uc.repo.FindByID(ctx, idOrSlug)
	} else {
		cat, err = uc.repo.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if cat == nil {
		return nil, apperr.NotFound("category.not_found")
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error) {
	cats, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return cats, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if cat == nil {
		return nil, apperr.NotFound("category.not_found")
	}

	// Merge the partial field set onto the stored row
	if input.Name != nil {
		cat.Name = *input.Name
	}
	if input.Slug != nil {
		cat.Slug = *input.Slug
	}
	if input.ParentID != nil {
		if *input.ParentID == "" {
			cat.ParentID = nil
		} else {
			cat.ParentID = input.ParentID
		}
	}
	if input.Description != nil {
		cat.Description = input.Description
	}
	if input.SEOTitle != nil {
		cat.SEOTitle = input.SEOTitle
	}
	if input.SEODescription != nil {
		cat.SEODescription = input.SEODescription
	}
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("category.slug_conflict")
		}
		return nil, apperr.Internal(err)
	}

	uc.publish(ctx, cat.ID, events.ActionUpdated)
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	// Look up first: deleting a missing row must report not-found,
	// not silently succeed.
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if cat == nil {
		return apperr.NotFound("category.not_found")
	}

	count, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if count > 0 {
		return apperr.Conflict("category.in_use")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}

	uc.publish(ctx, id, events.ActionDeleted)
	return nil
}

func (uc *categoryUseCase) BulkDeleteCategories(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	count, err := uc.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, apperr.Internal(err)
	}

	// One event regardless of how many rows went away: the listing view
	// only needs to be invalidated once.
	uc.publish(ctx, "*", events.ActionDeleted)
	return count, nil
}

func (uc *categoryUseCase) publish(ctx context.Context, id, action string) {
	if err := uc.events.Publish(ctx, events.EntityCategory, id, action); err != nil {
		uc.logger.Error("failed to publish category change", zap.String("id", id), zap.Error(err))
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
