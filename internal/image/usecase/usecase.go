package usecase

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vitrine/catalog-service/internal/apperr"
	"github.com/vitrine/catalog-service/internal/events"
	"github.com/vitrine/catalog-service/internal/image"
	"github.com/vitrine/catalog-service/internal/image/dto"
	"github.com/vitrine/catalog-service/internal/model"
	"github.com/vitrine/catalog-service/pkg/imagestore"
	"github.com/vitrine/catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type imageUseCase struct {
	repo     image.Repository
	variants image.VariantFinder
	store    *imagestore.Client
	events   events.Publisher
	logger   logger.ZapLogger
}

func NewImageUseCase(repo image.Repository, variants image.VariantFinder, store *imagestore.Client, pub events.Publisher, log logger.ZapLogger) image.UseCase {
	return &imageUseCase{
		repo:     repo,
		variants: variants,
		store:    store,
		events:   pub,
		logger:   log,
	}
}

func (uc *imageUseCase) Upload(ctx context.Context, header *multipart.FileHeader) (*imagestore.UploadResult, error) {
	if err := uc.store.ValidateImage(header); err != nil {
		if errors.Is(err, imagestore.ErrTooLarge) {
			return nil, apperr.ValidationData("upload.too_large", map[string]any{
				"Max": uc.store.MaxSizeMB(),
			})
		}
		return nil, apperr.Validation("upload.invalid_type")
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer f.Close()

	result, err := uc.store.Upload(ctx, f, header.Filename)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return result, nil
}

func (uc *imageUseCase) CreateImage(ctx context.Context, input *dto.CreateImageInput) (*model.ProductImage, error) {
	var missing []string
	if strings.TrimSpace(input.URL) == "" {
		missing = append(missing, "url")
	}
	if strings.TrimSpace(input.AssetID) == "" {
		missing = append(missing, "asset_id")
	}
	if len(missing) > 0 {
		return nil, apperr.ValidationData("validation.required", map[string]any{
			"Fields": strings.Join(missing, ", "),
		})
	}

	variant, err := uc.variants.FindVariantByID(ctx, input.VariantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if variant == nil {
		return nil, apperr.NotFound("variant.not_found")
	}

	img := &model.ProductImage{
		ID:        uuid.New().String(),
		VariantID: input.VariantID,
		URL:       input.URL,
		AssetID:   input.AssetID,
		SortOrder: input.SortOrder,
		AltText:   optional(input.AltText),
		CreatedAt: time.Now(),
	}

	if err := uc.repo.Create(ctx, img); err != nil {
		return nil, apperr.Internal(err)
	}

	uc.publish(ctx, img.ID, events.ActionCreated)
	return img, nil
}

func (uc *imageUseCase) ListImages(ctx context.Context, variantID string) ([]model.ProductImage, error) {
	images, err := uc.repo.ListByVariant(ctx, variantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return images, nil
}

func (uc *imageUseCase) UpdateImage(ctx context.Context, input *dto.UpdateImageInput) (*model.ProductImage, error) {
	img, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if img == nil {
		return nil, apperr.NotFound("image.not_found")
	}

	if input.SortOrder != nil {
		img.SortOrder = *input.SortOrder
	}
	if input.AltText != nil {
		img.AltText = input.AltText
	}

	if err := uc.repo.Update(ctx, img); err != nil {
		return nil, apperr.Internal(err)
	}

	uc.publish(ctx, img.ID, events.ActionUpdated)
	return img, nil
}

func (uc *imageUseCase) DeleteImage(ctx context.Context, id string) error {
	img, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if img == nil {
		return apperr.NotFound("image.not_found")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}

	// Best effort: losing the row matters, losing the remote asset only
	// leaks storage.
	assetID := img.AssetID
	go func() {
		if err := uc.store.Destroy(context.Background(), assetID); err != nil {
			uc.logger.Warn("failed to destroy image asset", zap.String("asset_id", assetID), zap.Error(err))
		}
	}()

	uc.publish(ctx, id, events.ActionDeleted)
	return nil
}

func (uc *imageUseCase) publish(ctx context.Context, id, action string) {
	if err := uc.events.Publish(ctx, events.EntityImage, id, action); err != nil {
		uc.logger.Error("failed to publish image change", zap.String("id", id), zap.Error(err))
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
