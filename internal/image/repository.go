package image

import (
	"context"

	"github.com/vitrine/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, image *model.ProductImage) error
	FindByID(ctx context.Context, id string) (*model.ProductImage, error)
	ListByVariant(ctx context.Context, variantID string) ([]model.ProductImage, error)
	Update(ctx context.Context, image *model.ProductImage) error
	Delete(ctx context.Context, id string) error
}
