package image

import (
	"context"
	"mime/multipart"

	"github.com/vitrine/catalog-service/internal/image/dto"
	"github.com/vitrine/catalog-service/internal/model"
	"github.com/vitrine/catalog-service/pkg/imagestore"
)

type UseCase interface {
	Upload(ctx context.Context, header *multipart.FileHeader) (*imagestore.UploadResult, error)
	CreateImage(ctx context.Context, input *dto.CreateImageInput) (*model.ProductImage, error)
	ListImages(ctx context.Context, variantID string) ([]model.ProductImage, error)
	UpdateImage(ctx context.Context, input *dto.UpdateImageInput) (*model.ProductImage, error)
	DeleteImage(ctx context.Context, id string) error
}

// VariantFinder is the slice of the product repository the image flow
// needs to validate ownership.
type VariantFinder interface {
	FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error)
}
