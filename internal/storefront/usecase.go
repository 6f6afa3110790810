package storefront

import (
	"context"

	"github.com/vitrine/catalog-service/internal/model"
	"github.com/vitrine/catalog-service/internal/product/dto"
	"github.com/vitrine/catalog-service/internal/product/pricing"
)

// ProductPage is everything the product summary/detail view renders:
// the row itself, its variants with ordered images, and the pricing
// rows normalized for display.
type ProductPage struct {
	Product  model.Product      `json:"product"`
	Pricing  pricing.Normalized `json:"pricing"`
	Category *model.Category    `json:"category"`
}

type UseCase interface {
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	GetProductPage(ctx context.Context, slug string) (*ProductPage, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}
