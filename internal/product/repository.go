package product

import (
	"context"

	"github.com/vitrine/catalog-service/internal/model"
	"github.com/vitrine/catalog-service/internal/product/dto"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	ListPricing(ctx context.Context, productID string) ([]model.PricingModality, error)

	CreateVariant(ctx context.Context, variant *model.ProductVariant) error
	FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error)
	ListVariants(ctx context.Context, productID string) ([]model.ProductVariant, error)
	DeleteVariant(ctx context.Context, id string) error

	// InTx runs fn inside a single transaction; any error rolls the
	// whole unit of work back. Multi-step writes (product + pricing
	// rows) must go through here, never through two independent calls.
	InTx(ctx context.Context, fn func(tx TxRepository) error) error
}

// TxRepository is the write surface available inside a transaction.
type TxRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	InsertPricing(ctx context.Context, rows []model.PricingModality) error
	DeletePricingByProduct(ctx context.Context, productID string) error
	DeleteProduct(ctx context.Context, id string) error
}
