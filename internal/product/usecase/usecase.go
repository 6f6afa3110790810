package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vitrine/catalog-service/internal/apperr"
	"github.com/vitrine/catalog-service/internal/events"
	"github.com/vitrine/catalog-service/internal/model"
	"github.com/vitrine/catalog-service/internal/product"
	"github.com/vitrine/catalog-service/internal/product/dto"
	"github.com/vitrine/catalog-service/pkg/logger"
	"github.com/vitrine/catalog-service/pkg/postgres"
	"github.com/vitrine/catalog-service/pkg/search"
	"go.uber.org/zap"
)

const productIndex = "products"

type productUseCase struct {
	repo   product.Repository
	es     *search.Client
	events events.Publisher
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, es *search.Client, pub events.Publisher, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		es:     es,
		events: pub,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Slug) == "" {
		missing = append(missing, "slug")
	}
	if strings.TrimSpace(input.CategoryID) == "" {
		missing = append(missing, "category_id")
	}
	if len(missing) > 0 {
		return nil, apperr.ValidationData("validation.required", map[string]any{
			"Fields": strings.Join(missing, ", "),
		})
	}

	now := time.Now()
	p := &model.Product{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        input.Slug,
		Description: optional(input.Description),
	}
	p.Pricing = buildPricingRows(p.ID, input.Pricing, now)

	err := uc.repo.InTx(ctx, func(tx product.TxRepository) error {
		if err := tx.CreateProduct(ctx, p); err != nil {
			return err
		}
		return tx.InsertPricing(ctx, p.Pricing)
	})
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("product.slug_conflict")
		}
		return nil, apperr.Internal(err)
	}

	uc.publish(ctx, p.ID, events.ActionCreated)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if p == nil {
		return nil, apperr.NotFound("product.not_found")
	}

	pricing, err := uc.repo.ListPricing(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	p.Pricing = pricing

	variants, err := uc.repo.ListVariants(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	p.Variants = variants

	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return products, count, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if p == nil {
		return nil, apperr.NotFound("product.not_found")
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Slug != nil {
		p.Slug = *input.Slug
	}
	if input.CategoryID != nil {
		p.CategoryID = *input.CategoryID
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperr.Conflict("product.slug_conflict")
		}
		return nil, apperr.Internal(err)
	}

	// A non-nil pricing set replaces the product's modality rows wholesale.
	if input.Pricing != nil {
		rows := buildPricingRows(p.ID, *input.Pricing, time.Now())
		err := uc.repo.InTx(ctx, func(tx product.TxRepository) error {
			if err := tx.DeletePricingByProduct(ctx, p.ID); err != nil {
				return err
			}
			return tx.InsertPricing(ctx, rows)
		})
		if err != nil {
			return nil, apperr.Internal(err)
		}
		p.Pricing = rows
	} else {
		pricing, err := uc.repo.ListPricing(ctx, p.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		p.Pricing = pricing
	}

	uc.publish(ctx, p.ID, events.ActionUpdated)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if p == nil {
		return apperr.NotFound("product.not_found")
	}

	// Pricing rows first, product second: no cascade is configured at
	// that edge, and the whole unit rolls back on partial failure.
	err = uc.repo.InTx(ctx, func(tx product.TxRepository) error {
		if err := tx.DeletePricingByProduct(ctx, id); err != nil {
			return err
		}
		return tx.DeleteProduct(ctx, id)
	})
	if err != nil {
		return apperr.Internal(err)
	}

	uc.publish(ctx, id, events.ActionDeleted)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.String("id", id), zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *productUseCase) AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.ProductVariant, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.ValidationData("validation.required", map[string]any{"Fields": "name"})
	}

	p, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if p == nil {
		return nil, apperr.NotFound("product.not_found")
	}

	now := time.Now()
	v := &model.ProductVariant{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProductID: input.ProductID,
		Name:      input.Name,
		SKU:       optional(input.SKU),
	}

	if err := uc.repo.CreateVariant(ctx, v); err != nil {
		return nil, apperr.Internal(err)
	}

	uc.publish(ctx, input.ProductID, events.ActionUpdated)
	return v, nil
}

func (uc *productUseCase) ListVariants(ctx context.Context, productID string) ([]model.ProductVariant, error) {
	variants, err := uc.repo.ListVariants(ctx, productID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return variants, nil
}

func (uc *productUseCase) DeleteVariant(ctx context.Context, id string) error {
	v, err := uc.repo.FindVariantByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if v == nil {
		return apperr.NotFound("variant.not_found")
	}

	if err := uc.repo.DeleteVariant(ctx, id); err != nil {
		return apperr.Internal(err)
	}

	uc.publish(ctx, v.ProductID, events.ActionUpdated)
	return nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"name": { "type": "text" },
				"slug": { "type": "keyword" },
				"description": { "type": "text" },
				"category_id": { "type": "keyword" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndex, mapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) publish(ctx context.Context, id, action string) {
	if err := uc.events.Publish(ctx, events.EntityProduct, id, action); err != nil {
		uc.logger.Error("failed to publish product change", zap.String("id", id), zap.Error(err))
	}
}

func buildPricingRows(productID string, inputs []dto.PricingInput, now time.Time) []model.PricingModality {
	rows := make([]model.PricingModality, 0, len(inputs))
	for i, in := range inputs {
		promoType := in.PromoType
		if promoType == "" {
			promoType = "normal"
		}
		rows = append(rows, model.PricingModality{
			ID:               uuid.New().String(),
			ProductID:        productID,
			ModalityType:     in.ModalityType,
			PriceCents:       in.PriceCents,
			PromoPriceCents:  in.PromoPriceCents,
			PromoActive:      in.PromoActive,
			PromoType:        promoType,
			DeliveryEstimate: optional(in.DeliveryEstimate),
			IsMainCardPrice:  in.IsMainCardPrice,
			// Stagger batch timestamps so created_at keeps the input order.
			CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
		})
	}
	return rows
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
