package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vitrine/catalog-service/internal/apperr"
	"github.com/vitrine/catalog-service/internal/category"
	categorydto "github.com/vitrine/catalog-service/internal/category/dto"
	"github.com/vitrine/catalog-service/internal/image"
	"github.com/vitrine/catalog-service/internal/model"
	"github.com/vitrine/catalog-service/internal/product"
	"github.com/vitrine/catalog-service/internal/product/dto"
	"github.com/vitrine/catalog-service/internal/product/pricing"
	"github.com/vitrine/catalog-service/internal/storefront"
	"github.com/vitrine/catalog-service/pkg/cache"
	"github.com/vitrine/catalog-service/pkg/logger"
	"github.com/vitrine/catalog-service/pkg/search"
	"go.uber.org/zap"
)

const (
	productIndex = "products"
	cacheTTL     = 5 * time.Minute
)

type storefrontUseCase struct {
	products   product.Repository
	categories category.Repository
	images     image.Repository
	cache      *cache.RedisClient
	es         *search.Client
	logger     logger.ZapLogger
}

func NewStorefrontUseCase(
	products product.Repository,
	categories category.Repository,
	images image.Repository,
	redis *cache.RedisClient,
	es *search.Client,
	log logger.ZapLogger,
) storefront.UseCase {
	return &storefrontUseCase{
		products:   products,
		categories: categories,
		images:     images,
		cache:      redis,
		es:         es,
		logger:     log,
	}
}

func (uc *storefrontUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey := listCacheKey(filters)

	// 1. Check cache
	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var cached struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	// 2. Text search goes to Elastic when available
	if filters.SearchQuery != "" && uc.es != nil {
		products, total, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, total, nil
		}
		// ES down is not a storefront outage; fall through to the DB.
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	// 3. DB query
	products, count, err := uc.products.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	// 4. Set cache
	if uc.cache != nil {
		cached := struct {
			Products []model.Product
			Count    int
		}{Products: products, Count: count}
		if data, err := json.Marshal(cached); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, cacheTTL)
		}
	}

	return products, count, nil
}

func (uc *storefrontUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	q := map[string]any{
		"query": map[string]any{
			"query_string": map[string]any{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name^3", "slug", "description"},
			},
		},
		"from": (filters.Page - 1) * filters.PageSize,
	}
	if filters.PageSize > 0 {
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, productIndex, q)
	if err != nil {
		return nil, 0, err
	}

	var products []model.Product
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *storefrontUseCase) GetProductPage(ctx context.Context, slug string) (*storefront.ProductPage, error) {
	cacheKey := "catalog:product:" + slug
	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var page storefront.ProductPage
			if err := json.Unmarshal([]byte(val), &page); err == nil {
				return &page, nil
			}
		}
	}

	p, err := uc.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if p == nil {
		return nil, apperr.NotFound("product.not_found")
	}

	rows, err := uc.products.ListPricing(ctx, p.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	p.Pricing = rows

	variants, err := uc.products.ListVariants(ctx, p.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for i := range variants {
		images, err := uc.images.ListByVariant(ctx, variants[i].ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		variants[i].Images = images
	}
	p.Variants = variants

	cat, err := uc.categories.FindByID(ctx, p.CategoryID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	page := &storefront.ProductPage{
		Product:  *p,
		Pricing:  pricing.Normalize(rows),
		Category: cat,
	}

	if uc.cache != nil {
		if data, err := json.Marshal(page); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, cacheTTL)
		}
	}

	return page, nil
}

func (uc *storefrontUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cacheKey := "catalog:categories"
	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var cats []model.Category
			if err := json.Unmarshal([]byte(val), &cats); err == nil {
				return cats, nil
			}
		}
	}

	active := true
	cats, err := uc.categories.FindAll(ctx, &categorydto.CategoryFilters{IsActive: &active})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if uc.cache != nil {
		if data, err := json.Marshal(cats); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, cacheTTL)
		}
	}

	return cats, nil
}

func listCacheKey(filters *dto.ProductFilters) string {
	data, _ := json.Marshal(filters)
	return fmt.Sprintf("catalog:products:%x", md5.Sum(data))
}
