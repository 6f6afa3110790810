package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/vitrine/catalog-service/internal/model"
	"github.com/vitrine/catalog-service/internal/product"
	"github.com/vitrine/catalog-service/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var p model.Product
	query := `SELECT * FROM products WHERE slug = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.CategorySlug != "" {
		conditions = append(conditions, "category_id IN (SELECT id FROM categories WHERE slug = :category_slug)")
		args["category_slug"] = f.CategorySlug
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Count
	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	// List
	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// Prevent SQL injection by whitelisting fields
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)

	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &products, args)
	if err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET category_id = :category_id,
            name = :name,
            slug = :slug,
            description = :description,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) ListPricing(ctx context.Context, productID string) ([]model.PricingModality, error) {
	var pricing []model.PricingModality
	// Insertion order: created_at with id as the stable tie-break.
	query := `SELECT * FROM product_pricing_modalities WHERE product_id = $1 ORDER BY created_at ASC, id ASC`
	err := r.DB.SelectContext(ctx, &pricing, query, productID)
	if err != nil {
		return nil, err
	}
	return pricing, nil
}

func (r *PGRepository) CreateVariant(ctx context.Context, v *model.ProductVariant) error {
	query := `
        INSERT INTO product_variants (id, product_id, name, sku, created_at, updated_at)
        VALUES (:id, :product_id, :name, :sku, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error) {
	var v model.ProductVariant
	query := `SELECT * FROM product_variants WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &v, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *PGRepository) ListVariants(ctx context.Context, productID string) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	query := `SELECT * FROM product_variants WHERE product_id = $1 ORDER BY created_at ASC`
	err := r.DB.SelectContext(ctx, &variants, query, productID)
	if err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *PGRepository) DeleteVariant(ctx context.Context, id string) error {
	// Images cascade at the schema level (variant owns them).
	_, err := r.DB.ExecContext(ctx, "DELETE FROM product_variants WHERE id = $1", id)
	return err
}

func (r *PGRepository) InTx(ctx context.Context, fn func(tx product.TxRepository) error) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&txRepository{tx: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

type txRepository struct {
	tx *sqlx.Tx
}

func (r *txRepository) CreateProduct(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (id, category_id, name, slug, description, created_at, updated_at)
        VALUES (:id, :category_id, :name, :slug, :description, :created_at, :updated_at)
    `
	_, err := r.tx.NamedExecContext(ctx, query, p)
	return err
}

func (r *txRepository) InsertPricing(ctx context.Context, rows []model.PricingModality) error {
	if len(rows) == 0 {
		return nil
	}
	query := `
        INSERT INTO product_pricing_modalities (
            id, product_id, modality_type, price_cents, promo_price_cents,
            promo_active, promo_type, delivery_estimate, is_main_card_price, created_at
        )
        VALUES (
            :id, :product_id, :modality_type, :price_cents, :promo_price_cents,
            :promo_active, :promo_type, :delivery_estimate, :is_main_card_price, :created_at
        )
    `
	_, err := r.tx.NamedExecContext(ctx, query, rows)
	return err
}

func (r *txRepository) DeletePricingByProduct(ctx context.Context, productID string) error {
	_, err := r.tx.ExecContext(ctx, "DELETE FROM product_pricing_modalities WHERE product_id = $1", productID)
	return err
}

func (r *txRepository) DeleteProduct(ctx context.Context, id string) error {
	_, err := r.tx.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}
