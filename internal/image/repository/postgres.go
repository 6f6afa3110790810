package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vitrine/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, img *model.ProductImage) error {
	query := `
        INSERT INTO product_images (id, variant_id, url, asset_id, sort_order, alt_text, created_at)
        VALUES (:id, :variant_id, :url, :asset_id, :sort_order, :alt_text, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, img)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.ProductImage, error) {
	var img model.ProductImage
	query := `SELECT * FROM product_images WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &img, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (r *PGRepository) ListByVariant(ctx context.Context, variantID string) ([]model.ProductImage, error) {
	var images []model.ProductImage
	// Display order: sort_order need not be contiguous, ties keep
	// insertion order.
	query := `
        SELECT * FROM product_images
        WHERE variant_id = $1
        ORDER BY sort_order ASC, created_at ASC, id ASC
    `
	err := r.DB.SelectContext(ctx, &images, query, variantID)
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *PGRepository) Update(ctx context.Context, img *model.ProductImage) error {
	query := `
        UPDATE product_images
        SET sort_order = :sort_order,
            alt_text = :alt_text
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, img)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM product_images WHERE id = $1", id)
	return err
}
