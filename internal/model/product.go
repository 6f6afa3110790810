package model

import "time"

type Product struct {
	BaseModel
	CategoryID  string  `db:"category_id" json:"category_id"`
	Name        string  `db:"name" json:"name"`
	Slug        string  `db:"slug" json:"slug"` // Globally unique, URL-safe
	Description *string `db:"description" json:"description"`

	Pricing  []PricingModality `db:"-" json:"pricing"`  // Loaded separately, insertion order
	Variants []ProductVariant  `db:"-" json:"variants"` // Loaded separately
	Category *Category         `db:"-" json:"category"` // Joined data
}

// PricingModality is one pricing tier of a product (e.g. standard vs
// express). Prices are stored in minor currency units (cents); a promo
// price of zero cents is a real price, absence is the pointer being nil.
type PricingModality struct {
	ID               string    `db:"id" json:"id"`
	ProductID        string    `db:"product_id" json:"product_id"`
	ModalityType     string    `db:"modality_type" json:"modality_type"`
	PriceCents       int64     `db:"price_cents" json:"price_cents"`
	PromoPriceCents  *int64    `db:"promo_price_cents" json:"promo_price_cents"`
	PromoActive      bool      `db:"promo_active" json:"promo_active"`
	PromoType        string    `db:"promo_type" json:"promo_type"`
	DeliveryEstimate *string   `db:"delivery_estimate" json:"delivery_estimate"`
	IsMainCardPrice  bool      `db:"is_main_card_price" json:"is_main_card_price"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

type ProductVariant struct {
	BaseModel
	ProductID string         `db:"product_id" json:"product_id"`
	Name      string         `db:"name" json:"name"`
	SKU       *string        `db:"sku" json:"sku"`
	Images    []ProductImage `db:"-" json:"images"` // Loaded separately, sort_order asc
}

type ProductImage struct {
	ID        string    `db:"id" json:"id"`
	VariantID string    `db:"variant_id" json:"variant_id"`
	URL       string    `db:"url" json:"url"`
	AssetID   string    `db:"asset_id" json:"asset_id"` // Image-store identifier for lifecycle management
	SortOrder int       `db:"sort_order" json:"sort_order"`
	AltText   *string   `db:"alt_text" json:"alt_text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
