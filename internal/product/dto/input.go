package dto

type PricingInput struct {
	ModalityType     string `json:"modality_type"`
	PriceCents       int64  `json:"price_cents"`
	PromoPriceCents  *int64 `json:"promo_price_cents"`
	PromoActive      bool   `json:"promo_active"`
	PromoType        string `json:"promo_type"`
	DeliveryEstimate string `json:"delivery_estimate"`
	IsMainCardPrice  bool   `json:"is_main_card_price"`
}

type CreateProductInput struct {
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	CategoryID  string         `json:"category_id"`
	Description string         `json:"description"`
	Pricing     []PricingInput `json:"pricing"`
}

// UpdateProductInput carries a partial field set; nil means keep the
// stored value. A non-nil Pricing replaces the product's modality rows
// wholesale.
type UpdateProductInput struct {
	ID          string          `json:"-"`
	Name        *string         `json:"name"`
	Slug        *string         `json:"slug"`
	CategoryID  *string         `json:"category_id"`
	Description *string         `json:"description"`
	Pricing     *[]PricingInput `json:"pricing"`
}

type CreateVariantInput struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
}
