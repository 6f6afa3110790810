package dto

type CreateImageInput struct {
	VariantID string `json:"-"`
	URL       string `json:"url"`
	AssetID   string `json:"asset_id"`
	SortOrder int    `json:"sort_order"`
	AltText   string `json:"alt_text"`
}

type UpdateImageInput struct {
	ID        string  `json:"-"`
	SortOrder *int    `json:"sort_order"`
	AltText   *string `json:"alt_text"`
}
