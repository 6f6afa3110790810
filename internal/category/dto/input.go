package dto

type CreateCategoryInput struct {
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	ParentID       *string `json:"parent_id"`
	Description    string  `json:"description"`
	SEOTitle       string  `json:"seo_title"`
	SEODescription string  `json:"seo_description"`
	IsActive       *bool   `json:"is_active"` // Defaults to true when omitted
}

// UpdateCategoryInput carries a partial field set. Nil pointers mean
// "leave the stored value alone".
type UpdateCategoryInput struct {
	ID             string  `json:"-"`
	Name           *string `json:"name"`
	Slug           *string `json:"slug"`
	ParentID       *string `json:"parent_id"`
	Description    *string `json:"description"`
	SEOTitle       *string `json:"seo_title"`
	SEODescription *string `json:"seo_description"`
	IsActive       *bool   `json:"is_active"`
}

type BulkDeleteInput struct {
	IDs []string `json:"ids"`
}
