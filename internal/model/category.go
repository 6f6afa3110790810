package model

type Category struct {
	BaseModel
	ParentID       *string `db:"parent_id" json:"parent_id"` // Nullable, top-level categories have no parent
	Name           string  `db:"name" json:"name"`
	Slug           string  `db:"slug" json:"slug"` // Globally unique, URL-safe
	Description    *string `db:"description" json:"description"`
	SEOTitle       *string `db:"seo_title" json:"seo_title"`
	SEODescription *string `db:"seo_description" json:"seo_description"`
	IsActive       bool    `db:"is_active" json:"is_active"`
}
