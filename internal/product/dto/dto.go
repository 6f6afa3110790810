package dto

type ProductFilters struct {
	CategoryID   string
	CategorySlug string
	SearchQuery  string
	SortBy       string
	SortOrder    string
	Page         int
	PageSize     int
}
