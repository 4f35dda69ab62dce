package dto

type CreateCategoryInput struct {
	ParentID    *string `json:"parent_id"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SortOrder   int     `json:"sort_order"`
}

type UpdateCategoryInput struct {
	ID          string  `json:"id"`
	ParentID    *string `json:"parent_id"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	SortOrder   int     `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

type UpsertCategoryTranslationInput struct {
	CategoryID  string `json:"category_id"`
	Locale      string `json:"locale"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type CategoryFilters struct {
	// ParentID filtering: nil means no filter, empty string means roots only.
	ParentID *string `json:"parent_id"`
	IsActive *bool   `json:"is_active"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}
