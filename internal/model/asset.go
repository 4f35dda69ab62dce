package model

import "time"

// File is a downloadable asset attached to a product or a variation
// (one of the two FKs is set, never both).
type File struct {
	ID           string    `db:"id" json:"id"`
	ProductID    *string   `db:"product_id" json:"product_id"`
	VariationID  *string   `db:"variation_id" json:"variation_id"`
	StorageKey   string    `db:"storage_key" json:"storage_key"`
	OriginalName string    `db:"original_name" json:"original_name"`
	MimeType     string    `db:"mime_type" json:"mime_type"`
	SizeBytes    int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Image struct {
	ID          string    `db:"id" json:"id"`
	ProductID   *string   `db:"product_id" json:"product_id"`
	VariationID *string   `db:"variation_id" json:"variation_id"`
	URL         string    `db:"url" json:"url"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	IsMain      bool      `db:"is_main" json:"is_main"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
