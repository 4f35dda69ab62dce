package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase records. These are written by the checkout flow, which lives
// outside this service; the rows are modelled here because download
// permissions reference catalog files.

type Order struct {
	BaseModel
	CustomerEmail string          `db:"customer_email" json:"customer_email"`
	Status        string          `db:"status" json:"status"`
	Total         decimal.Decimal `db:"total" json:"total"`
}

type OrderItem struct {
	ID          string          `db:"id" json:"id"`
	OrderID     string          `db:"order_id" json:"order_id"`
	VariationID string          `db:"variation_id" json:"variation_id"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
}

// DownloadPermission is the grant that lets a buyer re-download a file.
type DownloadPermission struct {
	ID        string     `db:"id" json:"id"`
	OrderID   string     `db:"order_id" json:"order_id"`
	FileID    string     `db:"file_id" json:"file_id"`
	ExpiresAt *time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
