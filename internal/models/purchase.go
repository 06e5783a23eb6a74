package models

import (
	"time"
)

// Purchase is a single gold purchase record.
type Purchase struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Weight        float64   `json:"weight" gorm:"not null"`         // grams
	PurchasePrice float64   `json:"purchase_price" gorm:"not null"` // price per gram at purchase time
	TotalPaid     float64   `json:"total_paid" gorm:"not null"`
	PurchaseDate  time.Time `json:"purchase_date" gorm:"not null;index"`
	Notes         string    `json:"notes" gorm:"size:500"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreatePurchaseRequest uses pointers so missing fields can be reported by name.
type CreatePurchaseRequest struct {
	Weight        *float64 `json:"weight"`
	PurchasePrice *float64 `json:"purchase_price"`
	TotalPaid     *float64 `json:"total_paid"`
	PurchaseDate  *string  `json:"purchase_date"`
	Notes         string   `json:"notes"`
}

// MissingField returns the name of the first required field not present,
// or "" when the request is complete. Notes is optional.
func (r *CreatePurchaseRequest) MissingField() string {
	switch {
	case r.Weight == nil:
		return "weight"
	case r.PurchasePrice == nil:
		return "purchase_price"
	case r.TotalPaid == nil:
		return "total_paid"
	case r.PurchaseDate == nil:
		return "purchase_date"
	}
	return ""
}

// UpdatePurchaseRequest updates only the fields that are present.
type UpdatePurchaseRequest struct {
	Weight        *float64 `json:"weight"`
	PurchasePrice *float64 `json:"purchase_price"`
	TotalPaid     *float64 `json:"total_paid"`
	PurchaseDate  *string  `json:"purchase_date"`
	Notes         *string  `json:"notes"`
}
