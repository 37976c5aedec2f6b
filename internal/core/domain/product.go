package domain

import (
	"errors"
	"time"
)

// ProductType distinguishes stocked goods from services.
type ProductType string

const (
	ProductGoods   ProductType = "goods"
	ProductService ProductType = "service"
)

var ErrProductNotFound = errors.New("product not found")

// MaxAmount is the largest price or fixed tax value the store can hold
// (NUMERIC(12,2)).
const MaxAmount = 9_999_999_999.99

// Product is a sellable or purchasable item.
type Product struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Type          ProductType `json:"type"`
	SalesPrice    *float64    `json:"sales_price,omitempty"`
	PurchasePrice *float64    `json:"purchase_price,omitempty"`
	SalesTax      *float64    `json:"sales_tax,omitempty"`
	PurchaseTax   *float64    `json:"purchase_tax,omitempty"`
	HSNCode       *string     `json:"hsn_code,omitempty"`
	Category      *string     `json:"category,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// ProductPatch holds the fields of a partial product update. Nil fields are
// left untouched.
type ProductPatch struct {
	Name          *string
	Type          *ProductType
	SalesPrice    *float64
	PurchasePrice *float64
	SalesTax      *float64
	PurchaseTax   *float64
	HSNCode       *string
	Category      *string
}

// Apply copies the non-nil fields of p onto prod.
func (p ProductPatch) Apply(prod *Product) {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Type != nil {
		prod.Type = *p.Type
	}
	if p.SalesPrice != nil {
		prod.SalesPrice = p.SalesPrice
	}
	if p.PurchasePrice != nil {
		prod.PurchasePrice = p.PurchasePrice
	}
	if p.SalesTax != nil {
		prod.SalesTax = p.SalesTax
	}
	if p.PurchaseTax != nil {
		prod.PurchaseTax = p.PurchaseTax
	}
	if p.HSNCode != nil {
		prod.HSNCode = p.HSNCode
	}
	if p.Category != nil {
		prod.Category = p.Category
	}
}
