package domain

import (
	"errors"
	"time"
)

// TaxMethod controls how a tax value is interpreted.
type TaxMethod string

const (
	TaxPercentage TaxMethod = "Percentage"
	TaxFixed      TaxMethod = "Fixed"
)

// TaxScope selects the side of a transaction a tax applies to.
type TaxScope string

const (
	TaxSales    TaxScope = "Sales"
	TaxPurchase TaxScope = "Purchase"
)

var ErrTaxNotFound = errors.New("tax not found")

// Tax is a configured sales or purchase tax.
type Tax struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Method    TaxMethod `json:"method"`
	AppliesTo TaxScope  `json:"appliesTo"`
	Value     float64   `json:"value"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
}

// TaxPatch holds the fields of a partial tax update.
type TaxPatch struct {
	Name      *string
	Method    *TaxMethod
	AppliesTo *TaxScope
	Value     *float64
}

// Apply copies the non-nil fields of p onto t.
func (p TaxPatch) Apply(t *Tax) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Method != nil {
		t.Method = *p.Method
	}
	if p.AppliesTo != nil {
		t.AppliesTo = *p.AppliesTo
	}
	if p.Value != nil {
		t.Value = *p.Value
	}
}

// Validate checks the cross-field rules of a tax.
func (t *Tax) Validate() error {
	if t.Name == "" {
		return NewValidationError("name", "is required")
	}
	if t.Value < 0 {
		return NewValidationError("value", "must be greater than or equal to 0")
	}
	if t.Value > MaxAmount {
		return NewValidationError("value", "must be at most 9999999999.99")
	}
	if t.Method == TaxPercentage && t.Value > 100 {
		return NewValidationError("value", "must not exceed 100 for percentage taxes")
	}
	return nil
}
