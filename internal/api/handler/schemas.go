package handler

import (
	"time"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

// errorResponse is the envelope every 4xx/5xx response uses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type createUserRequest struct {
	Name     string `json:"name"     validate:"required,max=120"`
	LoginID  string `json:"login_id" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,oneof=admin invoicing_user"`
}

type loginRequest struct {
	LoginOrEmail string `json:"login_or_email" validate:"required"`
	Password     string `json:"password"       validate:"required"`
}

// userResponse is the public view of an identity; it never carries the hash.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LoginID   string    `json:"login_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		LoginID:   u.LoginID,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Products ---

type createProductRequest struct {
	Name          string   `json:"name"           validate:"required,max=200"`
	Type          string   `json:"type"           validate:"required,oneof=goods service"`
	SalesPrice    *float64 `json:"sales_price"    validate:"omitempty,gte=0,lte=9999999999.99"`
	PurchasePrice *float64 `json:"purchase_price" validate:"omitempty,gte=0,lte=9999999999.99"`
	SalesTax      *float64 `json:"sales_tax"      validate:"omitempty,gte=0,lte=100"`
	PurchaseTax   *float64 `json:"purchase_tax"   validate:"omitempty,gte=0,lte=100"`
	HSNCode       *string  `json:"hsn_code"       validate:"omitempty,max=16"`
	Category      *string  `json:"category"       validate:"omitempty,max=100"`
}

func (r createProductRequest) toDomain() domain.Product {
	return domain.Product{
		Name:          r.Name,
		Type:          domain.ProductType(r.Type),
		SalesPrice:    r.SalesPrice,
		PurchasePrice: r.PurchasePrice,
		SalesTax:      r.SalesTax,
		PurchaseTax:   r.PurchaseTax,
		HSNCode:       r.HSNCode,
		Category:      r.Category,
	}
}

type updateProductRequest struct {
	Name          *string  `json:"name"           validate:"omitempty,min=1,max=200"`
	Type          *string  `json:"type"           validate:"omitempty,oneof=goods service"`
	SalesPrice    *float64 `json:"sales_price"    validate:"omitempty,gte=0,lte=9999999999.99"`
	PurchasePrice *float64 `json:"purchase_price" validate:"omitempty,gte=0,lte=9999999999.99"`
	SalesTax      *float64 `json:"sales_tax"      validate:"omitempty,gte=0,lte=100"`
	PurchaseTax   *float64 `json:"purchase_tax"   validate:"omitempty,gte=0,lte=100"`
	HSNCode       *string  `json:"hsn_code"       validate:"omitempty,max=16"`
	Category      *string  `json:"category"       validate:"omitempty,max=100"`
}

func (r updateProductRequest) toPatch() domain.ProductPatch {
	p := domain.ProductPatch{
		Name:          r.Name,
		SalesPrice:    r.SalesPrice,
		PurchasePrice: r.PurchasePrice,
		SalesTax:      r.SalesTax,
		PurchaseTax:   r.PurchaseTax,
		HSNCode:       r.HSNCode,
		Category:      r.Category,
	}
	if r.Type != nil {
		t := domain.ProductType(*r.Type)
		p.Type = &t
	}
	return p
}

// --- Taxes ---

type createTaxRequest struct {
	Name      string   `json:"name"       validate:"required,max=100"`
	Method    string   `json:"method"     validate:"required,oneof=Percentage Fixed"`
	AppliesTo string   `json:"appliesTo"  validate:"required,oneof=Sales Purchase"`
	Value     *float64 `json:"value"      validate:"required,gte=0,lte=9999999999.99"`
}

func (r createTaxRequest) toDomain() domain.Tax {
	return domain.Tax{
		Name:      r.Name,
		Method:    domain.TaxMethod(r.Method),
		AppliesTo: domain.TaxScope(r.AppliesTo),
		Value:     *r.Value,
	}
}

type updateTaxRequest struct {
	Name      *string  `json:"name"       validate:"omitempty,min=1,max=100"`
	Method    *string  `json:"method"     validate:"omitempty,oneof=Percentage Fixed"`
	AppliesTo *string  `json:"appliesTo"  validate:"omitempty,oneof=Sales Purchase"`
	Value     *float64 `json:"value"      validate:"omitempty,gte=0,lte=9999999999.99"`
}

func (r updateTaxRequest) toPatch() domain.TaxPatch {
	p := domain.TaxPatch{Name: r.Name, Value: r.Value}
	if r.Method != nil {
		m := domain.TaxMethod(*r.Method)
		p.Method = &m
	}
	if r.AppliesTo != nil {
		a := domain.TaxScope(*r.AppliesTo)
		p.AppliesTo = &a
	}
	return p
}

// --- Contacts ---

type createContactRequest struct {
	Name      string  `json:"name"       validate:"required,max=200"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Phone     *string `json:"phone"      validate:"omitempty,max=32"`
	Address   *string `json:"address"    validate:"omitempty,max=500"`
	Type      string  `json:"type"       validate:"required,oneof=customer vendor"`
	CreatedBy string  `json:"created_by" validate:"omitempty,uuid"`
}

type updateContactRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Phone   *string `json:"phone"   validate:"omitempty,max=32"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Type    *string `json:"type"    validate:"omitempty,oneof=customer vendor"`
}

func (r updateContactRequest) toPatch() domain.ContactPatch {
	p := domain.ContactPatch{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address}
	if r.Type != nil {
		t := domain.ContactType(*r.Type)
		p.Type = &t
	}
	return p
}

// --- Chart of accounts ---

type accountRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Type string `json:"type" validate:"required"`
}

// --- Payments ---

type createOrderRequest struct {
	CartTotal int64 `json:"cart_total" validate:"required,gt=0"`
}

type createOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
