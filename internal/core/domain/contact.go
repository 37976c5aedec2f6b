package domain

import (
	"errors"
	"time"
)

// ContactType marks a contact as a customer or a vendor.
type ContactType string

const (
	ContactCustomer ContactType = "customer"
	ContactVendor   ContactType = "vendor"
)

var ErrContactNotFound = errors.New("contact not found")

// Contact is a customer or vendor record.
type Contact struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     *string     `json:"email,omitempty"`
	Phone     *string     `json:"phone,omitempty"`
	Address   *string     `json:"address,omitempty"`
	Type      ContactType `json:"type"`
	CreatedBy string      `json:"created_by"`
	CreatedAt time.Time   `json:"created_at"`
}

// ContactPatch holds the fields of a partial contact update.
type ContactPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Type    *ContactType
}

// Apply copies the non-nil fields of p onto c.
func (p ContactPatch) Apply(c *Contact) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = p.Email
	}
	if p.Phone != nil {
		c.Phone = p.Phone
	}
	if p.Address != nil {
		c.Address = p.Address
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
}
