package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ContactKind distinguishes customers from suppliers. A contact holds exactly
// one role; the roles are mutually exclusive per invoice and payment.
type ContactKind string

const (
	Customer ContactKind = "CUSTOMER"
	Supplier ContactKind = "SUPPLIER"
)

// Contact is a customer or supplier.
type Contact struct {
	ContactID   int64       `json:"contactID"`
	Kind        ContactKind `json:"kind"`
	Name        string      `json:"name"`
	ContactInfo string      `json:"contactInfo"`
	AuditFields
}

// DisplayRef renders the "{id} - {name}" reference used to identify a contact
// in payment entry.
func (c Contact) DisplayRef() string {
	return FormatContactRef(c.ContactID, c.Name)
}

// FormatContactRef renders the canonical "{id} - {name}" contact reference.
func FormatContactRef(id int64, name string) string {
	return fmt.Sprintf("%d - %s", id, name)
}

// BalanceLabel is the sign convention attached to a contact balance.
// For a customer, a positive balance means the customer owes the company.
// For a supplier, a positive balance means the company owes the supplier.
type BalanceLabel string

const (
	OwesUs BalanceLabel = "Owes Us"
	WeOwe  BalanceLabel = "We Owe"
)

// ContactBalance is a derived outstanding balance, never stored.
type ContactBalance struct {
	ContactID int64           `json:"contactID"`
	Kind      ContactKind     `json:"kind"`
	Balance   decimal.Decimal `json:"balance"`
	Label     BalanceLabel    `json:"label"`
}
