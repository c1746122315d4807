package dto

import (
	"time"

	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
)

// CreateContactRequest defines the payload for creating a customer or supplier.
type CreateContactRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=CUSTOMER SUPPLIER"`
	Name        string `json:"name" binding:"required"`
	ContactInfo string `json:"contactInfo"`
}

// ContactResponse defines the data returned for a contact.
type ContactResponse struct {
	ContactID   int64  `json:"contactID"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	ContactInfo string `json:"contactInfo,omitempty"`
	DisplayRef  string `json:"displayRef"`
}

// AuditEntryResponse defines the data returned for an audit log entry.
type AuditEntryResponse struct {
	EntryID   int64     `json:"entryID"`
	User      string    `json:"user"`
	TableName string    `json:"tableName"`
	RecordID  string    `json:"recordID"`
	Action    string    `json:"action"`
	OldValue  string    `json:"oldValue,omitempty"`
	NewValue  string    `json:"newValue,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ToContactResponse converts a domain.Contact to ContactResponse DTO.
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:   c.ContactID,
		Kind:        string(c.Kind),
		Name:        c.Name,
		ContactInfo: c.ContactInfo,
		DisplayRef:  c.DisplayRef(),
	}
}

// ToContactResponses converts a slice of domain.Contact to []ContactResponse.
func ToContactResponses(contacts []domain.Contact) []ContactResponse {
	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses
}

// ToAuditEntryResponse converts a domain.AuditEntry to AuditEntryResponse DTO.
func ToAuditEntryResponse(e *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		EntryID:   e.EntryID,
		User:      e.User,
		TableName: e.TableName,
		RecordID:  e.RecordID,
		Action:    e.Action,
		OldValue:  e.OldValue,
		NewValue:  e.NewValue,
		Timestamp: e.Timestamp,
	}
}
