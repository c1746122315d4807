package mapping

import (
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	"github.com/zhiyar-dev/finman_backend/internal/models"
)

// ToModelContact converts a domain Contact to its persistence shape.
func ToModelContact(d domain.Contact) models.Contact {
	return models.Contact{
		ContactID:   d.ContactID,
		Kind:        string(d.Kind),
		Name:        d.Name,
		ContactInfo: d.ContactInfo,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContact converts a model Contact back to the domain shape.
func ToDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID:   m.ContactID,
		Kind:        domain.ContactKind(m.Kind),
		Name:        m.Name,
		ContactInfo: m.ContactInfo,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainContactSlice converts a slice of model contacts.
func ToDomainContactSlice(ms []models.Contact) []domain.Contact {
	ds := make([]domain.Contact, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainContact(m)
	}
	return ds
}

// ToModelAuditEntry converts a domain AuditEntry to its persistence shape.
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		EntryID:   d.EntryID,
		User:      d.User,
		TableName: d.TableName,
		RecordID:  d.RecordID,
		Action:    d.Action,
		OldValue:  d.OldValue,
		NewValue:  d.NewValue,
		Timestamp: d.Timestamp,
	}
}

// ToDomainAuditEntry converts a model AuditEntry back to the domain shape.
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		EntryID:   m.EntryID,
		User:      m.User,
		TableName: m.TableName,
		RecordID:  m.RecordID,
		Action:    m.Action,
		OldValue:  m.OldValue,
		NewValue:  m.NewValue,
		Timestamp: m.Timestamp,
	}
}
