package models

// Contact is the persistence shape of a customer or supplier row.
type Contact struct {
	ContactID   int64
	Kind        string
	Name        string
	ContactInfo string
	AuditFields
}
