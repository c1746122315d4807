package models

import "time"

// AuditEntry is the persistence shape of an audit log row.
type AuditEntry struct {
	EntryID   int64
	User      string
	TableName string
	RecordID  string
	Action    string
	OldValue  string
	NewValue  string
	Timestamp time.Time
}
