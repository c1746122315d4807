package domain

import "time"

// AuditEntry records a mutation made through the application. Entries are
// appended after the operation succeeds; a failed append never rolls the
// operation back.
type AuditEntry struct {
	EntryID   int64     `json:"entryID"`
	User      string    `json:"user"`
	TableName string    `json:"tableName"`
	RecordID  string    `json:"recordID"`
	Action    string    `json:"action"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	Timestamp time.Time `json:"timestamp"`
}
