package domain

import "time"

// AuditAction labels the kind of change an audit record describes.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// AuditRecord is an immutable observation of a mutation to an account,
// inventory item, or chain record. Audit writes are best-effort: a failed
// audit write never blocks the primary mutation.
type AuditRecord struct {
	AuditID    string      `json:"auditID"`
	TenantID   string      `json:"tenantID"`
	Entity     string      `json:"entity"`   // table/aggregate name
	RecordID   string      `json:"recordID"` // identifier within the entity
	ChangeType string      `json:"changeType"`
	Action     AuditAction `json:"action"`
	OldValue   string      `json:"oldValue"` // JSON snapshot
	NewValue   string      `json:"newValue"` // JSON snapshot
	ChangedBy  string      `json:"changedBy"`
	Note       string      `json:"note"`
	ChangedAt  time.Time   `json:"changedAt"`
}
