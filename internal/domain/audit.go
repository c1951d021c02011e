package domain

import "time"

// AuditAction enumerates the append-only audit events the core emits.
type AuditAction string

const (
	AuditActionScoreCreated        AuditAction = "score_created"
	AuditActionApplicationApproved AuditAction = "application_approved"
	AuditActionApplicationRejected AuditAction = "application_rejected"
	AuditActionParamCreated        AuditAction = "regulation_param_created"
	AuditActionParamDeactivated    AuditAction = "regulation_param_deactivated"
)

// FieldChange is one before/after diff entry inside an AuditRecord.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

// AuditRecord is an append-only audit trail entry. Retention: 5 years minimum.
type AuditRecord struct {
	ID            string
	EntityKind    string
	EntityID      string
	Action        AuditAction
	Actor         string
	Timestamp     time.Time
	Changes       []FieldChange
	RegulationRef string // affected RegulationParam.param_key, when applicable
}
