package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// AuditRepository implements paramstore.AuditSink (and the Decision
// Engine's audit emission) against the append-only audit_records table.
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository builds an AuditRepository.
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record appends one audit entry. Rows are never updated or deleted;
// retention is 5 years minimum (spec §3).
func (r *AuditRepository) Record(ctx context.Context, rec domain.AuditRecord) error {
	m := toAuditRecordModel(rec)
	return r.db.WithContext(ctx).Create(&m).Error
}
