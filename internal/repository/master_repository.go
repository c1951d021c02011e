package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// EqGradeMasterRepository implements decision.EqGradeMasterRepo against
// Postgres, backing the eq_grade_master reference table (MOU special rate
// overrides, spec §4.2.4).
type EqGradeMasterRepository struct {
	db *gorm.DB
}

// NewEqGradeMasterRepository builds an EqGradeMasterRepository.
func NewEqGradeMasterRepository(db *gorm.DB) *EqGradeMasterRepository {
	return &EqGradeMasterRepository{db: db}
}

// GetByGrade loads one EQ-grade master row, or nil if the grade has no
// override row seeded.
func (r *EqGradeMasterRepository) GetByGrade(ctx context.Context, grade domain.EQGrade) (*domain.EqGradeMasterRow, error) {
	var m eqGradeMasterModel
	err := r.db.WithContext(ctx).First(&m, "grade = ?", string(grade)).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

// IrgMasterRepository reads industry-risk-grade rows keyed by KSIC code.
// The Decision Engine does not consult it; the IRG adjustment is taken
// from the applicant-level IndustryRiskGrade field.
type IrgMasterRepository struct {
	db *gorm.DB
}

// NewIrgMasterRepository builds an IrgMasterRepository.
func NewIrgMasterRepository(db *gorm.DB) *IrgMasterRepository {
	return &IrgMasterRepository{db: db}
}

// GetByKSICCode loads one industry-risk-grade master row.
func (r *IrgMasterRepository) GetByKSICCode(ctx context.Context, ksicCode string) (*domain.IrgMasterRow, error) {
	var m irgMasterModel
	err := r.db.WithContext(ctx).First(&m, "ksic_code = ?", ksicCode).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}
