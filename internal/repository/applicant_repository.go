package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
	"github.com/huuhoait/los-demo/services/credit-decisioning/pkg/decisionerr"
)

// ApplicantRepository implements decision.ApplicantRepo against Postgres.
type ApplicantRepository struct {
	db *gorm.DB
}

// NewApplicantRepository builds an ApplicantRepository.
func NewApplicantRepository(db *gorm.DB) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

// GetByID loads one applicant by id.
func (r *ApplicantRepository) GetByID(ctx context.Context, id string) (*domain.Applicant, error) {
	var m applicantModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, decisionerr.InputInvalid("applicant_id", "applicant not found")
		}
		return nil, decisionerr.DependencyFatal("failed to load applicant", err)
	}
	return m.toDomain(), nil
}

// Save upserts an applicant row.
func (r *ApplicantRepository) Save(ctx context.Context, a *domain.Applicant) error {
	m := toApplicantModel(a)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return decisionerr.DependencyFatal("failed to persist applicant", err)
	}
	return nil
}
