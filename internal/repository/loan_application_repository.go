package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
	"github.com/huuhoait/los-demo/services/credit-decisioning/pkg/decisionerr"
)

// LoanApplicationRepository implements decision.ApplicationRepo against Postgres.
type LoanApplicationRepository struct {
	db *gorm.DB
}

// NewLoanApplicationRepository builds a LoanApplicationRepository.
func NewLoanApplicationRepository(db *gorm.DB) *LoanApplicationRepository {
	return &LoanApplicationRepository{db: db}
}

// GetByID loads one loan application by id.
func (r *LoanApplicationRepository) GetByID(ctx context.Context, id string) (*domain.LoanApplication, error) {
	var m loanApplicationModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, decisionerr.InputInvalid("application_id", "loan application not found")
		}
		return nil, decisionerr.DependencyFatal("failed to load loan application", err)
	}
	return m.toDomain(), nil
}

// Save upserts a loan application row.
func (r *LoanApplicationRepository) Save(ctx context.Context, app *domain.LoanApplication) error {
	m := toLoanApplicationModel(app)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return decisionerr.DependencyFatal("failed to persist loan application", err)
	}
	return nil
}
