package decision

import (
	"context"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// ApplicantRepo reads applicant records.
type ApplicantRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Applicant, error)
}

// ApplicationRepo reads and writes loan applications.
type ApplicationRepo interface {
	GetByID(ctx context.Context, id string) (*domain.LoanApplication, error)
	Save(ctx context.Context, app *domain.LoanApplication) error
}

// ScoringResultRepo persists write-once scoring results.
type ScoringResultRepo interface {
	Save(ctx context.Context, result *domain.ScoringResult) error
}

// EqGradeMasterRepo resolves EQ-grade master overrides (e.g. MOU special rates).
type EqGradeMasterRepo interface {
	GetByGrade(ctx context.Context, grade domain.EQGrade) (*domain.EqGradeMasterRow, error)
}
