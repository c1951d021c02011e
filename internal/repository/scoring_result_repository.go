package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// ScoringResultRepository implements decision.ScoringResultRepo with raw
// database/sql against the write-once scoring_results table: ScoringResult
// is never updated once persisted, so a hand-written insert with JSONB
// payload columns is a better fit than a gorm round-trip, grounded on
// _examples/huuhoait-los-demo/services/decision-engine/infrastructure/decision_repository.go's
// SaveDecision.
type ScoringResultRepository struct {
	db *sql.DB
}

// NewScoringResultRepository builds a ScoringResultRepository.
func NewScoringResultRepository(db *sql.DB) *ScoringResultRepository {
	return &ScoringResultRepository{db: db}
}

// Save inserts one immutable ScoringResult row.
func (r *ScoringResultRepository) Save(ctx context.Context, result *domain.ScoringResult) error {
	rateBreakdownJSON, err := json.Marshal(result.RateBreakdown)
	if err != nil {
		return fmt.Errorf("marshal rate_breakdown: %w", err)
	}
	reasonsJSON, err := json.Marshal(result.RejectionReasons)
	if err != nil {
		return fmt.Errorf("marshal rejection_reasons: %w", err)
	}
	positivesJSON, err := json.Marshal(result.TopPositiveFactors)
	if err != nil {
		return fmt.Errorf("marshal top_positive_factors: %w", err)
	}
	negativesJSON, err := json.Marshal(result.TopNegativeFactors)
	if err != nil {
		return fmt.Errorf("marshal top_negative_factors: %w", err)
	}

	const query = `
		INSERT INTO scoring_results (
			id, loan_application_id, scored_at, score, grade, raw_probability,
			pd_final, lgd, ead, risk_weight, economic_capital, decision,
			approved_amount, approved_term_months, rate_breakdown,
			dsr, stress_dsr, ltv, dsr_limit_breached, ltv_limit_breached,
			rejection_reasons, top_positive_factors, top_negative_factors,
			appeal_deadline, model_version, scorecard_kind
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)`

	_, err = r.db.ExecContext(ctx, query,
		result.ID, result.LoanApplicationID, result.ScoredAt, result.Score, string(result.Grade),
		result.RawProbability, result.PDFinal, result.LGD, result.EAD, result.RiskWeight,
		result.EconomicCapital, string(result.Decision), result.ApprovedAmount, result.ApprovedTermMonths,
		rateBreakdownJSON, result.DSR, result.StressDSR, result.LTV, result.DSRLimitBreached,
		result.LTVLimitBreached, reasonsJSON, positivesJSON, negativesJSON, result.AppealDeadline,
		result.ModelVersion, result.ScorecardKind,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scoring result: %w", err)
	}
	return nil
}

// InitializeSchema creates the scoring_results table and its supporting
// index if they do not already exist, mirroring
// decision_repository.go's InitializeDatabase pattern.
func (r *ScoringResultRepository) InitializeSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS scoring_results (
			id                    UUID PRIMARY KEY,
			loan_application_id   UUID NOT NULL,
			scored_at             TIMESTAMPTZ NOT NULL,
			score                 INTEGER NOT NULL,
			grade                 VARCHAR(3) NOT NULL,
			raw_probability       DOUBLE PRECISION NOT NULL,
			pd_final              DOUBLE PRECISION NOT NULL,
			lgd                   DOUBLE PRECISION NOT NULL,
			ead                   BIGINT NOT NULL,
			risk_weight           DOUBLE PRECISION NOT NULL,
			economic_capital      DOUBLE PRECISION NOT NULL,
			decision              VARCHAR(20) NOT NULL,
			approved_amount       BIGINT NOT NULL,
			approved_term_months  INTEGER NOT NULL,
			rate_breakdown        JSONB NOT NULL,
			dsr                   DOUBLE PRECISION NOT NULL,
			stress_dsr            DOUBLE PRECISION NOT NULL,
			ltv                   DOUBLE PRECISION,
			dsr_limit_breached    BOOLEAN NOT NULL,
			ltv_limit_breached    BOOLEAN NOT NULL,
			rejection_reasons     JSONB NOT NULL,
			top_positive_factors  JSONB NOT NULL,
			top_negative_factors  JSONB NOT NULL,
			appeal_deadline       TIMESTAMPTZ,
			model_version         VARCHAR(100) NOT NULL,
			scorecard_kind        VARCHAR(50) NOT NULL
		)`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create scoring_results table: %w", err)
	}

	const indexDDL = `CREATE INDEX IF NOT EXISTS idx_scoring_results_application ON scoring_results (loan_application_id, scored_at DESC)`
	if _, err := r.db.ExecContext(ctx, indexDDL); err != nil {
		return fmt.Errorf("failed to create scoring_results index: %w", err)
	}
	return nil
}
