package domain

import (
	"time"

	"github.com/huuhoait/los-demo/services/credit-decisioning/pkg/decisionerr"
)

// Grade is the regulatory credit grade bucket.
type Grade string

const (
	GradeAAA Grade = "AAA"
	GradeAA  Grade = "AA"
	GradeA   Grade = "A"
	GradeBBB Grade = "BBB"
	GradeBB  Grade = "BB"
	GradeB   Grade = "B"
	GradeCCC Grade = "CCC"
	GradeCC  Grade = "CC"
	GradeC   Grade = "C"
	GradeD   Grade = "D"
)

// Decision is the evaluation outcome.
type Decision string

const (
	DecisionApproved     Decision = "approved"
	DecisionRejected     Decision = "rejected"
	DecisionManualReview Decision = "manual_review"
)

// ImpactLevel qualifies an explanation factor's weight.
type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "low"
	ImpactMedium ImpactLevel = "medium"
	ImpactHigh   ImpactLevel = "high"
)

// ExplanationFactor is one structured positive or negative driver of the decision.
type ExplanationFactor struct {
	Factor string
	Detail string
	Impact ImpactLevel
}

// RateBreakdown is the decomposition of the final offered annual rate,
// all components in percentage points (spec §4.4).
type RateBreakdown struct {
	BaseRate             float64
	CreditSpread         float64
	FundingCost          float64
	OperatingCost        float64
	EQRateAdjustment     float64
	SegmentRateDiscount  float64
	RelationshipDiscount float64
	FinalRate            float64
	RateCapped           bool
	RAROC                float64
	HurdleRateSatisfied  bool
}

// ScoringResult is the immutable outcome of one evaluation.
type ScoringResult struct {
	ID                  string
	LoanApplicationID   string
	ScoredAt            time.Time

	Score              int
	Grade              Grade
	RawProbability     float64
	PDFinal            float64
	LGD                float64
	EAD                int64
	RiskWeight         float64
	EconomicCapital    float64

	Decision            Decision
	ApprovedAmount      int64
	ApprovedTermMonths  int

	RateBreakdown RateBreakdown

	DSR              float64
	StressDSR        float64
	LTV              *float64
	DSRLimitBreached bool
	LTVLimitBreached bool

	RejectionReasons   []string
	TopPositiveFactors []ExplanationFactor
	TopNegativeFactors []ExplanationFactor

	AppealDeadline *time.Time

	ModelVersion  string
	ScorecardKind string
}

// Validate enforces the ScoringResult invariants of spec §3.
func (r *ScoringResult) Validate() error {
	if r.Decision == DecisionRejected {
		if r.AppealDeadline == nil {
			return decisionerr.Internal("appeal_deadline required when decision=rejected", nil)
		}
		if len(r.RejectionReasons) < 1 {
			return decisionerr.Internal("rejection_reasons must be non-empty when decision=rejected", nil)
		}
	}
	if r.Decision == DecisionApproved {
		if r.ApprovedAmount <= 0 {
			return decisionerr.Internal("approved_amount must be positive when decision=approved", nil)
		}
		if len(r.RejectionReasons) != 0 {
			return decisionerr.Internal("rejection_reasons must be empty when decision=approved", nil)
		}
	}
	return nil
}
