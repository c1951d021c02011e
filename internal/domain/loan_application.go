package domain

import (
	"time"

	"github.com/huuhoait/los-demo/services/credit-decisioning/pkg/decisionerr"
)

// Product is the loan product family.
type Product string

const (
	ProductCredit     Product = "credit"
	ProductMortgage   Product = "mortgage"
	ProductMicro      Product = "micro"
	ProductCreditSOHO Product = "credit_soho"
)

// Step is the linear origination state machine position (spec §4.5.5).
type Step string

const (
	StepIntake      Step = "intake"
	StepUnderReview Step = "under_review"
	StepDecisioned  Step = "decisioned"
)

// Status is the application's lifecycle status.
type Status string

const (
	StatusPending       Status = "pending"
	StatusUnderReview   Status = "under_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
	StatusManualReview  Status = "manual_review"
	StatusSuspended     Status = "suspended"
)

// forwardTransitions enumerates the only permitted status transitions;
// suspended is reachable from any non-terminal status via an external
// early-warning event, and CanTransition decides that case itself before
// consulting this map.
var forwardTransitions = map[Status][]Status{
	StatusPending:     {StatusUnderReview, StatusSuspended},
	StatusUnderReview: {StatusApproved, StatusRejected, StatusManualReview, StatusSuspended},
}

// CanTransition reports whether moving from 'from' to 'to' is a legal
// forward transition, or an early-warning suspension from any
// non-terminal state.
func CanTransition(from, to Status) bool {
	if to == StatusSuspended {
		switch from {
		case StatusApproved, StatusRejected, StatusSuspended:
			return false
		default:
			return true
		}
	}
	for _, allowed := range forwardTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// StressDSRRegion distinguishes metropolitan from non-metropolitan pricing.
type StressDSRRegion string

const (
	RegionMetropolitan    StressDSRRegion = "metropolitan"
	RegionNonMetropolitan StressDSRRegion = "non_metropolitan"
)

// RateType is the loan's interest-rate reset structure.
type RateType string

const (
	RateVariable   RateType = "variable"
	RateMixedShort RateType = "mixed_short"
	RateMixedLong  RateType = "mixed_long"
	RateFixed      RateType = "fixed"
)

// MortgageDetail holds fields required only for Product == ProductMortgage.
type MortgageDetail struct {
	CollateralValue    int64
	IsRegulatedArea    bool
	IsSpeculationArea  bool
	OwnedPropertyCount int
}

// DebtServiceInputs are the borrower's existing obligations at application time.
type DebtServiceInputs struct {
	ExistingMonthlyPayment int64
	ExistingCreditLine     int64
	ExistingCreditBalance  int64
}

// RegulationSnapshot records every parameter resolved during one evaluation,
// making the decision reproducible given the same snapshot (spec §4.5.1 step 2).
type RegulationSnapshot struct {
	ResolvedAt       time.Time
	EffectiveAt      time.Time
	DSRLimit         float64
	LTVLimit         float64
	StressAddPP      float64
	StatutoryCapPP   float64
	IRGAdjustment    float64
	SegmentBenefit   *SegmentBenefit
	EQBenefit        EQBenefit
	CBSource         string // "nice" | "kcb" | "cached" | "fallback"
	Degradations     []string
}

// LoanApplication is one origination session for a product.
type LoanApplication struct {
	ID                   string
	ApplicantID          string
	Product              Product
	RequestedAmount      int64
	RequestedTermMonths  int
	Step                 Step
	Status               Status
	Mortgage             *MortgageDetail
	DebtService          DebtServiceInputs
	StressDSRRegion      StressDSRRegion
	RateType             RateType
	RegulationSnapshot   *RegulationSnapshot
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Channel              string
}

// Validate enforces the loan-application-level invariants of spec §3.
func (l *LoanApplication) Validate() error {
	if l.Step == StepUnderReview || l.Step == StepDecisioned {
		if l.RequestedAmount <= 0 {
			return decisionerr.InputInvalid("requested_amount", "requested amount must be positive at review")
		}
	}
	if l.Product == ProductMortgage {
		if l.Mortgage == nil || l.Mortgage.CollateralValue <= 0 {
			return decisionerr.InputInvalid("collateral_value", "mortgage product requires positive collateral value")
		}
	}
	return nil
}

// TransitionTo moves the application to a new status, enforcing the
// forward-only state machine (spec §4.5.5).
func (l *LoanApplication) TransitionTo(to Status) error {
	if !CanTransition(l.Status, to) {
		return decisionerr.InputInvalid("status", "illegal transition from "+string(l.Status)+" to "+string(to))
	}
	l.Status = to
	l.UpdatedAt = time.Now().UTC()
	return nil
}
