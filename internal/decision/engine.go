// Package decision implements the Decision Engine (spec §4.5): the single
// entry point that orchestrates the Parameter Store, PD Provider, Scoring
// Primitives and Rate Composer into one immutable ScoringResult.
// Structurally grounded on
// _examples/huuhoait-los-demo/services/decision-engine/application/decision_service.go's
// validate -> assess -> enhance -> persist pipeline shape; content from
// spec.md §4.5 and
// original_source/backend/app/core/scoring_engine.py's score().
package decision

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/bureau"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/paramstore"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/pdprovider"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/ratecomposer"
	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/scoring"
	"github.com/huuhoait/los-demo/services/credit-decisioning/pkg/decisionerr"
)

// Engine is the core's single evaluation entry point.
type Engine struct {
	resolver      *paramstore.Resolver
	bureau        *bureau.Client
	pdProvider    pdprovider.Provider
	applicants    ApplicantRepo
	applications  ApplicationRepo
	results       ScoringResultRepo
	eqMaster      EqGradeMasterRepo
	audit         paramstore.AuditSink
	log           *zap.Logger
}

// NewEngine wires the Decision Engine's collaborators.
func NewEngine(
	resolver *paramstore.Resolver,
	bureauClient *bureau.Client,
	pdProvider pdprovider.Provider,
	applicants ApplicantRepo,
	applications ApplicationRepo,
	results ScoringResultRepo,
	eqMaster EqGradeMasterRepo,
	audit paramstore.AuditSink,
	log *zap.Logger,
) *Engine {
	return &Engine{
		resolver: resolver, bureau: bureauClient, pdProvider: pdProvider,
		applicants: applicants, applications: applications, results: results,
		eqMaster: eqMaster, audit: audit, log: log,
	}
}

var eqRank = map[domain.EQGrade]int{
	domain.EQGradeS: 6, domain.EQGradeA: 5, domain.EQGradeB: 4,
	domain.EQGradeC: 3, domain.EQGradeD: 2, domain.EQGradeE: 1,
}

func strongerEQ(a, b domain.EQGrade) domain.EQGrade {
	if eqRank[a] >= eqRank[b] {
		return a
	}
	return b
}

// Evaluate runs the full §4.5.1 algorithm for one applicant/application
// pair and persists the resulting ScoringResult.
func (e *Engine) Evaluate(ctx context.Context, applicant *domain.Applicant, app *domain.LoanApplication) (*domain.ScoringResult, error) {
	if err := applicant.Validate(); err != nil {
		return nil, err
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}

	// Step 1.
	effectiveAt := time.Now().UTC()
	snapshot := &domain.RegulationSnapshot{ResolvedAt: time.Now().UTC(), EffectiveAt: effectiveAt}

	// Step 2: resolve regulatory parameters into the snapshot.
	if err := e.resolveParameters(ctx, applicant, app, effectiveAt, snapshot); err != nil {
		return nil, err
	}

	// Step 4: bureau fetch with fallback chain.
	cb := e.bureau.Score(ctx, applicant.IdentityToken, "")
	snapshot.CBSource = string(cb.Source)
	if cb.IsFallback {
		snapshot.Degradations = append(snapshot.Degradations, "bureau: all sources unavailable, used conservative default")
	}

	// Step 5: PD.
	features := buildFeatureVector(applicant, app, cb)
	rawPD, err := e.pdProvider.Predict(features)
	if err != nil {
		return nil, decisionerr.DependencyFatal("PD provider failed", err)
	}
	pdFinal := pdprovider.ApplyIRGAdjustment(rawPD, snapshot.IRGAdjustment)

	// Step 6.
	score := scoring.PDToScore(pdFinal)
	grade := domain.Grade(scoring.ScoreToGrade(score))

	// Step 7.
	lgd := lgdFor(app.Product)
	ead := scoring.EAD(scoring.IsRevolvingEADProduct(string(app.Product)), float64(app.RequestedAmount),
		float64(app.DebtService.ExistingCreditBalance), float64(app.DebtService.ExistingCreditLine), scoring.DefaultCCF)
	riskWeight := scoring.RiskWeight(string(app.Product))
	economicCapital := scoring.EconomicCapital(ead, riskWeight)

	// Step 8: DSR / stress-DSR / LTV. See DESIGN.md Open Question 6a for
	// the current_rate source used by the amortization primitives.
	monthlyIncome := float64(applicant.AnnualIncome) / 12
	currentRate := ratecomposer.DefaultBaseRatePP
	newMonthly := scoring.MonthlyPayment(float64(app.RequestedAmount), currentRate, app.RequestedTermMonths)
	dsr := scoring.DSR(monthlyIncome, newMonthly, float64(app.DebtService.ExistingMonthlyPayment))
	stressDSR := scoring.StressDSR(float64(app.RequestedAmount), currentRate, snapshot.StressAddPP,
		app.RequestedTermMonths, monthlyIncome, float64(app.DebtService.ExistingMonthlyPayment))

	var ltvValue *float64
	ltvBreached := false
	if app.Product == domain.ProductMortgage && app.Mortgage != nil {
		if v, ok := scoring.LTV(float64(app.RequestedAmount), float64(app.Mortgage.CollateralValue)); ok {
			ltvValue = &v
			ltvBreached = v > snapshot.LTVLimit
		}
	}
	dsrBreached := dsr > snapshot.DSRLimit

	// Step 9: hard-reject gates, first match wins.
	decision := evaluateGates(cb, score, dsr, snapshot.DSRLimit, app, ltvValue, snapshot.LTVLimit, applicant.AnnualIncome)

	eqBenefit := snapshot.EQBenefit
	approvedAmount := int64(0)
	approvedTerm := 0
	if decision == "" {
		if score < scoreManualCutoff {
			decision = domain.DecisionManualReview
			approvedAmount = app.RequestedAmount
			approvedTerm = app.RequestedTermMonths
		} else {
			decision = domain.DecisionApproved
			amt, aerr := e.computeApprovedAmount(ctx, applicant, app, eqBenefit, snapshot.SegmentBenefit, snapshot.LTVLimit, effectiveAt)
			if aerr != nil {
				return nil, aerr
			}
			approvedAmount = amt
			approvedTerm = app.RequestedTermMonths
		}
	}

	// Step 11: rate breakdown.
	rate := ratecomposer.Compute(ratecomposer.Inputs{
		PD: pdFinal, LGD: lgd, EAD: ead, EconomicCapital: economicCapital,
		EQAdjustmentPP: eqBenefit.RateAdjustPP, SegmentBenefit: snapshot.SegmentBenefit,
		StatutoryCapPP: snapshot.StatutoryCapPP,
	})

	// Step 12: rejection reasons and explanation factors.
	var reasons []string
	if decision == domain.DecisionRejected {
		reasons = buildRejectionReasons(cb, score, dsr, snapshot.DSRLimit, ltvValue, snapshot.LTVLimit, applicant.AnnualIncome)
	}
	positives, negatives := buildExplanationFactors(applicant, app, cb, dsr)

	// Step 13: appeal deadline.
	scoredAt := time.Now().UTC()
	var appealDeadline *time.Time
	if decision == domain.DecisionRejected || decision == domain.DecisionManualReview {
		d := scoredAt.AddDate(0, 0, 30)
		appealDeadline = &d
	}

	result := &domain.ScoringResult{
		ID:                 uuid.NewString(),
		LoanApplicationID:  app.ID,
		ScoredAt:           scoredAt,
		Score:              score,
		Grade:              grade,
		RawProbability:     rawPD,
		PDFinal:            pdFinal,
		LGD:                lgd,
		EAD:                int64(ead),
		RiskWeight:         riskWeight,
		EconomicCapital:    economicCapital,
		Decision:           decision,
		ApprovedAmount:     approvedAmount,
		ApprovedTermMonths: approvedTerm,
		RateBreakdown:      rate,
		DSR:                dsr,
		StressDSR:          stressDSR,
		LTV:                ltvValue,
		DSRLimitBreached:   dsrBreached,
		LTVLimitBreached:   ltvBreached,
		RejectionReasons:   reasons,
		TopPositiveFactors: positives,
		TopNegativeFactors: negatives,
		AppealDeadline:     appealDeadline,
		ModelVersion:       e.pdProvider.ModelVersion(),
		ScorecardKind:      e.pdProvider.ScorecardKind(),
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}

	// Step 14: persist.
	app.RegulationSnapshot = snapshot
	if decision == domain.DecisionApproved {
		_ = app.TransitionTo(domain.StatusApproved)
	} else if decision == domain.DecisionRejected {
		_ = app.TransitionTo(domain.StatusRejected)
	} else {
		_ = app.TransitionTo(domain.StatusManualReview)
	}

	if err := e.results.Save(ctx, result); err != nil {
		return nil, decisionerr.DependencyFatal("failed to persist scoring result", err)
	}
	if err := e.applications.Save(ctx, app); err != nil {
		return nil, decisionerr.DependencyFatal("failed to persist loan application", err)
	}
	e.emitAudit(ctx, result, decision)

	return result, nil
}

func (e *Engine) emitAudit(ctx context.Context, result *domain.ScoringResult, decision domain.Decision) {
	if e.audit == nil {
		return
	}
	_ = e.audit.Record(ctx, domain.AuditRecord{
		ID:         uuid.NewString(),
		EntityKind: "scoring_result",
		EntityID:   result.ID,
		Action:     domain.AuditActionScoreCreated,
		Timestamp:  time.Now().UTC(),
	})
	action := domain.AuditActionApplicationApproved
	if decision == domain.DecisionRejected {
		action = domain.AuditActionApplicationRejected
	}
	if decision == domain.DecisionApproved || decision == domain.DecisionRejected {
		_ = e.audit.Record(ctx, domain.AuditRecord{
			ID:         uuid.NewString(),
			EntityKind: "loan_application",
			EntityID:   result.LoanApplicationID,
			Action:     action,
			Timestamp:  time.Now().UTC(),
		})
	}
}

func buildFeatureVector(applicant *domain.Applicant, app *domain.LoanApplication, cb bureau.CBScore) pdprovider.FeatureVector {
	monthlyIncome := float64(applicant.AnnualIncome) / 12
	newMonthly := scoring.MonthlyPayment(float64(app.RequestedAmount), ratecomposer.DefaultBaseRatePP, app.RequestedTermMonths)
	dsrPercent := scoring.DSR(monthlyIncome, newMonthly, float64(app.DebtService.ExistingMonthlyPayment)) * 100

	fv := pdprovider.FeatureVector{
		CBScore:                      cb.CBScore,
		DelinquencyCount12M:          cb.DelinquencyCount12M,
		WorstDelinquencyStatus:       cb.WorstDelinquencyStatus,
		DSRPercent:                   dsrPercent,
		AnnualIncome:                 applicant.AnnualIncome,
		InquiryCount3M:               cb.InquiryCount3M,
		TelecomNoDelinquency:         cb.TelecomNoDelinquency,
		HealthInsurancePaidMonths12M: applicant.ResolvedHealthInsuranceMonths(),
	}
	if applicant.ApplicantKind == domain.ApplicantSoleProprietor && applicant.SoleProprietor != nil {
		fv.IsSoleProprietor = true
		fv.BusinessDurationMonths = applicant.SoleProprietor.BusinessDurationMonths
		fv.TaxFilings3Y = applicant.SoleProprietor.TaxFilings3Y
	}
	return fv
}
