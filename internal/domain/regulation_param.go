package domain

import "time"

// ParamCategory groups RegulationParam rows for admin listing.
type ParamCategory string

const (
	CategoryDSR       ParamCategory = "dsr"
	CategoryLTV       ParamCategory = "ltv"
	CategoryRate      ParamCategory = "rate"
	CategoryStressDSR ParamCategory = "stress_dsr"
	CategoryIncomeMul ParamCategory = "credit_loan_income_multiplier"
	CategoryEQGrade   ParamCategory = "eq_grade"
	CategoryIRG       ParamCategory = "irg"
	CategorySegment   ParamCategory = "segment"
	CategoryCCF       ParamCategory = "ccf"
)

// ParamValueKind tags the active field of a ParamValue, replacing the
// source's dynamic JSON-ish values with an explicit variant (spec §9).
type ParamValueKind string

const (
	ParamKindRate           ParamValueKind = "rate"
	ParamKindRatio          ParamValueKind = "ratio"
	ParamKindMultiplier     ParamValueKind = "multiplier"
	ParamKindSegmentBenefit ParamValueKind = "segment_benefit"
	ParamKindCCF            ParamValueKind = "ccf"
	ParamKindRaw            ParamValueKind = "raw"
)

// SegmentBenefit captures a segment's preferential terms (spec §4.2.4).
type SegmentBenefit struct {
	MinEQGrade       EQGrade // "" means no EQ floor is imposed
	LimitMultiplier  float64
	RateDiscountPP   float64 // non-positive
	MinAge           int     // 0 means unconstrained (YTH segment only)
	MaxAge           int
	MOUSpecialRatePP *float64 // overrides RateDiscountPP when set (eq_grade_master override)
}

// EQBenefit captures an employer-credit-quality grade's limit/rate effect
// (spec §4.2.4).
type EQBenefit struct {
	LimitMultiplier float64
	RateAdjustPP    float64
}

// ParamValue is the tagged-variant payload of one RegulationParam row.
type ParamValue struct {
	Kind ParamValueKind

	RatePP float64 // Kind == ParamKindRate

	RatioPercent           float64 // Kind == ParamKindRatio
	MultiOwnerDeductionPP  float64 // applied when condition says owned_property_count >= 2

	MultiplierTimes      float64 // Kind == ParamKindMultiplier
	MultiplierRateAdjust float64

	Segment *SegmentBenefit // Kind == ParamKindSegmentBenefit

	CCFRatio float64 // Kind == ParamKindCCF

	Raw map[string]float64 // Kind == ParamKindRaw
}

// ParamCondition is the match-map a caller supplies for conditional
// resolution (e.g. {"region": "metropolitan", "rate_type": "variable"}).
type ParamCondition map[string]string

// Subset reports whether every key in cond also appears in caller with an
// equal value (spec §4.2.1 step 2); an empty cond is always a subset.
func (cond ParamCondition) Subset(caller ParamCondition) bool {
	for k, v := range cond {
		if caller[k] != v {
			return false
		}
	}
	return true
}

// RegulationParam is one versioned, time-effective regulatory parameter row.
type RegulationParam struct {
	ID            string
	ParamKey      string
	Category      ParamCategory
	PhaseLabel    string
	Value         ParamValue
	Condition     ParamCondition
	EffectiveFrom time.Time
	EffectiveTo   *time.Time // nil = open-ended
	IsActive      bool
	LegalBasis    string
	Description   string
	CreatedBy     string
	ApprovedBy    string
	ApprovedAt    time.Time
	ChangeReason  string
}

// CoversInstant reports whether the row's effective window covers instant t,
// inclusive of both bounds (spec §6).
func (p *RegulationParam) CoversInstant(t time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.EffectiveFrom.After(t) {
		return false
	}
	if p.EffectiveTo != nil && p.EffectiveTo.Before(t) {
		return false
	}
	return true
}

// EqGradeMasterRow is one row of the EQ-grade reference master.
type EqGradeMasterRow struct {
	Grade            EQGrade
	LimitMultiplier  float64
	RateAdjustPP     float64
	MOUCode          string
	MOUSpecialRatePP *float64
}

// IrgMasterRow is one row of the industry-risk-grade reference master,
// keyed by KSIC (Korean Standard Industry Classification) code.
type IrgMasterRow struct {
	KSICCode     string
	Grade        IndustryRiskGrade
	PDAdjustment float64
}
