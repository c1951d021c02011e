// Package ratecomposer implements the Rate Composer (spec §4.4): builds
// the offered-rate breakdown and the RAROC hurdle check, grounded on
// original_source/backend/app/core/scoring_engine.py's
// _compute_rate_breakdown.
package ratecomposer

import (
	"github.com/shopspring/decimal"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// DefaultBaseRatePP is the Bank of Korea base-rate default used when no
// market-rate collaborator supplies a current value (원 source: 기준금리).
const DefaultBaseRatePP = 3.5

const (
	fundingCostPP  = 1.2
	operatingCostPP = 0.8
	hurdleRAROC    = 0.15
)

// Inputs bundles everything the rate composer needs for one evaluation.
type Inputs struct {
	BaseRatePP      float64 // Bank of Korea base rate; DefaultBaseRatePP if unknown
	PD              float64
	LGD             float64
	EAD             float64
	EconomicCapital float64
	EQAdjustmentPP  float64 // from eq_grade.benefit.{grade} (negative = discount)
	SegmentBenefit  *domain.SegmentBenefit
	RelationshipDiscountPP float64
	StatutoryCapPP  float64 // rate.max_interest resolved from the parameter store
}

// round4 matches spec §6's "four decimal places in storage" convention.
func round4(d decimal.Decimal) float64 {
	f, _ := d.Round(4).Float64()
	return f
}

// Compute builds the RateBreakdown and RAROC check of spec §4.4.
func Compute(in Inputs) domain.RateBreakdown {
	baseRate := in.BaseRatePP
	if baseRate == 0 {
		baseRate = DefaultBaseRatePP
	}

	creditSpread := round4(decimal.NewFromFloat(in.PD).
		Mul(decimal.NewFromFloat(in.LGD)).
		Mul(decimal.NewFromFloat(100)).
		Mul(decimal.NewFromFloat(2.5)))

	segmentDiscount := 0.0
	if in.SegmentBenefit != nil {
		segmentDiscount = in.SegmentBenefit.RateDiscountPP
		if in.SegmentBenefit.MOUSpecialRatePP != nil {
			segmentDiscount = *in.SegmentBenefit.MOUSpecialRatePP
		}
	}

	preClamp := baseRate + creditSpread + fundingCostPP + operatingCostPP +
		in.EQAdjustmentPP + segmentDiscount + in.RelationshipDiscountPP

	floor := baseRate + 0.5
	cap := in.StatutoryCapPP

	finalRate := preClamp
	capped := false
	if finalRate < floor {
		finalRate = floor
	}
	if cap > 0 && finalRate > cap {
		finalRate = cap
		capped = preClamp > cap
	}

	raroc := 0.0
	if in.EconomicCapital != 0 {
		expectedLoss := in.PD * in.LGD * in.EAD
		netInterest := finalRate / 100 * in.EAD
		raroc = (netInterest - expectedLoss) / in.EconomicCapital
	}

	return domain.RateBreakdown{
		BaseRate:             baseRate,
		CreditSpread:         creditSpread,
		FundingCost:          fundingCostPP,
		OperatingCost:        operatingCostPP,
		EQRateAdjustment:     in.EQAdjustmentPP,
		SegmentRateDiscount:  segmentDiscount,
		RelationshipDiscount: in.RelationshipDiscountPP,
		FinalRate:            round4(decimal.NewFromFloat(finalRate)),
		RateCapped:           capped,
		RAROC:                raroc,
		HurdleRateSatisfied:  raroc >= hurdleRAROC,
	}
}
