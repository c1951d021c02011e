package decision

import (
	"context"
	"time"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// resolveParameters implements spec §4.5.1 step 2: resolve every
// regulatory input from the Parameter Store, recording each into the
// evaluation's regulation_snapshot.
func (e *Engine) resolveParameters(ctx context.Context, applicant *domain.Applicant, app *domain.LoanApplication, effectiveAt time.Time, snapshot *domain.RegulationSnapshot) error {
	dsrVal, _, dsrDeg, err := e.resolver.Resolve(ctx, "dsr.max_ratio", effectiveAt, nil)
	if err != nil {
		return err
	}
	snapshot.DSRLimit = dsrVal.RatioPercent / 100
	recordDegradation(snapshot, dsrDeg, "dsr.max_ratio")

	ltvKey := ltvParamKey(app)
	cond := domain.ParamCondition{}
	ltvVal, _, ltvDeg, err := e.resolver.Resolve(ctx, ltvKey, effectiveAt, cond)
	if err != nil {
		return err
	}
	limit := ltvVal.RatioPercent / 100
	if app.Mortgage != nil && app.Mortgage.OwnedPropertyCount >= 2 {
		limit += ltvVal.MultiOwnerDeductionPP / 100
	}
	snapshot.LTVLimit = limit
	recordDegradation(snapshot, ltvDeg, ltvKey)

	stressKey := "stress_dsr." + string(app.StressDSRRegion) + "." + string(app.RateType)
	stressVal, _, stressDeg, err := e.resolver.Resolve(ctx, stressKey, effectiveAt, nil)
	if err != nil {
		return err
	}
	snapshot.StressAddPP = stressVal.RatePP
	recordDegradation(snapshot, stressDeg, stressKey)

	capVal, _, capDeg, err := e.resolver.Resolve(ctx, "rate.max_interest", effectiveAt, nil)
	if err != nil {
		return err
	}
	snapshot.StatutoryCapPP = capVal.RatePP
	recordDegradation(snapshot, capDeg, "rate.max_interest")

	irgVal, _, irgDeg, err := e.resolver.Resolve(ctx, "irg.pd_adjustment."+string(applicant.ResolvedIRG()), effectiveAt, nil)
	if err != nil {
		return err
	}
	snapshot.IRGAdjustment = irgVal.Raw["adjustment"]
	recordDegradation(snapshot, irgDeg, "irg.pd_adjustment")

	if applicant.SegmentCode != domain.SegmentNone {
		segKey := "segment.benefit." + segmentLookupKey(applicant.SegmentCode)
		segVal, _, segDeg, err := e.resolver.Resolve(ctx, segKey, effectiveAt, nil)
		if err != nil {
			return err
		}
		recordDegradation(snapshot, segDeg, segKey)

		if ageEligible(applicant.Age, segVal.Segment) {
			snapshot.SegmentBenefit = segVal.Segment
		}

		if snapshot.SegmentBenefit != nil && applicant.SegmentCode.IsMOU() && e.eqMaster != nil {
			if masterRow, merr := e.eqMaster.GetByGrade(ctx, applicant.ResolvedEQGrade()); merr == nil && masterRow != nil && masterRow.MOUSpecialRatePP != nil {
				sb := *snapshot.SegmentBenefit
				sb.MOUSpecialRatePP = masterRow.MOUSpecialRatePP
				snapshot.SegmentBenefit = &sb
			}
		}
	}

	// Segment min_eq guarantee (spec §4.5.1 step 3): a segment's preferential
	// terms never resolve a worse EQ-grade benefit than its own floor.
	effectiveEQ := applicant.ResolvedEQGrade()
	if snapshot.SegmentBenefit != nil && snapshot.SegmentBenefit.MinEQGrade != "" {
		effectiveEQ = strongerEQ(effectiveEQ, snapshot.SegmentBenefit.MinEQGrade)
	}

	eqVal, _, eqDeg, err := e.resolver.Resolve(ctx, "eq_grade.benefit."+string(effectiveEQ), effectiveAt, nil)
	if err != nil {
		return err
	}
	snapshot.EQBenefit = domain.EQBenefit{LimitMultiplier: eqVal.MultiplierTimes, RateAdjustPP: eqVal.MultiplierRateAdjust}
	recordDegradation(snapshot, eqDeg, "eq_grade.benefit")

	return nil
}

func recordDegradation(snapshot *domain.RegulationSnapshot, degraded bool, key string) {
	if degraded {
		snapshot.Degradations = append(snapshot.Degradations, "parameter store fallback used for "+key)
	}
}

// ageEligible reports whether applicant age falls within a segment's
// age window (spec §4.2.4: YTH is the only segment with one). A benefit
// with MinAge==0 and MaxAge==0 is unconstrained.
func ageEligible(age int, benefit *domain.SegmentBenefit) bool {
	if benefit == nil {
		return false
	}
	if benefit.MinAge == 0 && benefit.MaxAge == 0 {
		return true
	}
	return age >= benefit.MinAge && age <= benefit.MaxAge
}

func ltvParamKey(app *domain.LoanApplication) string {
	if app.Mortgage == nil {
		return "ltv.general"
	}
	if app.Mortgage.IsSpeculationArea {
		return "ltv.speculation_area"
	}
	if app.Mortgage.IsRegulatedArea {
		return "ltv.regulated"
	}
	return "ltv.general"
}

// segmentLookupKey strips a MOU-<code> segment down to the shared "MOU"
// compiled-default row (spec §4.2.4: "Segment MOU-<code> receives the base
// MOU discount by default").
func segmentLookupKey(code domain.SegmentCode) string {
	if code.IsMOU() {
		return "MOU"
	}
	return string(code)
}
