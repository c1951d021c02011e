package paramstore

import (
	"time"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// epoch is the "always effective" lower bound used by spec §4.2.3's
// default table.
var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// phase3Start is the date the stress-DSR guideline tightens from phase 2
// to phase 3 (spec §4.2.3), corrected from
// original_source/backend/app/core/policy_engine.py, whose fallback table
// only ever carried the phase-2 numbers.
var phase3Start = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

func ratio(percent, multiOwnerDeductionPP float64) domain.ParamValue {
	return domain.ParamValue{Kind: domain.ParamKindRatio, RatioPercent: percent, MultiOwnerDeductionPP: multiOwnerDeductionPP}
}

func rate(pp float64) domain.ParamValue {
	return domain.ParamValue{Kind: domain.ParamKindRate, RatePP: pp}
}

func multiplier(times, rateAdjustPP float64) domain.ParamValue {
	return domain.ParamValue{Kind: domain.ParamKindMultiplier, MultiplierTimes: times, MultiplierRateAdjust: rateAdjustPP}
}

func raw(scalar map[string]float64) domain.ParamValue {
	return domain.ParamValue{Kind: domain.ParamKindRaw, Raw: scalar}
}

func ccf(ratioValue float64) domain.ParamValue {
	return domain.ParamValue{Kind: domain.ParamKindCCF, CCFRatio: ratioValue}
}

func segmentBenefit(b domain.SegmentBenefit) domain.ParamValue {
	sb := b
	return domain.ParamValue{Kind: domain.ParamKindSegmentBenefit, Segment: &sb}
}

func row(key string, v domain.ParamValue, from time.Time, phase string, cond domain.ParamCondition) domain.RegulationParam {
	return domain.RegulationParam{
		ParamKey:      key,
		Value:         v,
		Condition:     cond,
		EffectiveFrom: from,
		IsActive:      true,
		PhaseLabel:    phase,
		LegalBasis:    "compiled default (spec.md §4.2.3/§4.2.4)",
	}
}

// compiledDefaults is the authoritative fallback and initial-seed table
// (spec §4.2.3/§4.2.4), used on a cache miss when the persistent store is
// absent, unreachable, or has no matching row for the key.
var compiledDefaults = buildCompiledDefaults()

func buildCompiledDefaults() []domain.RegulationParam {
	var rows []domain.RegulationParam

	rows = append(rows,
		row("dsr.max_ratio", ratio(40, 0), epoch, "", nil),
		row("ltv.general", ratio(70, 0), epoch, "", nil),
		row("ltv.regulated", ratio(60, 0), epoch, "", nil),
		row("ltv.speculation_area", ratio(40, -10), epoch, "", nil),
		row("rate.max_interest", rate(20), epoch, "", nil),

		row("credit_loan.income_multiplier.employed", multiplier(1.5, 0), epoch, "", nil),
		row("credit_loan.income_multiplier.self_employed", multiplier(1.0, 0), epoch, "", nil),

		row("ccf.revolving.default", ccf(0.50), epoch, "", nil),
	)

	// EQ-grade benefits (spec §4.2.4): multiplier = limit multiplier,
	// rate adjustment in percentage points.
	eqBenefits := []struct {
		grade string
		mult  float64
		ratePP float64
	}{
		{"S", 2.0, -0.50},
		{"A", 1.8, -0.30},
		{"B", 1.5, -0.20},
		{"C", 1.2, 0},
		{"D", 1.0, 0.20},
		{"E", 0.7, 0.50},
	}
	for _, e := range eqBenefits {
		rows = append(rows, row("eq_grade.benefit."+e.grade, multiplier(e.mult, e.ratePP), epoch, "", nil))
	}

	// IRG PD adjustments (spec §4.2.3), applied multiplicatively (§4.2.4).
	irgAdjustments := map[string]float64{"L": -0.10, "M": 0, "H": 0.15, "VH": 0.30}
	for grade, adj := range irgAdjustments {
		rows = append(rows, row("irg.pd_adjustment."+grade, raw(map[string]float64{"adjustment": adj}), epoch, "", nil))
	}

	// Segment benefits (spec §4.2.4).
	rows = append(rows,
		row("segment.benefit.DR", segmentBenefit(domain.SegmentBenefit{MinEQGrade: domain.EQGradeB, LimitMultiplier: 3.0, RateDiscountPP: -0.30}), epoch, "", nil),
		row("segment.benefit.JD", segmentBenefit(domain.SegmentBenefit{MinEQGrade: domain.EQGradeB, LimitMultiplier: 2.5, RateDiscountPP: -0.20}), epoch, "", nil),
		row("segment.benefit.ART", segmentBenefit(domain.SegmentBenefit{LimitMultiplier: 1.0, RateDiscountPP: 0}), epoch, "", nil),
		row("segment.benefit.YTH", segmentBenefit(domain.SegmentBenefit{LimitMultiplier: 1.0, RateDiscountPP: -0.50, MinAge: 19, MaxAge: 34}), epoch, "", nil),
		row("segment.benefit.MIL", segmentBenefit(domain.SegmentBenefit{MinEQGrade: domain.EQGradeS, LimitMultiplier: 2.0, RateDiscountPP: -0.50}), epoch, "", nil),
		row("segment.benefit.MOU", segmentBenefit(domain.SegmentBenefit{LimitMultiplier: 1.5, RateDiscountPP: -0.30}), epoch, "", nil),
	)

	// Stress-DSR phased guideline (spec §4.2.3). Phase 2 runs from
	// 2024-02-26; phase 3 supersedes it from phase3Start.
	phase2Start := time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC)

	metroPhase2 := 0.75
	metroPhase3 := 1.50
	nonMetroPhase2 := 1.50
	nonMetroPhase3 := 3.00

	rows = append(rows,
		row("stress_dsr.metropolitan.variable", rate(metroPhase2), phase2Start, "phase2", nil),
		row("stress_dsr.metropolitan.variable", rate(metroPhase3), phase3Start, "phase3", nil),
		row("stress_dsr.metropolitan.mixed_short", rate(metroPhase2*0.60), phase2Start, "phase2", nil),
		row("stress_dsr.metropolitan.mixed_short", rate(metroPhase3*0.60), phase3Start, "phase3", nil),
		row("stress_dsr.metropolitan.mixed_long", rate(metroPhase2*0.30), phase2Start, "phase2", nil),
		row("stress_dsr.metropolitan.mixed_long", rate(metroPhase3*0.30), phase3Start, "phase3", nil),
		row("stress_dsr.metropolitan.fixed", rate(0), epoch, "", nil),

		row("stress_dsr.non_metropolitan.variable", rate(nonMetroPhase2), phase2Start, "phase2", nil),
		row("stress_dsr.non_metropolitan.variable", rate(nonMetroPhase3), phase3Start, "phase3", nil),
		row("stress_dsr.non_metropolitan.mixed_short", rate(nonMetroPhase2*0.60), phase2Start, "phase2", nil),
		row("stress_dsr.non_metropolitan.mixed_short", rate(nonMetroPhase3*0.60), phase3Start, "phase3", nil),
		row("stress_dsr.non_metropolitan.mixed_long", rate(nonMetroPhase2*0.30), phase2Start, "phase2", nil),
		row("stress_dsr.non_metropolitan.mixed_long", rate(nonMetroPhase3*0.30), phase3Start, "phase3", nil),
		row("stress_dsr.non_metropolitan.fixed", rate(0), epoch, "", nil),
	)

	return rows
}

// lookupDefault resolves paramKey against the compiled default table using
// the same selection algorithm as the live store.
func lookupDefault(paramKey string, effectiveAt time.Time, cond domain.ParamCondition) (domain.ParamValue, bool) {
	var candidates []domain.RegulationParam
	for _, r := range compiledDefaults {
		if r.ParamKey == paramKey {
			candidates = append(candidates, r)
		}
	}
	row, ok := selectActive(candidates, effectiveAt, cond)
	if !ok {
		return domain.ParamValue{}, false
	}
	return row.Value, true
}
