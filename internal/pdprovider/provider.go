// Package pdprovider implements the PD Provider contract of spec §4.3:
// given a feature vector, return a raw probability of default in
// (10⁻⁶, 1−10⁻⁶). Two implementations share the contract: a trained
// boosted-tree scorer (stub, documenting the artefact contract) and a
// deterministic statistical fallback used when no artefact is present
// and as the test oracle.
package pdprovider

import "math"

const (
	pdClampLow  = 1e-6
	pdClampHigh = 1 - 1e-6
)

// FeatureVector is the fixed-order input to every PD Provider
// implementation, grounded on
// original_source/backend/app/core/scoring_engine.py's _build_feature_vector.
type FeatureVector struct {
	CBScore                        int
	DelinquencyCount12M             int
	WorstDelinquencyStatus          int
	DSRPercent                      float64
	AnnualIncome                    int64
	InquiryCount3M                  int
	TelecomNoDelinquency            bool
	HealthInsurancePaidMonths12M    int

	IsSoleProprietor       bool
	BusinessDurationMonths int
	TaxFilings3Y           int
}

// Provider produces a raw default probability from a feature vector.
type Provider interface {
	Predict(v FeatureVector) (rawProbability float64, err error)
	ModelVersion() string
	ScorecardKind() string
}

func clamp(pd float64) float64 {
	if pd < pdClampLow {
		return pdClampLow
	}
	if pd > pdClampHigh {
		return pdClampHigh
	}
	return pd
}

// StatisticalFallback is the deterministic logistic-regression fallback
// of spec §4.3, used when no trained-model artefact is present.
// Implementations must produce bit-identical values for identical inputs
// (no stochastic state) — there is no randomness anywhere in this type.
type StatisticalFallback struct{}

// NewStatisticalFallback builds the stateless statistical fallback.
func NewStatisticalFallback() *StatisticalFallback { return &StatisticalFallback{} }

func boolTerm(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Predict implements spec §4.3's literal formula. Two discrepancies
// against original_source/backend/app/core/scoring_engine.py's
// _estimate_pd_statistical are deliberately NOT reproduced here (see
// DESIGN.md Open Question decisions 4 and 5): the income-suppression
// divisor is spec.md's literal 50,000,000, and the DSR input is the
// caller's actual dsr() primitive output, not a flat-amount shortcut.
func (s *StatisticalFallback) Predict(v FeatureVector) (float64, error) {
	logOdds := -3.5
	logOdds += float64(v.CBScore-700) / 100 * -1.8
	logOdds += 0.6 * float64(v.DelinquencyCount12M)
	logOdds += 0.8 * float64(v.WorstDelinquencyStatus)
	logOdds += 0.03 * math.Max(0, v.DSRPercent-40)
	income := float64(v.AnnualIncome)
	if income < 1 {
		income = 1
	}
	logOdds += 0.5 * math.Log(1+50_000_000/income)
	logOdds += 0.3 * float64(v.InquiryCount3M)
	logOdds -= 0.3 * boolTerm(v.TelecomNoDelinquency)
	logOdds -= 0.4 * (float64(v.HealthInsurancePaidMonths12M) / 12)

	if v.IsSoleProprietor {
		logOdds += 0.3
		if v.BusinessDurationMonths < 24 {
			logOdds += 0.4
		}
		if v.TaxFilings3Y < 2 {
			logOdds += 0.3
		}
	}

	rawPD := 1 / (1 + math.Exp(-logOdds))
	return clamp(rawPD), nil
}

func (s *StatisticalFallback) ModelVersion() string { return "statistical-fallback-v1" }
func (s *StatisticalFallback) ScorecardKind() string { return "statistical" }

// ApplyIRGAdjustment implements spec §4.2.4/§4.3's multiplicative IRG
// adjustment: pd_final = clamp(pd_raw * (1 + irg_adjustment), 1e-3, 0.999).
func ApplyIRGAdjustment(rawPD, irgAdjustment float64) float64 {
	adjusted := rawPD * (1 + irgAdjustment)
	if adjusted < 1e-3 {
		return 1e-3
	}
	if adjusted > 0.999 {
		return 0.999
	}
	return adjusted
}
