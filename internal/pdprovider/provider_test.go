package pdprovider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatisticalFallback_DeterministicAndBounded(t *testing.T) {
	f := NewStatisticalFallback()
	v := FeatureVector{
		CBScore:                      850,
		AnnualIncome:                 80_000_000,
		TelecomNoDelinquency:         true,
		HealthInsurancePaidMonths12M: 12,
	}
	a, err := f.Predict(v)
	assert.NoError(t, err)
	b, err := f.Predict(v)
	assert.NoError(t, err)
	assert.Equal(t, a, b, "must be bit-identical for identical inputs")
	assert.Greater(t, a, 0.0)
	assert.Less(t, a, 1.0)
}

func TestStatisticalFallback_WorsePaymentHistoryRaisesPD(t *testing.T) {
	f := NewStatisticalFallback()
	good := FeatureVector{CBScore: 850, AnnualIncome: 80_000_000, TelecomNoDelinquency: true}
	bad := FeatureVector{CBScore: 480, AnnualIncome: 80_000_000, DelinquencyCount12M: 3, WorstDelinquencyStatus: 2}

	pdGood, _ := f.Predict(good)
	pdBad, _ := f.Predict(bad)
	assert.Greater(t, pdBad, pdGood)
}

func TestStatisticalFallback_SoleProprietorTerms(t *testing.T) {
	f := NewStatisticalFallback()
	base := FeatureVector{CBScore: 700, AnnualIncome: 50_000_000}
	sp := base
	sp.IsSoleProprietor = true
	sp.BusinessDurationMonths = 10
	sp.TaxFilings3Y = 1

	pdBase, _ := f.Predict(base)
	pdSP, _ := f.Predict(sp)
	assert.Greater(t, pdSP, pdBase)
}

func TestApplyIRGAdjustment_Clamped(t *testing.T) {
	assert.InDelta(t, 1e-3, ApplyIRGAdjustment(1e-6, -0.10), 1e-12)
	assert.InDelta(t, 0.999, ApplyIRGAdjustment(0.99, 0.30), 1e-9)
}
