package ratecomposer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

var segmentBenefitFixture = domain.SegmentBenefit{RateDiscountPP: -0.50}

func TestCompute_Basic(t *testing.T) {
	out := Compute(Inputs{
		PD:              0.02,
		LGD:             0.45,
		EAD:             30_000_000,
		EconomicCapital: 1_800_000,
		StatutoryCapPP:  20,
	})
	assert.InDelta(t, 3.5, out.BaseRate, 1e-9)
	assert.InDelta(t, 2.25, out.CreditSpread, 1e-9) // 0.02*0.45*100*2.5
	assert.False(t, out.RateCapped)
	assert.Greater(t, out.FinalRate, out.BaseRate)
}

func TestCompute_CapApplied(t *testing.T) {
	out := Compute(Inputs{
		PD:             0.9,
		LGD:            0.9,
		EAD:            1,
		StatutoryCapPP: 20,
	})
	assert.Equal(t, 20.0, out.FinalRate)
	assert.True(t, out.RateCapped)
}

func TestCompute_FloorApplied(t *testing.T) {
	out := Compute(Inputs{
		PD:             0.0001,
		LGD:            0.1,
		EAD:            1,
		StatutoryCapPP: 20,
	})
	assert.GreaterOrEqual(t, out.FinalRate, out.BaseRate+0.5)
}

func TestCompute_SegmentDiscountLowersRate(t *testing.T) {
	withDiscount := Compute(Inputs{PD: 0.05, LGD: 0.45, EAD: 1, StatutoryCapPP: 20,
		SegmentBenefit: &segmentBenefitFixture})
	without := Compute(Inputs{PD: 0.05, LGD: 0.45, EAD: 1, StatutoryCapPP: 20})
	assert.Less(t, withDiscount.FinalRate, without.FinalRate)
}

func TestCompute_RAROCHurdle(t *testing.T) {
	out := Compute(Inputs{PD: 0.01, LGD: 0.3, EAD: 10_000_000, EconomicCapital: 300_000, StatutoryCapPP: 20})
	assert.True(t, out.HurdleRateSatisfied == (out.RAROC >= 0.15))
}
