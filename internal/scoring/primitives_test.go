package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDToScore_BasePD(t *testing.T) {
	assert.Equal(t, 600, PDToScore(BasePD))
}

func TestPDToScore_BoundedAndMonotone(t *testing.T) {
	cases := []float64{1e-6, 0.001, 0.01, 0.072, 0.2, 0.5, 0.9, 1 - 1e-6}
	prevScore := math.MaxInt32
	for _, pd := range cases {
		score := PDToScore(pd)
		assert.GreaterOrEqual(t, score, ScoreMin)
		assert.LessOrEqual(t, score, ScoreMax)
		assert.LessOrEqual(t, score, prevScore, "score must be non-increasing in pd")
		prevScore = score
	}
}

func TestPDToScore_DoubleOddsDropsFortyPoints(t *testing.T) {
	pdA := 0.05
	pdB := pdA / (1 - pdA) * 2 * pdA / (1 + pdA/(1-pdA)*2*pdA) // pd implied by doubling odds
	// Simpler: construct pdB directly from doubled odds.
	oddsA := pdA / (1 - pdA)
	oddsB := oddsA * 2
	pdB = oddsB / (1 + oddsB)

	scoreA := PDToScore(pdA)
	scoreB := PDToScore(pdB)
	assert.InDelta(t, 40, float64(scoreA-scoreB), 1.0)
}

func TestScoreToGrade_Boundaries(t *testing.T) {
	assert.Equal(t, "D", ScoreToGrade(300))
	assert.Equal(t, "B", ScoreToGrade(600))
	assert.Equal(t, "AAA", ScoreToGrade(900))
	assert.Equal(t, "BB", ScoreToGrade(601))
}

func TestScoreToGrade_ContiguousNoGaps(t *testing.T) {
	prev := ""
	seen := map[string]bool{}
	for s := ScoreMin; s <= ScoreMax; s++ {
		g := ScoreToGrade(s)
		assert.NotEmpty(t, g)
		if g != prev {
			assert.False(t, seen[g], "grade %s must cover one contiguous score range", g)
			seen[g] = true
		}
		prev = g
	}
}

func TestMonthlyPayment_ZeroRateIsLinear(t *testing.T) {
	assert.Equal(t, 1000.0, MonthlyPayment(12000, 0, 12))
}

func TestMonthlyPayment_ZeroPrincipalOrTerm(t *testing.T) {
	assert.Equal(t, 0.0, MonthlyPayment(0, 5, 12))
	assert.Equal(t, 0.0, MonthlyPayment(10000, 5, 0))
}

func TestDSR_NonPositiveIncome(t *testing.T) {
	assert.True(t, math.IsInf(DSR(0, 100, 0), 1))
}

func TestDSR_Basic(t *testing.T) {
	d := DSR(5_000_000, 500_000, 500_000)
	assert.InDelta(t, 0.2, d, 1e-9)
}

func TestLTV(t *testing.T) {
	v, ok := LTV(500_000_000, 1_000_000_000)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-9)

	_, ok = LTV(100, 0)
	assert.False(t, ok)
}

func TestEAD_TermVsRevolving(t *testing.T) {
	assert.Equal(t, 30_000_000.0, EAD(false, 30_000_000, 0, 0, DefaultCCF))
	assert.Equal(t, 5_500_000.0, EAD(true, 0, 1_000_000, 10_000_000, DefaultCCF))
}

func TestEconomicCapital(t *testing.T) {
	ead := 30_000_000.0
	rw := RiskWeight("credit")
	ec := EconomicCapital(ead, rw)
	assert.InDelta(t, 1_800_000.0, ec, 1e-6)
}
