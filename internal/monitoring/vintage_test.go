package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeVintage_CumulativeBadRatePerCohort(t *testing.T) {
	outcomes := []CohortOutcome{
		{CohortMonth: "2025-01", MonthsOnBook: 12, Bad90Plus: true},
		{CohortMonth: "2025-01", MonthsOnBook: 12, Bad90Plus: false},
		{CohortMonth: "2025-01", MonthsOnBook: 6, Bad90Plus: false},
		{CohortMonth: "2025-02", MonthsOnBook: 3, Bad90Plus: false},
	}
	result := ComputeVintage(outcomes, nil)
	require.Contains(t, result.Cohorts, "2025-01")
	assert.InDelta(t, 0.5, result.Cohorts["2025-01"]["dpd_12m"], 1e-9)

	feb := result.Cohorts["2025-02"]
	_, has6m := feb["dpd_6m"]
	assert.False(t, has6m, "no observation reached the 6-month checkpoint in this cohort")
}

func TestComputeVintage_FallsBackToSyntheticBelowThreshold(t *testing.T) {
	outcomes := []CohortOutcome{
		{CohortMonth: "2025-01", MonthsOnBook: 6, Bad90Plus: false, DelinquencyStage: 0},
	}
	result := ComputeVintage(outcomes, nil)
	assert.Equal(t, "demo", result.DataSource)
	assert.Equal(t, syntheticRollRateMatrix, result.RollRateMatrix)
}

func TestComputeVintage_EmptyInput(t *testing.T) {
	result := ComputeVintage(nil, nil)
	assert.Empty(t, result.Cohorts)
	assert.Equal(t, "demo", result.DataSource)
}

func TestRollRateFromOutcomes_ObservedAboveThreshold(t *testing.T) {
	outcomes := make([]CohortOutcome, 0, 200)
	for i := 0; i < 100; i++ {
		outcomes = append(outcomes, CohortOutcome{CohortMonth: "2025-01", MonthsOnBook: 12, DelinquencyStage: 4})
	}
	for i := 0; i < 100; i++ {
		outcomes = append(outcomes, CohortOutcome{CohortMonth: "2025-01", MonthsOnBook: 12, DelinquencyStage: 0})
	}
	rates, source := rollRateFromOutcomes(outcomes)
	assert.Equal(t, "observed", source)
	assert.InDelta(t, 0.5, rates["current_to_dpd30"], 1e-9)
}
