package monitoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalSamples(n int, mean, stddev float64, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + stddev*r.NormFloat64()
	}
	return out
}

func TestComputePSI_ZeroOnIdenticalDistributions(t *testing.T) {
	ref := normalSamples(5000, 680, 80, 1)
	cur := append([]float64(nil), ref...)
	result := ComputePSI(ref, cur, 10, nil)
	assert.InDelta(t, 0, result.PSI, 1e-9)
	assert.Equal(t, StatusGreen, result.Status)
}

func TestComputePSI_Scenario6Green(t *testing.T) {
	ref := normalSamples(5000, 680, 80, 42)
	cur := normalSamples(2000, 680, 80, 43)
	result := ComputePSI(ref, cur, 10, nil)
	assert.Less(t, result.PSI, 0.05)
	assert.Equal(t, StatusGreen, result.Status)
}

func TestComputePSI_Scenario6Red(t *testing.T) {
	ref := normalSamples(5000, 680, 80, 42)
	cur := normalSamples(2000, 550, 100, 44)
	result := ComputePSI(ref, cur, 10, nil)
	assert.Greater(t, result.PSI, 0.20)
	assert.Equal(t, StatusRed, result.Status)
}

func TestComputePSI_MonotoneInShiftMagnitude(t *testing.T) {
	ref := normalSamples(5000, 680, 80, 7)
	smallShift := normalSamples(2000, 700, 80, 8)
	largeShift := normalSamples(2000, 800, 80, 9)

	small := ComputePSI(ref, smallShift, 10, nil)
	large := ComputePSI(ref, largeShift, 10, nil)
	assert.Less(t, small.PSI, large.PSI)
}

func TestComputeScorePSI_FixedBins(t *testing.T) {
	ref := normalSamples(3000, 650, 70, 11)
	cur := normalSamples(1000, 650, 70, 12)
	result := ComputeScorePSI(ref, cur)
	require.Len(t, result.Bins, 10)
	assert.Nil(t, result.Bins[0].Lower)
	assert.Nil(t, result.Bins[len(result.Bins)-1].Upper)
}

func TestComputeTargetPSI(t *testing.T) {
	result := ComputeTargetPSI(0.03, 0.03, 10000, 5000)
	assert.InDelta(t, 0, result.PSI, 1e-9)

	shifted := ComputeTargetPSI(0.03, 0.10, 10000, 5000)
	assert.Greater(t, shifted.PSI, 0.0)
}

func TestComputeFeaturePSI_SkipsSmallSamples(t *testing.T) {
	reference := map[string][]float64{"dsr": normalSamples(50, 0.3, 0.1, 1)}
	current := map[string][]float64{"dsr": {0.1, 0.2}}
	results := ComputeFeaturePSI(reference, current, []string{"dsr"}, 10)
	assert.Empty(t, results)
}
