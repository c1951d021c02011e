// Package monitoring implements the offline/batch statistics computed over
// persisted decisions (spec §4.6): Population Stability Index (score,
// feature and target variants), calibration (ECE/Brier) and vintage
// roll-rate curves. Grounded on
// original_source/backend/app/core/monitoring_engine.py.
package monitoring

import (
	"math"
	"sort"
)

// Status bands for a PSI value (spec §4.6).
const (
	StatusGreen  = "green"
	StatusYellow = "yellow"
	StatusRed    = "red"
)

func psiStatus(psi float64) string {
	switch {
	case psi < 0.10:
		return StatusGreen
	case psi < 0.20:
		return StatusYellow
	default:
		return StatusRed
	}
}

// PSIBin is one bucket's contribution to a PSIResult.
type PSIBin struct {
	Lower            *float64
	Upper            *float64
	RefPct           float64
	CurPct           float64
	PSIContribution  float64
}

// PSIResult is the outcome of one PSI computation.
type PSIResult struct {
	PSI         float64
	Status      string
	Bins        []PSIBin
	NReference  int
	NCurrent    int
}

// percentile reproduces numpy's default linear-interpolation percentile
// over a sorted copy of data, for p in [0, 100].
func percentile(data []float64, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return data[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return data[lo]
	}
	frac := rank - float64(lo)
	return data[lo]*(1-frac) + data[hi]*frac
}

// referenceBins builds n_bins+1 breakpoints from reference's percentiles,
// with the outer edges clamped to ±∞ (spec §4.6).
func referenceBins(reference []float64, nBins int) []float64 {
	sorted := append([]float64(nil), reference...)
	sort.Float64s(sorted)
	edges := make([]float64, nBins+1)
	for i := 0; i <= nBins; i++ {
		p := float64(i) / float64(nBins) * 100
		edges[i] = percentile(sorted, p)
	}
	edges[0] = math.Inf(-1)
	edges[nBins] = math.Inf(1)
	return edges
}

func histogram(data []float64, edges []float64) []int {
	counts := make([]int, len(edges)-1)
	for _, v := range data {
		for i := 0; i < len(edges)-1; i++ {
			if v > edges[i] && v <= edges[i+1] {
				counts[i]++
				break
			}
		}
	}
	return counts
}

// ComputePSI implements spec §4.6's PSI formula over arbitrary continuous
// distributions. If bins is nil, breakpoints are derived from reference's
// percentiles; otherwise the supplied bins (e.g. the fixed score bins) are
// used directly.
func ComputePSI(reference, current []float64, nBins int, bins []float64) PSIResult {
	if len(reference) == 0 || len(current) == 0 {
		return PSIResult{PSI: 0, Status: StatusGreen}
	}

	edges := bins
	if edges == nil {
		edges = referenceBins(reference, nBins)
	}
	n := len(edges) - 1

	refCounts := histogram(reference, edges)
	curCounts := histogram(current, edges)

	refN := float64(len(reference))
	curN := float64(len(current))

	result := PSIResult{NReference: len(reference), NCurrent: len(current)}
	psi := 0.0
	for i := 0; i < n; i++ {
		refPct := (float64(refCounts[i]) + 0.5) / (refN + 0.5*float64(n))
		curPct := (float64(curCounts[i]) + 0.5) / (curN + 0.5*float64(n))
		contribution := (curPct - refPct) * math.Log(curPct/refPct)
		psi += contribution

		bin := PSIBin{RefPct: refPct, CurPct: curPct, PSIContribution: contribution}
		if !math.IsInf(edges[i], 0) {
			lo := edges[i]
			bin.Lower = &lo
		}
		if !math.IsInf(edges[i+1], 0) {
			hi := edges[i+1]
			bin.Upper = &hi
		}
		result.Bins = append(result.Bins, bin)
	}

	result.PSI = psi
	result.Status = psiStatus(psi)
	return result
}

// scoreBinEdges are the fixed 60-point-wide score bins of spec §4.6,
// 300-900, with outer edges clamped to ±∞.
var scoreBinEdges = []float64{
	math.Inf(-1), 360, 420, 480, 540, 600, 660, 720, 780, 840, math.Inf(1),
}

// ComputeScorePSI is the score-PSI variant: fixed 60-point-wide bins.
func ComputeScorePSI(referenceScores, currentScores []float64) PSIResult {
	return ComputePSI(referenceScores, currentScores, len(scoreBinEdges)-1, scoreBinEdges)
}

// ComputeFeaturePSI computes per-feature PSI, skipping any feature with
// fewer than 10 samples in either distribution (same guard as the source).
func ComputeFeaturePSI(reference, current map[string][]float64, features []string, nBins int) map[string]PSIResult {
	results := make(map[string]PSIResult)
	for _, feat := range features {
		ref, curr := reference[feat], current[feat]
		if len(ref) < 10 || len(curr) < 10 {
			continue
		}
		results[feat] = ComputePSI(ref, curr, nBins, nil)
	}
	return results
}

// ComputeTargetPSI computes Target-PSI over the two-bin Bernoulli
// distribution of the realised bad rate.
func ComputeTargetPSI(badRateReference, badRateCurrent float64, nReference, nCurrent int) PSIResult {
	clamp := func(p float64) float64 {
		if p < 1e-6 {
			return 1e-6
		}
		if p > 1-1e-6 {
			return 1 - 1e-6
		}
		return p
	}
	refBad, curBad := clamp(badRateReference), clamp(badRateCurrent)
	refGood, curGood := 1-refBad, 1-curBad

	psi := (curBad-refBad)*math.Log(curBad/refBad) + (curGood-refGood)*math.Log(curGood/refGood)
	psi = math.Abs(psi)

	return PSIResult{
		PSI:        psi,
		Status:     psiStatus(psi),
		NReference: nReference,
		NCurrent:   nCurrent,
		Bins: []PSIBin{
			{RefPct: refBad, CurPct: curBad},
			{RefPct: refGood, CurPct: curGood},
		},
	}
}
