package monitoring

// Pass thresholds for calibration quality (spec §4.6).
const (
	TargetECE   = 0.02
	TargetBrier = 0.07
)

// ReliabilityBin is one equal-width probability bin's calibration detail.
type ReliabilityBin struct {
	Lower              float64
	Upper              float64
	MeanPredictedProb  float64
	FractionOfPositives *float64
	NSamples           int
}

// CalibrationResult is the outcome of computing ECE and Brier score over a
// set of predicted probabilities and realised outcomes.
type CalibrationResult struct {
	ECE                 float64
	BrierScore          float64
	NBins               int
	NSamples            int
	ReliabilityDiagram  []ReliabilityBin
}

// ECEStatus classifies the ECE value against the calibration thresholds.
func (c CalibrationResult) ECEStatus() string {
	if c.ECE <= 0.02 {
		return "pass"
	}
	if c.ECE <= 0.05 {
		return "warning"
	}
	return "fail"
}

// ComputeCalibration implements spec §4.6's ECE and Brier score over
// equal-width bins on the predicted probability. yTrue holds 0/1 realised
// bad outcomes; yProb holds the model's predicted probabilities.
func ComputeCalibration(yTrue []float64, yProb []float64, nBins int) CalibrationResult {
	n := len(yTrue)
	if n == 0 {
		return CalibrationResult{NBins: nBins}
	}

	brier := 0.0
	for i := range yProb {
		d := yProb[i] - yTrue[i]
		brier += d * d
	}
	brier /= float64(n)

	binWidth := 1.0 / float64(nBins)
	sums := make([]float64, nBins)
	positives := make([]float64, nBins)
	counts := make([]int, nBins)

	for i, p := range yProb {
		idx := int(p / binWidth)
		if idx >= nBins {
			idx = nBins - 1
		}
		if idx < 0 {
			idx = 0
		}
		sums[idx] += p
		positives[idx] += yTrue[i]
		counts[idx]++
	}

	ece := 0.0
	diagram := make([]ReliabilityBin, nBins)
	for b := 0; b < nBins; b++ {
		lower := float64(b) * binWidth
		upper := float64(b+1) * binWidth
		if counts[b] == 0 {
			diagram[b] = ReliabilityBin{Lower: lower, Upper: upper, MeanPredictedProb: (lower + upper) / 2}
			continue
		}
		meanProb := sums[b] / float64(counts[b])
		fracPos := positives[b] / float64(counts[b])
		gap := meanProb - fracPos
		if gap < 0 {
			gap = -gap
		}
		ece += (float64(counts[b]) / float64(n)) * gap

		f := fracPos
		diagram[b] = ReliabilityBin{
			Lower: lower, Upper: upper,
			MeanPredictedProb:   meanProb,
			FractionOfPositives: &f,
			NSamples:            counts[b],
		}
	}

	return CalibrationResult{
		ECE:                ece,
		BrierScore:         brier,
		NBins:              nBins,
		NSamples:           n,
		ReliabilityDiagram: diagram,
	}
}
