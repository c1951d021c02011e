package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCalibration_PerfectCalibrationZeroECE(t *testing.T) {
	// Each decile bin's fraction of positives exactly matches its mean
	// predicted probability, so the calibration gap is zero everywhere.
	var yTrue, yProb []float64
	for b := 0; b < 10; b++ {
		p := float64(b)*0.1 + 0.05
		positives := b*10 + 5
		for i := 0; i < 100; i++ {
			yProb = append(yProb, p)
			if i < positives {
				yTrue = append(yTrue, 1)
			} else {
				yTrue = append(yTrue, 0)
			}
		}
	}
	result := ComputeCalibration(yTrue, yProb, 10)
	assert.InDelta(t, 0, result.ECE, 1e-9)
}

func TestComputeCalibration_PerfectPredictionZeroBrier(t *testing.T) {
	yTrue := []float64{0, 1, 0, 1, 1}
	yProb := []float64{0, 1, 0, 1, 1}
	result := ComputeCalibration(yTrue, yProb, 5)
	assert.InDelta(t, 0, result.BrierScore, 1e-9)
}

func TestComputeCalibration_EmptyInput(t *testing.T) {
	result := ComputeCalibration(nil, nil, 10)
	assert.Equal(t, 0.0, result.ECE)
	assert.Equal(t, 0.0, result.BrierScore)
}

func TestECEStatus_Thresholds(t *testing.T) {
	assert.Equal(t, "pass", CalibrationResult{ECE: 0.01}.ECEStatus())
	assert.Equal(t, "warning", CalibrationResult{ECE: 0.03}.ECEStatus())
	assert.Equal(t, "fail", CalibrationResult{ECE: 0.10}.ECEStatus())
}
