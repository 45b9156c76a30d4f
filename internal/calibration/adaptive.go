// This file implements candidate threshold generation based on hardware characteristics.

package calibration

import (
	"runtime"

	"github.com/agbru/limbcalc/internal/config"
)

// GenerateKaratsubaThresholds lists the Karatsuba thresholds, in limbs, that
// a full calibration times. The list always brackets the CPU estimate.
//
// Wide multiply instructions make schoolbook rows cheap, which pushes the
// crossover up. Machines without them cross over earlier.
func GenerateKaratsubaThresholds() []int {
	thresholds := []int{8, 12, 16, 24, 32, 40, 48, 64}
	if runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64" {
		thresholds = append(thresholds, 80, 96)
	}
	return withEstimate(thresholds)
}

// GenerateQuickKaratsubaThresholds generates a smaller set for a quick
// calibration.
func GenerateQuickKaratsubaThresholds() []int {
	return withEstimate([]int{16, 32, 48, 64})
}

// CalibrationLimbs returns the operand length used for timing. It must sit
// well above every candidate so each threshold takes a different path.
func CalibrationLimbs(thresholds []int) int {
	largest := 0
	for _, t := range thresholds {
		largest = max(largest, t)
	}
	return max(4*largest, 256)
}

func withEstimate(thresholds []int) []int {
	estimate := EstimateOptimalKaratsubaThreshold()
	for i, t := range thresholds {
		if t == estimate {
			return thresholds
		}
		if t > estimate {
			return append(thresholds[:i], append([]int{estimate}, thresholds[i:]...)...)
		}
	}
	return append(thresholds, estimate)
}

// EstimateOptimalKaratsubaThreshold delegates to config.EstimateKaratsubaThreshold.
func EstimateOptimalKaratsubaThreshold() int { return config.EstimateKaratsubaThreshold() }
