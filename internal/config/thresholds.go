package config

import (
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/agbru/limbcalc/limb"
)

// Karatsuba threshold resolution (highest priority first):
//   1. -karatsuba-threshold flag
//   2. LIMBCALC_KARATSUBA_THRESHOLD
//   3. cached calibration profile (~/.limbcalc_calibration.json)
//   4. hardware estimate (this file)

// ApplyAdaptiveThresholds fills a zero KaratsubaThreshold with a hardware
// estimate. Explicit values are kept.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.KaratsubaThreshold == 0 {
		cfg.KaratsubaThreshold = EstimateKaratsubaThreshold()
	}
	return cfg
}

// EstimateKaratsubaThreshold guesses the crossover without benchmarking.
// A fast double-word multiply makes schoolbook rows cheaper, which pushes the
// crossover up.
func EstimateKaratsubaThreshold() int {
	switch runtime.GOARCH {
	case "amd64":
		if cpu.X86.HasBMI2 && cpu.X86.HasADX {
			return 48
		}
		if cpu.X86.HasAVX2 {
			return limb.DefaultKaratsubaThreshold
		}
		return 32
	case "arm64":
		if cpu.ARM64.HasASIMD {
			return limb.DefaultKaratsubaThreshold
		}
		return 32
	}
	return limb.DefaultKaratsubaThreshold
}

// CPUFeatures lists the detected features that influence the estimate, for
// the verbose banner.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64":
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasADX, "adx")
		add(cpu.X86.HasAVX2, "avx2")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
	}
	return features
}
