package config

import (
	"runtime"

	"github.com/agbru/bigcalc/internal/bigint"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (--karatsuba-threshold, --basic-sqr-threshold,
//      --karatsuba-sqr-threshold, --div-recursive-threshold)
//   2. Environment variables (BIGCALC_KARATSUBA_THRESHOLD, etc.)
//   3. Adaptive hardware estimation (this file)
//   4. Static defaults in bigint/constants.go

// ApplyAdaptiveThresholds adjusts the configuration thresholds based on
// hardware characteristics (word size, CPU cores) when default values
// are detected. This provides automatic performance tuning without
// requiring explicit benchmarking on the host.
//
// The function only modifies thresholds that are set to their zero default,
// preserving any user-specified overrides via command-line flags.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.KaratsubaThreshold == 0 {
		cfg.KaratsubaThreshold = EstimateKaratsubaThreshold()
	}
	if cfg.BasicSqrThreshold == 0 {
		cfg.BasicSqrThreshold = EstimateBasicSqrThreshold()
	}
	if cfg.KaratsubaSqrThreshold == 0 {
		cfg.KaratsubaSqrThreshold = EstimateKaratsubaSqrThreshold()
	}
	if cfg.DivRecursiveThreshold == 0 {
		cfg.DivRecursiveThreshold = EstimateDivRecursiveThreshold()
	}
	return cfg
}

// EstimateKaratsubaThreshold provides a heuristic estimate of the optimal
// Karatsuba crossover without running benchmarks.
func EstimateKaratsubaThreshold() int {
	wordSize := 32 << (^uint(0) >> 63)

	if wordSize == 64 {
		return bigint.DefaultKaratsubaThreshold
	}
	// On 32-bit hosts operands reach the same bit width in twice the
	// words, so the schoolbook region extends further.
	return bigint.DefaultKaratsubaThreshold * 3 / 2
}

// EstimateBasicSqrThreshold provides a heuristic estimate of the crossover
// from schoolbook multiplication to the dedicated squaring routine.
func EstimateBasicSqrThreshold() int {
	return bigint.DefaultBasicSqrThreshold
}

// EstimateKaratsubaSqrThreshold provides a heuristic estimate of the
// crossover from basicSqr to recursive Karatsuba squaring. Large L3
// caches push the crossover up; many small cores pull it down.
func EstimateKaratsubaSqrThreshold() int {
	numCPU := runtime.NumCPU()

	if numCPU >= 8 {
		return bigint.DefaultKaratsubaSqrThreshold
	}
	return bigint.DefaultKaratsubaSqrThreshold * 3 / 4
}

// EstimateDivRecursiveThreshold provides a heuristic estimate of the
// optimal recursive-division crossover without running benchmarks.
func EstimateDivRecursiveThreshold() int {
	wordSize := 32 << (^uint(0) >> 63)

	if wordSize == 64 {
		return bigint.DefaultDivRecursiveThreshold
	}
	return bigint.DefaultDivRecursiveThreshold * 2
}
