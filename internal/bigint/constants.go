package bigint

// ─────────────────────────────────────────────────────────────────────────────
// Performance Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────
//
// These constants control the algorithm crossover points and are based on
// empirical benchmarks across various hardware configurations. They are
// word counts, not bits.

const (
	// DefaultKaratsubaThreshold is the operand length in words at which
	// multiplication switches from schoolbook O(n·m) to Karatsuba's
	// three-way recursive split.
	//
	// Below this threshold, the schoolbook inner loop wins on constant
	// factors; 40 words (2560 bits on 64-bit) is the crossover on
	// typical hardware.
	DefaultKaratsubaThreshold = 40

	// DefaultBasicSqrThreshold is the operand length in words at which
	// squaring switches from plain schoolbook multiplication to the
	// dedicated squaring routine that computes each cross-product once
	// and doubles it.
	DefaultBasicSqrThreshold = 20

	// DefaultKaratsubaSqrThreshold is the operand length in words at
	// which squaring switches to the Karatsuba split optimized for
	// x == y. Squaring's cheaper inner loop pushes the crossover well
	// above the multiplication threshold.
	DefaultKaratsubaSqrThreshold = 260

	// DefaultDivRecursiveThreshold is the divisor length in words at
	// which division switches from Knuth's word-by-word long division
	// to the recursive blockwise scheme. Below it, the recursion
	// overhead (temporaries, trial-quotient corrections) exceeds the
	// subquadratic gains.
	DefaultDivRecursiveThreshold = 100
)

// The live thresholds. They default to the constants above and may be
// retuned at startup (config package) or in benchmarks; they are not
// safe to change while operations are in flight.
var (
	karatsubaThreshold    = DefaultKaratsubaThreshold
	basicSqrThreshold     = DefaultBasicSqrThreshold
	karatsubaSqrThreshold = DefaultKaratsubaSqrThreshold
	divRecursiveThreshold = DefaultDivRecursiveThreshold
)

// SetKaratsubaThreshold overrides the multiplication crossover.
// Values below 2 are clamped to 2. It returns the previous setting.
func SetKaratsubaThreshold(n int) int {
	prev := karatsubaThreshold
	if n < 2 {
		n = 2
	}
	karatsubaThreshold = n
	return prev
}

// SetSqrThresholds overrides the squaring crossovers. Values below 2 are
// clamped to 2; karatsuba is raised to at least basic.
func SetSqrThresholds(basic, karatsuba int) (prevBasic, prevKaratsuba int) {
	prevBasic, prevKaratsuba = basicSqrThreshold, karatsubaSqrThreshold
	if basic < 2 {
		basic = 2
	}
	if karatsuba < basic {
		karatsuba = basic
	}
	basicSqrThreshold, karatsubaSqrThreshold = basic, karatsuba
	return
}

// SetDivRecursiveThreshold overrides the division crossover.
// Values below 4 are clamped to 4. It returns the previous setting.
func SetDivRecursiveThreshold(n int) int {
	prev := divRecursiveThreshold
	if n < 4 {
		n = 4
	}
	divRecursiveThreshold = n
	return prev
}
