// This file provides the elementary multi-precision arithmetic operations
// on word vectors that every higher-level algorithm in this package is
// built from. All routines are pure Go on top of math/bits; carries and
// borrows are threaded explicitly so the compiler can use ADC/SBB chains.

package bigint

import "math/bits"

// A Word represents a single digit of a multi-precision unsigned integer.
type Word uint

const (
	_S = _W / 8 // word size in bytes

	_W = bits.UintSize // word size in bits
	_B = 1 << _W       // digit base
	_M = _B - 1        // digit mask
)

// Many of the loops below use the form
//
//	for i := 0; i < len(z) && i < len(x); i++
//
// where i < len(z) is the real condition: the extra comparisons let the
// compiler eliminate bounds checks in the loop body.

// mulWW returns the double-width product x*y as (z1, z0) with
// z1<<_W + z0 = x*y.
func mulWW(x, y Word) (z1, z0 Word) {
	hi, lo := bits.Mul(uint(x), uint(y))
	return Word(hi), Word(lo)
}

// mulAddWWW returns z1<<_W + z0 = x*y + c.
func mulAddWWW(x, y, c Word) (z1, z0 Word) {
	hi, lo := bits.Mul(uint(x), uint(y))
	var cc uint
	lo, cc = bits.Add(lo, uint(c), 0)
	return Word(hi + cc), Word(lo)
}

// nlz returns the number of leading zeros in x.
func nlz(x Word) uint {
	return uint(bits.LeadingZeros(uint(x)))
}

// addVV computes z = x + y element-wise and returns the carry (0 or 1).
func addVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Add(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// subVV computes z = x - y element-wise and returns the borrow (0 or 1).
func subVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Sub(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// addVW computes z = x + y where y is a single word, and returns the carry.
func addVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := 0; i < len(z) && i < len(x); i++ {
		zi, cc := bits.Add(uint(x[i]), uint(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// subVW computes z = x - y where y is a single word, and returns the borrow.
func subVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := 0; i < len(z) && i < len(x); i++ {
		zi, cc := bits.Sub(uint(x[i]), uint(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// shlVU computes z = x << s (0 <= s < _W) and returns the shifted-out
// high bits.
func shlVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return
	}
	if len(z) == 0 {
		return
	}
	s &= _W - 1 // hint to the compiler that shifts by s don't need guard code
	ŝ := _W - s
	ŝ &= _W - 1 // ditto
	c = x[len(z)-1] >> ŝ
	for i := len(z) - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>ŝ
	}
	z[0] = x[0] << s
	return
}

// shrVU computes z = x >> s (0 <= s < _W) and returns the shifted-out
// low bits.
func shrVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return
	}
	if len(z) == 0 {
		return
	}
	s &= _W - 1
	ŝ := _W - s
	ŝ &= _W - 1
	c = x[0] << ŝ
	for i := 0; i < len(z)-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<ŝ
	}
	z[len(z)-1] = x[len(z)-1] >> s
	return
}

// mulAddVWW computes z = x*y + r element-wise and returns the carry.
func mulAddVWW(z, x []Word, y, r Word) (c Word) {
	c = r
	for i := 0; i < len(z) && i < len(x); i++ {
		c, z[i] = mulAddWWW(x[i], y, c)
	}
	return
}

// addMulVVW computes z += x*y where y is a single word, and returns the
// carry.
func addMulVVW(z, x []Word, y Word) (c Word) {
	for i := 0; i < len(z) && i < len(x); i++ {
		z1, z0 := mulAddWWW(x[i], y, z[i])
		lo, cc := bits.Add(uint(z0), uint(c), 0)
		c, z[i] = Word(cc), Word(lo)
		c += z1
	}
	return
}

// divWW returns the quotient and remainder of (x1<<_W + x0) / y.
// The caller must ensure x1 < y so the quotient fits in one word.
func divWW(x1, x0, y Word) (q, r Word) {
	qq, rr := bits.Div(uint(x1), uint(x0), uint(y))
	return Word(qq), Word(rr)
}

// divWVW divides the multi-word dividend (xn, x...) by the single word y,
// storing the quotient in z and returning the remainder. xn is the initial
// high word carried into the division (usually 0).
func divWVW(z []Word, xn Word, x []Word, y Word) (r Word) {
	r = xn
	for i := len(z) - 1; i >= 0; i-- {
		z[i], r = divWW(r, x[i], y)
	}
	return r
}

// greaterThan reports whether the double-word value (x1, x2) exceeds
// (y1, y2), most significant word first.
func greaterThan(x1, x2, y1, y2 Word) bool {
	return x1 > y1 || x1 == y1 && x2 > y2
}
