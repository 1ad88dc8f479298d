// Radix conversion on magnitudes. Decimal parsing accumulates digit
// batches with multiply-by-power-of-ten-and-add; hex parsing packs four
// bits per digit directly into words. Formatting runs the other way:
// power-of-two bases extract fixed-width bit groups, decimal repeatedly
// divides by the largest power of ten fitting in a Word.

package bigint

import (
	"math"
	"math/bits"
)

const (
	lowercaseDigits = "0123456789abcdef"
	uppercaseDigits = "0123456789ABCDEF"
)

// digitVal returns the value of the ASCII digit ch, or ok == false if ch
// is not a digit in any supported base.
func digitVal(ch byte) (d Word, ok bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return Word(ch - '0'), true
	case 'a' <= ch && ch <= 'f':
		return Word(ch-'a'+10), true
	case 'A' <= ch && ch <= 'F':
		return Word(ch-'A'+10), true
	}
	return 0, false
}

// maxPow returns (b**n, n) such that b**n is the largest power of b
// fitting in a Word.
func maxPow(b Word) (p Word, n int) {
	p, n = b, 1
	for lim := _M / b; p <= lim; {
		p *= b
		n++
	}
	return
}

// scan sets z to the value of the digit string s interpreted in the
// given base (10 or 16). Underscore separators are skipped. It returns
// the number of digits consumed and the byte index of the first invalid
// character, or -1 if the whole string is valid.
func (z nat) scan(s string, base int) (res nat, count int, bad int) {
	if base == 16 {
		return z.scanHex(s)
	}
	return z.scanDec(s)
}

// scanDec accumulates decimal digits in batches: up to n1 digits are
// collected into a single Word, then folded in with one
// multiply-by-10^n1-and-add pass over z.
func (z nat) scanDec(s string) (res nat, count int, bad int) {
	bn, n1 := maxPow(10)

	z = z[:0]
	var di Word // pending digits
	var i int   // number of pending digits
	for off := 0; off < len(s); off++ {
		ch := s[off]
		if ch == '_' {
			continue
		}
		d, ok := digitVal(ch)
		if !ok || d >= 10 {
			return z.norm(), count, off
		}
		di = di*10 + d
		count++
		if i++; i == n1 {
			z = z.mulAddWW(z, bn, di)
			di = 0
			i = 0
		}
	}
	if i > 0 {
		p := Word(10)
		for ; i > 1; i-- {
			p *= 10
		}
		z = z.mulAddWW(z, p, di)
	}
	return z.norm(), count, -1
}

// scanHex packs hex digits four bits at a time, least significant digit
// into the low bits of z[0].
func (z nat) scanHex(s string) (res nat, count int, bad int) {
	// validate and collect digit values, most significant first
	var buf []byte
	for off := 0; off < len(s); off++ {
		ch := s[off]
		if ch == '_' {
			continue
		}
		d, ok := digitVal(ch)
		if !ok {
			return nil, count, off
		}
		buf = append(buf, byte(d))
		count++
	}

	n := len(buf)
	z = z.make((n*4 + _W - 1) / _W)
	z.clear()
	for i := 0; i < n; i++ {
		d := buf[n-1-i] // i'th least significant digit
		z[i*4/_W] |= Word(d) << (uint(i*4) % _W)
	}
	return z.norm(), count, -1
}

// utoa converts x to its ASCII representation in the given base
// (2 <= base <= 16) without sign, prefix, or grouping.
func (x nat) utoa(base int, upper bool) []byte {
	if base < 2 || base > 16 {
		panic("bigint: invalid base")
	}
	digits := lowercaseDigits
	if upper {
		digits = uppercaseDigits
	}

	if len(x) == 0 {
		return []byte{'0'}
	}
	// len(x) > 0

	// worst-case digit count
	i := int(float64(x.bitLen())/math.Log2(float64(base))) + 1
	s := make([]byte, i)

	b := Word(base)
	if b == b&-b {
		// power-of-two base: extract shift-sized bit groups directly,
		// carrying partial digits across word boundaries
		shift := uint(bits.TrailingZeros(uint(b)))
		mask := Word(1<<shift - 1)
		w := x[0]         // current word
		nbits := uint(_W) // number of unprocessed bits in w

		// convert less-significant words (include leading zeros)
		for k := 1; k < len(x); k++ {
			// convert full digits
			for nbits >= shift {
				i--
				s[i] = digits[w&mask]
				w >>= shift
				nbits -= shift
			}

			if nbits == 0 {
				// no partial digit remaining, just advance
				w = x[k]
				nbits = _W
			} else {
				// partial digit spans w (== x[k-1]) and x[k]
				w |= x[k] << nbits
				i--
				s[i] = digits[w&mask]

				w = x[k] >> (shift - nbits)
				nbits = _W - (shift - nbits)
			}
		}

		// convert digits of most-significant word (omit leading zeros)
		for w != 0 {
			i--
			s[i] = digits[w&mask]
			w >>= shift
		}
	} else {
		// repeatedly divide by the largest power of the base fitting in
		// a Word, collecting fixed-size digit groups
		bb, ndigits := maxPow(b)
		q := nat(nil).set(x)
		for len(q) > 0 {
			var r Word
			q, r = q.divW(q, bb)
			if len(q) == 0 {
				// skip leading zeros in the most-significant group
				for r != 0 {
					i--
					s[i] = digits[r%b]
					r /= b
				}
			} else {
				for j := 0; j < ndigits; j++ {
					i--
					s[i] = digits[r%b]
					r /= b
				}
			}
		}
	}

	return s[i:]
}
