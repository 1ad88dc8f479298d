// Division and modulo on magnitudes. Single-word divisors take a one-pass
// long division; multi-word divisors are normalized so the top bit of the
// divisor is set and handled by Knuth's algorithm D with quotient-digit
// correction. Very large divisors switch to a recursive blockwise scheme
// (Burnikel/Ziegler style) that reduces each step to half-size divisions
// and multiplications.

package bigint

import "math/bits"

// div computes q = u/v and r = u%v, sharing the work between the two.
// v must not be zero; the signed layer reports division by zero before
// calling down here.
func (z nat) div(z2, u, v nat) (q, r nat) {
	if len(v) == 0 {
		panic("bigint: division by zero")
	}

	if u.cmp(v) < 0 {
		q = z[:0]
		r = z2.set(u)
		return
	}

	if len(v) == 1 {
		var r2 Word
		q, r2 = z.divW(u, v[0])
		r = z2.setWord(r2)
		return
	}

	q, r = z.divLarge(z2, u, v)
	return
}

// divW computes q = x/y and the remainder for a single-word divisor,
// one pass over the dividend, most significant word first.
func (z nat) divW(x nat, y Word) (q nat, r Word) {
	m := len(x)
	switch {
	case y == 0:
		panic("bigint: division by zero")
	case y == 1:
		q = z.set(x)
		return
	case m == 0:
		q = z[:0]
		return
	}
	// m > 0

	z = z.make(m)
	r = divWVW(z, 0, x, y)
	q = z.norm()
	return
}

// modW returns x % d for a single-word d.
func (x nat) modW(d Word) (r Word) {
	for i := len(x) - 1; i >= 0; i-- {
		_, r = divWW(r, x[i], d)
	}
	return r
}

// divLarge computes q = u/v and r = u%v for len(v) > 1 and u >= v.
func (z nat) divLarge(z2, uIn, vIn nat) (q, r nat) {
	n := len(vIn)
	m := len(uIn) - n

	// D1: normalize so the divisor's most significant bit is set;
	// quotient digits estimated from the top words are then off by at
	// most two, fixed up below.
	shift := nlz(vIn[n-1])
	v := make(nat, n)
	shlVU(v, vIn, shift)
	u := z2.make(len(uIn) + 1)
	u[len(uIn)] = shlVU(u[0:len(uIn)], uIn, shift)

	q = z.make(m + 1)
	if n >= divRecursiveThreshold && m >= divRecursiveThreshold {
		q.clear()
		q.divRecursive(u, v)
	} else {
		q.divBasic(u, v)
	}
	q = q.norm()

	// D8: denormalize the remainder.
	shrVU(u, u, shift)
	r = u.norm()
	return q, r
}

// divBasic implements Knuth's long division (algorithm D).
// It overwrites q with ⌊u/v⌋ and overwrites u with the remainder r.
// q must be large enough to hold ⌊u/v⌋; v must be normalized with its
// most significant bit set and len(v) >= 2.
func (q nat) divBasic(u, v nat) {
	n := len(v)
	m := len(u) - n

	qhatvp := getNat(n + 1)
	qhatv := *qhatvp

	vn1 := v[n-1]
	vn2 := v[n-2]

	for j := m; j >= 0; j-- {
		// D3: compute the 2-by-1 digit estimate q̂ from the top words,
		// then correct it downward while q̂·v_{n-2} exceeds the partial
		// remainder. Knuth shows this leaves q̂ off by at most one.
		qhat := Word(_M)
		var ujn Word
		if j+n < len(u) {
			ujn = u[j+n]
		}
		if ujn != vn1 {
			var rhat Word
			qhat, rhat = divWW(ujn, u[j+n-1], vn1)

			x1, x2 := mulWW(qhat, vn2)
			for greaterThan(x1, x2, rhat, u[j+n-2]) {
				qhat--
				prevRhat := rhat
				rhat += vn1
				// tests for overflow of rhat
				if rhat < prevRhat {
					break
				}
				x1, x2 = mulWW(qhat, vn2)
			}
		}

		// D4: compute the remainder u - (q̂·v) << (_W*j).
		qhatv[n] = mulAddVWW(qhatv[0:n], v, qhat, 0)
		qhl := len(qhatv)
		if j+qhl > len(u) && qhatv[n] == 0 {
			qhl--
		}
		c := subVV(u[j:j+qhl], u[j:j+qhl], qhatv)
		if c != 0 {
			// D6: q̂ was one too large; add v back.
			cc := addVV(u[j:j+n], u[j:j+n], v)
			if j+n < len(u) {
				u[j+n] += cc
			}
			qhat--
		}

		if j == m && m == len(q) && qhat == 0 {
			continue
		}
		q[j] = qhat
	}

	putNat(qhatvp)
}

// divRecursive computes q = u/v, leaving the remainder in u.
// v must be normalized with its most significant bit set, and both the
// divisor and the quotient must span at least divRecursiveThreshold
// words. q must be large enough to hold the quotient.
func (z nat) divRecursive(u, v nat) {
	// Recursion depth is (much) less than 2·log₂(len(v)).
	recDepth := 2 * bits.Len(uint(len(v)))
	tmp := getNat(3 * len(v))
	temps := make([]*nat, recDepth)

	z.clear()
	z.divRecursiveStep(u, v, 0, tmp, temps)

	for _, t := range temps {
		if t != nil {
			putNat(t)
		}
	}
	putNat(tmp)
}

// divRecursiveStep computes the division of u by v, writing the quotient
// into z (which must be zeroed and large enough) and the remainder into
// u. It produces the quotient in blocks of B = len(v)/2 words: for each
// block, a trial quotient is computed from word-prefixes of the operands
// by a half-size recursive division, then corrected downward by whole
// multiples of v. The prefix property
//
//	u = u1<<s + u0, v = v1<<s + v0  ⇒  ⌊u1/v1⌋ >= ⌊u/v⌋
//
// guarantees the trial quotient never underestimates, and with s = B-1
// it overestimates by at most 2.
func (z nat) divRecursiveStep(u, v nat, depth int, tmp *nat, temps []*nat) {
	u = u.norm()
	v = v.norm()

	if len(u) == 0 {
		z.clear()
		return
	}
	n := len(v)
	if n < divRecursiveThreshold {
		z.divBasic(u, v)
		return
	}
	m := len(u) - n
	if m < 0 {
		return
	}

	B := n / 2

	// Allocate a nat for the trial quotients below.
	if temps[depth] == nil {
		temps[depth] = getNat(n)
	} else {
		*temps[depth] = temps[depth].make(B + 1)
	}

	j := m
	for j > B {
		s := B - 1
		// Except for the first step, the top words of u are a division
		// remainder, so the block quotient fits in B words.
		uu := u[j-B:]

		qhat := *temps[depth]
		qhat.clear()
		qhat.divRecursiveStep(uu[s:B+n], v[s:], depth+1, tmp, temps)
		qhat = qhat.norm()

		// The recursive call left the remainder of dividing by v[s:] in
		// the top words of uu; only q̂·v[:s] remains to be subtracted.
		qhatv := tmp.make(3 * n)
		qhatv.clear()
		qhatv = qhatv.mul(qhat, v[:s])
		for i := 0; i < 2; i++ {
			e := qhatv.cmp(uu.norm())
			if e <= 0 {
				break
			}
			subVW(qhat, qhat, 1)
			c := subVV(qhatv[:s], qhatv[:s], v[:s])
			if len(qhatv) > s {
				subVW(qhatv[s:], qhatv[s:], c)
			}
			addAt(uu[s:], v[s:], 0)
		}
		if qhatv.cmp(uu.norm()) > 0 {
			panic("bigint: impossible")
		}
		c := subVV(uu[:len(qhatv)], uu[:len(qhatv)], qhatv)
		if c > 0 {
			subVW(uu[len(qhatv):], uu[len(qhatv):], c)
		}
		addAt(z, qhat, j-B)
		j -= B
	}

	// Now u < (v << B·_W); compute the low quotient bits the same way.
	s := B - 1
	qhat := *temps[depth]
	qhat.clear()
	qhat.divRecursiveStep(u[s:].norm(), v[s:], depth+1, tmp, temps)
	qhat = qhat.norm()
	qhatv := tmp.make(3 * n)
	qhatv.clear()
	qhatv = qhatv.mul(qhat, v[:s])
	for i := 0; i < 2; i++ {
		if e := qhatv.cmp(u.norm()); e > 0 {
			subVW(qhat, qhat, 1)
			c := subVV(qhatv[:s], qhatv[:s], v[:s])
			if len(qhatv) > s {
				subVW(qhatv[s:], qhatv[s:], c)
			}
			addAt(u[s:], v[s:], 0)
		}
	}
	if qhatv.cmp(u.norm()) > 0 {
		panic("bigint: impossible")
	}
	c := subVV(u[:len(qhatv)], u[:len(qhatv)], qhatv)
	if c > 0 {
		c = subVW(u[len(qhatv):], u[len(qhatv):], c)
	}
	if c > 0 {
		panic("bigint: impossible")
	}

	addAt(z, qhat.norm(), 0)
}
