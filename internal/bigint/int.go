// Package bigint implements arbitrary-precision signed integer
// arithmetic. Values are immutable: every operation returns a new Int
// and never mutates its operands, so values can be shared freely across
// goroutines without synchronization.
//
// An Int is represented as a sign flag plus a magnitude (a normalized
// little-endian word slice). Zero is canonical: its magnitude is empty
// and its sign flag is never set, so there is exactly one representation
// of zero.
package bigint

import "hash/fnv"

// An Int is an arbitrary-precision signed integer. The zero value is a
// usable representation of 0.
type Int struct {
	neg bool // sign; never set when abs is empty
	abs nat  // magnitude, little-endian, normalized
}

// Zero is the canonical zero value.
var Zero = Int{}

// One is the integer 1.
var One = Int{abs: nat{1}}

// New returns an Int with the value of v.
func New(v int64) Int {
	u := uint64(v)
	if v < 0 {
		u = -u
	}
	return Int{neg: v < 0, abs: nat(nil).setUint64(u)}
}

// NewUint64 returns an Int with the value of v.
func NewUint64(v uint64) Int {
	return Int{abs: nat(nil).setUint64(v)}
}

// make normalizes a candidate result, clearing the sign on a zero
// magnitude so zero stays canonical.
func makeInt(neg bool, abs nat) Int {
	if len(abs) == 0 {
		neg = false
	}
	return Int{neg: neg, abs: abs}
}

// Sign returns -1, 0, or +1 depending on whether x is negative, zero,
// or positive.
func (x Int) Sign() int {
	if len(x.abs) == 0 {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

// IsZero reports whether x is 0.
func (x Int) IsZero() bool { return len(x.abs) == 0 }

// BitLen returns the length of the absolute value of x in bits. The bit
// length of 0 is 0.
func (x Int) BitLen() int { return x.abs.bitLen() }

// Cmp compares x and y and returns -1, 0, or +1.
func (x Int) Cmp(y Int) int {
	// x < y  iff  sign(x) < sign(y), or signs equal and magnitudes order
	// accordingly (reversed when both negative)
	switch {
	case x.neg == y.neg:
		r := x.abs.cmp(y.abs)
		if x.neg {
			r = -r
		}
		return r
	case x.neg:
		return -1
	default:
		return 1
	}
}

// Equal reports whether x and y represent the same integer.
func (x Int) Equal(y Int) bool {
	return x.neg == y.neg && x.abs.cmp(y.abs) == 0
}

// Neg returns -x.
func (x Int) Neg() Int {
	return makeInt(!x.neg, x.abs)
}

// Abs returns |x|.
func (x Int) Abs() Int {
	return Int{abs: x.abs}
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	neg := x.neg
	var abs nat
	if x.neg == y.neg {
		// x + y == x + y
		// (-x) + (-y) == -(x + y)
		abs = nat(nil).add(x.abs, y.abs)
	} else {
		// x + (-y) == x - y == -(y - x)
		// (-x) + y == y - x == -(x - y)
		if x.abs.cmp(y.abs) >= 0 {
			abs = nat(nil).sub(x.abs, y.abs)
		} else {
			neg = !neg
			abs = nat(nil).sub(y.abs, x.abs)
		}
	}
	return makeInt(neg, abs)
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return x.Add(Int{neg: !y.neg, abs: y.abs})
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	if sameNat(x.abs, y.abs) {
		return Int{abs: nat(nil).sqr(x.abs)}
	}
	return makeInt(x.neg != y.neg, nat(nil).mul(x.abs, y.abs))
}

// Square returns x * x using the dedicated squaring path.
func (x Int) Square() Int {
	return Int{abs: nat(nil).sqr(x.abs)}
}

// sameNat reports whether x and y share the same backing array, which
// lets Mul route self-multiplication through sqr.
func sameNat(x, y nat) bool {
	return len(x) > 0 && len(x) == len(y) && &x[0] == &y[0]
}

// Div returns the quotient x / y truncated toward zero. It returns
// ErrDivisionByZero when y is zero.
func (x Int) Div(y Int) (Int, error) {
	q, _, err := x.DivMod(y)
	return q, err
}

// Mod returns the remainder x % y with the sign of x (truncated
// division). It returns ErrDivisionByZero when y is zero.
func (x Int) Mod(y Int) (Int, error) {
	_, r, err := x.DivMod(y)
	return r, err
}

// DivMod returns the quotient and remainder of x / y in a single
// division, satisfying x == q*y + r with |r| < |y| and r carrying the
// sign of x. It returns ErrDivisionByZero when y is zero.
func (x Int) DivMod(y Int) (q, r Int, err error) {
	if len(y.abs) == 0 {
		return Int{}, Int{}, ErrDivisionByZero
	}
	qa, ra := nat(nil).div(nil, x.abs, y.abs)
	q = makeInt(x.neg != y.neg, qa)
	r = makeInt(x.neg, ra)
	return q, r, nil
}

// Pow returns x**n for a non-negative exponent. Pow(0, 0) is 1.
func (x Int) Pow(n uint64) Int {
	if n == 0 {
		return One
	}
	abs := nat(nil).expNW(x.abs, n)
	// a negative base yields a negative result only for odd exponents
	return makeInt(x.neg && n&1 == 1, abs)
}

// Lsh returns x << n.
func (x Int) Lsh(n uint) Int {
	return makeInt(x.neg, nat(nil).shl(x.abs, n))
}

// Rsh returns x >> n with arithmetic (floor) semantics: for negative x
// the result rounds toward negative infinity, matching a two's
// complement shift.
func (x Int) Rsh(n uint) Int {
	if !x.neg {
		return makeInt(false, nat(nil).shr(x.abs, n))
	}
	// (-x) >> n == -((x-1) >> n + 1)
	t := nat(nil).sub(x.abs, natOne)
	t = t.shr(t, n)
	t = t.add(t, natOne)
	return makeInt(true, t)
}

// And returns x & y with two's complement semantics for negative
// operands.
func (x Int) And(y Int) Int {
	if x.neg == y.neg {
		if x.neg {
			// (-x) & (-y) == ^(x-1) & ^(y-1) == ^((x-1) | (y-1)) == -(((x-1) | (y-1)) + 1)
			x1 := nat(nil).sub(x.abs, natOne)
			y1 := nat(nil).sub(y.abs, natOne)
			t := nat(nil).or(x1, y1)
			t = t.add(t, natOne)
			return makeInt(true, t)
		}
		return makeInt(false, nat(nil).and(x.abs, y.abs))
	}

	// x & (-y) == x & ^(y-1) == x &^ (y-1)
	if x.neg {
		x, y = y, x
	}
	y1 := nat(nil).sub(y.abs, natOne)
	return makeInt(false, nat(nil).andNot(x.abs, y1))
}

// Or returns x | y with two's complement semantics for negative
// operands.
func (x Int) Or(y Int) Int {
	if x.neg == y.neg {
		if x.neg {
			// (-x) | (-y) == ^(x-1) | ^(y-1) == ^((x-1) & (y-1)) == -(((x-1) & (y-1)) + 1)
			x1 := nat(nil).sub(x.abs, natOne)
			y1 := nat(nil).sub(y.abs, natOne)
			t := nat(nil).and(x1, y1)
			t = t.add(t, natOne)
			return makeInt(true, t)
		}
		return makeInt(false, nat(nil).or(x.abs, y.abs))
	}

	// x | (-y) == x | ^(y-1) == ^((y-1) &^ x) == -(((y-1) &^ x) + 1)
	if x.neg {
		x, y = y, x
	}
	y1 := nat(nil).sub(y.abs, natOne)
	t := nat(nil).andNot(y1, x.abs)
	t = t.add(t, natOne)
	return makeInt(true, t)
}

// Xor returns x ^ y with two's complement semantics for negative
// operands.
func (x Int) Xor(y Int) Int {
	if x.neg == y.neg {
		if x.neg {
			// (-x) ^ (-y) == ^(x-1) ^ ^(y-1) == (x-1) ^ (y-1)
			x1 := nat(nil).sub(x.abs, natOne)
			y1 := nat(nil).sub(y.abs, natOne)
			return makeInt(false, nat(nil).xor(x1, y1))
		}
		return makeInt(false, nat(nil).xor(x.abs, y.abs))
	}

	// x ^ (-y) == x ^ ^(y-1) == ^(x ^ (y-1)) == -((x ^ (y-1)) + 1)
	if x.neg {
		x, y = y, x
	}
	y1 := nat(nil).sub(y.abs, natOne)
	t := nat(nil).xor(x.abs, y1)
	t = t.add(t, natOne)
	return makeInt(true, t)
}

// Not returns ^x, which equals -x - 1 in two's complement.
func (x Int) Not() Int {
	if x.neg {
		// ^(-x) == x - 1
		return makeInt(false, nat(nil).sub(x.abs, natOne))
	}
	// ^x == -(x + 1)
	return makeInt(true, nat(nil).add(x.abs, natOne))
}

// Inc returns x + 1.
func (x Int) Inc() Int {
	if x.neg {
		return makeInt(true, nat(nil).sub(x.abs, natOne))
	}
	return makeInt(false, nat(nil).add(x.abs, natOne))
}

// Dec returns x - 1.
func (x Int) Dec() Int {
	if x.neg || len(x.abs) == 0 {
		return makeInt(true, nat(nil).add(x.abs, natOne))
	}
	return makeInt(false, nat(nil).sub(x.abs, natOne))
}

// Hash returns a 64-bit hash of x. Because zero is canonical and
// magnitudes are normalized, equal values always hash equally.
func (x Int) Hash() uint64 {
	h := fnv.New64a()
	var b [8]byte
	if x.neg {
		b[0] = 1
	}
	h.Write(b[:1])
	for _, w := range x.abs {
		for i := 0; i < _S; i++ {
			b[i] = byte(w >> (8 * i))
		}
		h.Write(b[:_S])
	}
	return h.Sum64()
}

// Bit returns the value of the i'th bit of the two's complement
// representation of x.
func (x Int) Bit(i uint) uint {
	if !x.neg {
		return x.abs.bit(i)
	}
	// bit i of -x == bit i of ^(x-1)
	t := nat(nil).sub(x.abs, natOne)
	return t.bit(i) ^ 1
}
