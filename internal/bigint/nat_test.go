package bigint

import (
	"fmt"
	"math/big"
	"math/rand"
	"testing"
)

// natToBig and natFromBig bridge to math/big, which shares the
// little-endian word layout, so the standard library can serve as an
// oracle for magnitude arithmetic.
func natToBig(x nat) *big.Int {
	bw := make([]big.Word, len(x))
	for i, w := range x {
		bw[i] = big.Word(w)
	}
	return new(big.Int).SetBits(bw)
}

func natFromBig(b *big.Int) nat {
	bw := b.Bits()
	z := make(nat, len(bw))
	for i, w := range bw {
		z[i] = Word(w)
	}
	return z.norm()
}

func randNat(rng *rand.Rand, n int) nat {
	if n == 0 {
		return nil
	}
	z := make(nat, n)
	for i := range z {
		z[i] = Word(rng.Uint64()) & _M
	}
	for z[n-1] == 0 {
		z[n-1] = Word(rng.Uint64()) & _M
	}
	return z
}

func checkNat(t *testing.T, op string, got nat, want *big.Int) {
	t.Helper()
	if natToBig(got).Cmp(want) != 0 {
		t.Errorf("%s = %s, want %s", op, natToBig(got).Text(16), want.Text(16))
	}
	// results must be normalized
	if len(got) > 0 && got[len(got)-1] == 0 {
		t.Errorf("%s: unnormalized result %v", op, got)
	}
}

func TestNatNorm(t *testing.T) {
	t.Parallel()

	z := nat{1, 2, 0, 0}.norm()
	if len(z) != 2 {
		t.Errorf("norm len = %d, want 2", len(z))
	}
	if z = (nat{0, 0}).norm(); len(z) != 0 {
		t.Errorf("norm of zero: len = %d, want 0", len(z))
	}
}

func TestNatSetUint64(t *testing.T) {
	t.Parallel()

	cases := []uint64{0, 1, 255, 1 << 32, 1<<64 - 1}
	for _, v := range cases {
		z := nat(nil).setUint64(v)
		if got := natToBig(z).Uint64(); got != v {
			t.Errorf("setUint64(%d) = %d", v, got)
		}
	}
}

func TestNatAddSub(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		x := randNat(rng, rng.Intn(20))
		y := randNat(rng, rng.Intn(20))
		bx, by := natToBig(x), natToBig(y)

		sum := nat(nil).add(x, y)
		checkNat(t, "add", sum, new(big.Int).Add(bx, by))

		// sub requires x >= y
		lo, hi := x, y
		if lo.cmp(hi) > 0 {
			lo, hi = hi, lo
		}
		diff := nat(nil).sub(hi, lo)
		checkNat(t, "sub", diff, new(big.Int).Sub(natToBig(hi), natToBig(lo)))
	}
}

func TestNatSubUnderflowPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on underflow")
		}
	}()
	nat(nil).sub(nat{1}, nat{2})
}

func TestNatCmp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		x, y nat
		want int
	}{
		{nil, nil, 0},
		{nat{1}, nil, 1},
		{nil, nat{1}, -1},
		{nat{1, 2}, nat{3}, 1},
		{nat{3}, nat{1, 2}, -1},
		{nat{1, 2}, nat{1, 2}, 0},
		{nat{2, 1}, nat{1, 1}, 1},
	}
	for _, tc := range cases {
		if got := tc.x.cmp(tc.y); got != tc.want {
			t.Errorf("cmp(%v, %v) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestNatShift(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		x := randNat(rng, 1+rng.Intn(10))
		s := uint(rng.Intn(3 * _W))
		bx := natToBig(x)

		l := nat(nil).shl(x, s)
		checkNat(t, fmt.Sprintf("shl %d", s), l, new(big.Int).Lsh(bx, s))

		r := nat(nil).shr(x, s)
		checkNat(t, fmt.Sprintf("shr %d", s), r, new(big.Int).Rsh(bx, s))
	}
}

func TestNatBitwise(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		x := randNat(rng, rng.Intn(10))
		y := randNat(rng, rng.Intn(10))
		bx, by := natToBig(x), natToBig(y)

		checkNat(t, "and", nat(nil).and(x, y), new(big.Int).And(bx, by))
		checkNat(t, "or", nat(nil).or(x, y), new(big.Int).Or(bx, by))
		checkNat(t, "xor", nat(nil).xor(x, y), new(big.Int).Xor(bx, by))
		checkNat(t, "andNot", nat(nil).andNot(x, y), new(big.Int).AndNot(bx, by))
	}
}

func TestNatBitLen(t *testing.T) {
	t.Parallel()

	cases := []struct {
		x    nat
		want int
	}{
		{nil, 0},
		{nat{1}, 1},
		{nat{255}, 8},
		{nat{0, 1}, _W + 1},
	}
	for _, tc := range cases {
		if got := tc.x.bitLen(); got != tc.want {
			t.Errorf("bitLen(%v) = %d, want %d", tc.x, got, tc.want)
		}
	}
}

func TestNatBit(t *testing.T) {
	t.Parallel()

	x := nat(nil).shl(natOne, 100) // 2^100
	if got := x.bit(100); got != 1 {
		t.Errorf("bit(100) = %d, want 1", got)
	}
	if got := x.bit(99); got != 0 {
		t.Errorf("bit(99) = %d, want 0", got)
	}
	if got := x.bit(100000); got != 0 {
		t.Errorf("bit beyond length = %d, want 0", got)
	}
}

func TestNatTrailingZeroBits(t *testing.T) {
	t.Parallel()

	x := nat(nil).shl(nat{5}, 67)
	if got := x.trailingZeroBits(); got != 67 {
		t.Errorf("trailingZeroBits = %d, want 67", got)
	}
	if got := nat(nil).trailingZeroBits(); got != 0 {
		t.Errorf("trailingZeroBits(0) = %d, want 0", got)
	}
}
