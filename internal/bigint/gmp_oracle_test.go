//go:build gmp

package bigint

import (
	"math/rand"
	"testing"

	"github.com/ncw/gmp"
)

// Cross-checks against libgmp, the reference arbitrary-precision
// implementation. Build with -tags gmp on hosts with the GMP C library
// installed; CI without it still runs the math/big oracle tests.

func gmpInt(t *testing.T, x Int) *gmp.Int {
	t.Helper()
	z, ok := new(gmp.Int).SetString(x.String(), 10)
	if !ok {
		t.Fatalf("gmp rejected %q", x.String())
	}
	return z
}

func TestMulVsGMP(t *testing.T) {
	rng := rand.New(rand.NewSource(60))
	for i := 0; i < 100; i++ {
		x := randInt(rng, 64)
		y := randInt(rng, 64)
		got := x.Mul(y)
		want := new(gmp.Int).Mul(gmpInt(t, x), gmpInt(t, y))
		if got.String() != want.String() {
			t.Fatalf("Mul mismatch: %s * %s = %s, gmp says %s", x, y, got, want)
		}
	}
}

func TestDivModVsGMP(t *testing.T) {
	rng := rand.New(rand.NewSource(61))
	for i := 0; i < 100; i++ {
		x := randInt(rng, 64)
		y := randInt(rng, 32)
		if y.IsZero() {
			continue
		}
		q, r, err := x.DivMod(y)
		if err != nil {
			t.Fatalf("DivMod error: %v", err)
		}
		wantQ := new(gmp.Int).Quo(gmpInt(t, x), gmpInt(t, y))
		wantR := new(gmp.Int).Rem(gmpInt(t, x), gmpInt(t, y))
		if q.String() != wantQ.String() || r.String() != wantR.String() {
			t.Fatalf("DivMod mismatch for %s / %s: got (%s, %s), gmp says (%s, %s)",
				x, y, q, r, wantQ, wantR)
		}
	}
}

func TestPowVsGMP(t *testing.T) {
	rng := rand.New(rand.NewSource(62))
	for i := 0; i < 20; i++ {
		x := randInt(rng, 3)
		n := uint64(rng.Intn(200))
		got := x.Pow(n)
		want := new(gmp.Int).Exp(gmpInt(t, x), gmp.NewInt(int64(n)), nil)
		if got.String() != want.String() {
			t.Fatalf("Pow(%s, %d) = %s, gmp says %s", x, n, got, want)
		}
	}
}
