package bigint

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"testing"
)

func intToBig(x Int) *big.Int {
	b := natToBig(x.abs)
	if x.neg {
		b.Neg(b)
	}
	return b
}

func intFromBig(b *big.Int) Int {
	return makeInt(b.Sign() < 0, natFromBig(b))
}

func randInt(rng *rand.Rand, maxWords int) Int {
	abs := randNat(rng, rng.Intn(maxWords+1))
	return makeInt(rng.Intn(2) == 0, abs)
}

func checkInt(t *testing.T, op string, got Int, want *big.Int) {
	t.Helper()
	if intToBig(got).Cmp(want) != 0 {
		t.Errorf("%s = %s, want %s", op, got, want)
	}
	if len(got.abs) == 0 && got.neg {
		t.Errorf("%s: negative zero %v", op, got)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	cases := []int64{0, 1, -1, 42, -42, math.MaxInt64, math.MinInt64}
	for _, v := range cases {
		x := New(v)
		if got, err := x.ToInt64(); err != nil || got != v {
			t.Errorf("New(%d) round trip = (%d, %v)", v, got, err)
		}
	}

	x := NewUint64(math.MaxUint64)
	if got, err := x.ToUint64(); err != nil || got != math.MaxUint64 {
		t.Errorf("NewUint64 round trip = (%d, %v)", got, err)
	}
}

func TestZeroCanonical(t *testing.T) {
	t.Parallel()

	zeros := []Int{
		{},
		New(0),
		New(5).Sub(New(5)),
		New(-5).Add(New(5)),
		New(-7).Mul(New(0)),
		New(0).Neg(),
		New(3).Rsh(10),
	}
	for i, z := range zeros {
		if !z.IsZero() || z.neg || len(z.abs) != 0 || z.Sign() != 0 {
			t.Errorf("case %d: not canonical zero: neg=%v abs=%v", i, z.neg, z.abs)
		}
		if !z.Equal(Zero) {
			t.Errorf("case %d: not Equal(Zero)", i)
		}
		if z.Hash() != Zero.Hash() {
			t.Errorf("case %d: zero hash differs", i)
		}
	}
}

func TestAddSub(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(40))
	for i := 0; i < 300; i++ {
		x := randInt(rng, 10)
		y := randInt(rng, 10)
		bx, by := intToBig(x), intToBig(y)

		checkInt(t, fmt.Sprintf("%s + %s", x, y), x.Add(y), new(big.Int).Add(bx, by))
		checkInt(t, fmt.Sprintf("%s - %s", x, y), x.Sub(y), new(big.Int).Sub(bx, by))
	}
}

func TestMul(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(41))
	for i := 0; i < 200; i++ {
		x := randInt(rng, 10)
		y := randInt(rng, 10)
		want := new(big.Int).Mul(intToBig(x), intToBig(y))
		checkInt(t, fmt.Sprintf("%s * %s", x, y), x.Mul(y), want)
	}
}

func TestMulScenario(t *testing.T) {
	t.Parallel()

	x := MustParse("9588669891916142")
	y := MustParse("7452469135154800")
	want := MustParse("71459266416693160362545788781600")
	if got := x.Mul(y); !got.Equal(want) {
		t.Errorf("Mul = %s, want %s", got, want)
	}
}

func TestSquare(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		x := randInt(rng, 10)
		want := new(big.Int).Mul(intToBig(x), intToBig(x))
		checkInt(t, "Square", x.Square(), want)
		checkInt(t, "Mul self", x.Mul(x), want)
	}
}

func TestDivModSigns(t *testing.T) {
	t.Parallel()

	// quotient truncates toward zero, remainder takes the dividend sign
	cases := []struct {
		x, y, q, r int64
	}{
		{1024, 100, 10, 24},
		{1024, -100, -10, 24},
		{-1024, 100, -10, -24},
		{-1024, -100, 10, -24},
		{7, 3, 2, 1},
		{-7, 3, -2, -1}, // floor division would give (-3, 2)
	}
	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("%d_div_%d", tc.x, tc.y), func(t *testing.T) {
			t.Parallel()
			q, r, err := New(tc.x).DivMod(New(tc.y))
			if err != nil {
				t.Fatalf("DivMod error: %v", err)
			}
			if !q.Equal(New(tc.q)) || !r.Equal(New(tc.r)) {
				t.Errorf("DivMod(%d, %d) = (%s, %s), want (%d, %d)",
					tc.x, tc.y, q, r, tc.q, tc.r)
			}
		})
	}
}

func TestDivModRandom(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(43))
	for i := 0; i < 200; i++ {
		x := randInt(rng, 15)
		y := randInt(rng, 8)
		if y.IsZero() {
			continue
		}
		q, r, err := x.DivMod(y)
		if err != nil {
			t.Fatalf("DivMod error: %v", err)
		}
		wantQ, wantR := new(big.Int).QuoRem(intToBig(x), intToBig(y), new(big.Int))
		checkInt(t, "quotient", q, wantQ)
		checkInt(t, "remainder", r, wantR)

		// division identity: x == q*y + r
		if !q.Mul(y).Add(r).Equal(x) {
			t.Fatalf("identity violated for %s / %s", x, y)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	t.Parallel()

	x := New(10)
	if _, err := x.Div(Zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Div: got %v, want ErrDivisionByZero", err)
	}
	if _, err := x.Mod(Zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Mod: got %v, want ErrDivisionByZero", err)
	}
	if _, _, err := Zero.DivMod(Zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("DivMod: got %v, want ErrDivisionByZero", err)
	}
}

func TestPow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base int64
		n    uint64
		want string
	}{
		{0, 0, "1"},
		{0, 5, "0"},
		{2, 10, "1024"},
		{-3, 2, "9"},
		{-3, 3, "-27"},
		{10, 30, "1000000000000000000000000000000"},
		{-1, 1000001, "-1"},
	}
	for _, tc := range cases {
		got := New(tc.base).Pow(tc.n)
		if got.String() != tc.want {
			t.Errorf("Pow(%d, %d) = %s, want %s", tc.base, tc.n, got, tc.want)
		}
	}
}

func TestShifts(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(44))
	for i := 0; i < 200; i++ {
		x := randInt(rng, 6)
		s := uint(rng.Intn(200))
		bx := intToBig(x)

		checkInt(t, fmt.Sprintf("%s << %d", x, s), x.Lsh(s), new(big.Int).Lsh(bx, s))
		checkInt(t, fmt.Sprintf("%s >> %d", x, s), x.Rsh(s), new(big.Int).Rsh(bx, s))
	}

	// arithmetic right shift floors for negative values
	if got := New(-7).Rsh(1); !got.Equal(New(-4)) {
		t.Errorf("-7 >> 1 = %s, want -4", got)
	}
	if got := New(-1).Rsh(100); !got.Equal(New(-1)) {
		t.Errorf("-1 >> 100 = %s, want -1", got)
	}
	if got := New(-3).Rsh(10); !got.Equal(New(-1)) {
		t.Errorf("-3 >> 10 = %s, want -1", got)
	}
}

func TestBitwise(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(45))
	for i := 0; i < 300; i++ {
		x := randInt(rng, 6)
		y := randInt(rng, 6)
		bx, by := intToBig(x), intToBig(y)

		checkInt(t, fmt.Sprintf("%s & %s", x, y), x.And(y), new(big.Int).And(bx, by))
		checkInt(t, fmt.Sprintf("%s | %s", x, y), x.Or(y), new(big.Int).Or(bx, by))
		checkInt(t, fmt.Sprintf("%s ^ %s", x, y), x.Xor(y), new(big.Int).Xor(bx, by))
		checkInt(t, fmt.Sprintf("^%s", x), x.Not(), new(big.Int).Not(bx))
	}
}

func TestNotIdentities(t *testing.T) {
	t.Parallel()

	// ^x == -x - 1, and ^^x == x
	for _, v := range []int64{0, 1, -1, 42, -42, math.MaxInt64, math.MinInt64} {
		x := New(v)
		if got := x.Not(); !got.Equal(New(0).Sub(x).Dec()) {
			t.Errorf("Not(%d) = %s", v, got)
		}
		if got := x.Not().Not(); !got.Equal(x) {
			t.Errorf("Not(Not(%d)) = %s", v, got)
		}
	}
}

func TestIncDec(t *testing.T) {
	t.Parallel()

	cases := []struct{ v, inc, dec int64 }{
		{0, 1, -1},
		{1, 2, 0},
		{-1, 0, -2},
		{41, 42, 40},
		{-42, -41, -43},
	}
	for _, tc := range cases {
		if got := New(tc.v).Inc(); !got.Equal(New(tc.inc)) {
			t.Errorf("Inc(%d) = %s, want %d", tc.v, got, tc.inc)
		}
		if got := New(tc.v).Dec(); !got.Equal(New(tc.dec)) {
			t.Errorf("Dec(%d) = %s, want %d", tc.v, got, tc.dec)
		}
	}

	// crossing a word boundary
	x := NewUint64(math.MaxUint64)
	if got := x.Inc().Dec(); !got.Equal(x) {
		t.Errorf("Inc/Dec round trip = %s, want %s", got, x)
	}
}

func TestCmpSign(t *testing.T) {
	t.Parallel()

	vals := []int64{-100, -1, 0, 1, 100}
	for _, a := range vals {
		for _, b := range vals {
			got := New(a).Cmp(New(b))
			want := 0
			if a < b {
				want = -1
			} else if a > b {
				want = 1
			}
			if got != want {
				t.Errorf("Cmp(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}

	if New(-5).Sign() != -1 || New(5).Sign() != 1 || Zero.Sign() != 0 {
		t.Error("Sign misreports")
	}
	if got := New(-5).Abs(); !got.Equal(New(5)) {
		t.Errorf("Abs(-5) = %s", got)
	}
	if got := New(5).Neg(); !got.Equal(New(-5)) {
		t.Errorf("Neg(5) = %s", got)
	}
}

func TestHash(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(46))
	seen := make(map[uint64]string)
	for i := 0; i < 500; i++ {
		x := randInt(rng, 4)
		h := x.Hash()

		// equal values hash equally regardless of construction path
		y := MustParse(x.String())
		if y.Hash() != h {
			t.Fatalf("hash of %s differs across constructions", x)
		}

		if prev, ok := seen[h]; ok && prev != x.String() {
			t.Logf("collision between %s and %s", prev, x)
		}
		seen[h] = x.String()
	}

	if New(5).Hash() == New(-5).Hash() {
		t.Error("sign not mixed into hash")
	}
}

func TestBit(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(47))
	for i := 0; i < 100; i++ {
		x := randInt(rng, 3)
		bx := intToBig(x)
		for _, pos := range []uint{0, 1, 7, 63, 64, 100, 200} {
			if got, want := x.Bit(pos), bx.Bit(int(pos)); got != want {
				t.Errorf("Bit(%s, %d) = %d, want %d", x, pos, got, want)
			}
		}
	}
}
