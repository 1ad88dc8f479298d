package eval

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/bigint"
)

func testEngine() *Engine {
	return NewEngine(zerolog.Nop())
}

func evalString(t *testing.T, expr string) bigint.Int {
	t.Helper()
	v, err := testEngine().Evaluate(context.Background(), expr)
	if err != nil {
		t.Fatalf("Evaluate(%q) error: %v", expr, err)
	}
	return v
}

func TestEvaluate_KnownValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		expr string
		want string
	}{
		{"0", "0"},
		{"1 + 2", "3"},
		{"2 * 3 + 4", "10"},
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"10 / 3", "3"},
		{"10 % 3", "1"},
		{"-7 / 2", "-3"},
		{"-7 % 2", "-1"},
		{"10 % -3", "1"},
		{"2 ** 10", "1024"},
		{"2 ** 3 ** 2", "512"}, // right-associative
		{"-2 ** 2", "-4"},      // exponentiation binds tighter than unary minus
		{"(-2) ** 2", "4"},
		{"1 << 10", "1024"},
		{"-8 >> 1", "-4"},
		{"1024 >> 3 << 1", "256"},
		{"0xff & 0x0f", "15"},
		{"0xf0 | 0x0f", "255"},
		{"0xff ^ 0x0f", "240"},
		{"~0", "-1"},
		{"~~42", "42"},
		{"- - 5", "5"},
		{"+5", "5"},
		{"1_000_000 + 0xDEAD_BEEF", "3736928559"},
		{"9588669891916142 * 7452469135154800", "71459266416693160362545788781600"},
		{"2 ** 256 - 1", "115792089237316195423570985008687907853269984665640564039457584007913129639935"},
		{"6 & ~3", "4"},
		{"1 | 2 ^ 3 & 2", "1"}, // & before ^ before |
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.expr, func(t *testing.T) {
			t.Parallel()
			if got := evalString(t, tc.expr).String(); got != tc.want {
				t.Errorf("Evaluate(%q) = %s, want %s", tc.expr, got, tc.want)
			}
		})
	}
}

func TestEvaluate_SyntaxErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		expr string
		pos  int
	}{
		{"", 0},
		{"1 +", 3},
		{"* 2", 0},
		{"(1 + 2", 6},
		{"1 + 2)", 5},
		{"1 @ 2", 2},
		{"1 < 2", 2},
		{"()", 1},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("%q", tc.expr), func(t *testing.T) {
			t.Parallel()
			_, err := testEngine().Evaluate(context.Background(), tc.expr)
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("got %v, want *SyntaxError", err)
			}
			if serr.Pos != tc.pos {
				t.Errorf("Pos = %d, want %d", serr.Pos, tc.pos)
			}
		})
	}
}

func TestEvaluate_LiteralErrorPosition(t *testing.T) {
	t.Parallel()

	// a malformed literal reports its offset within the full expression
	_, err := testEngine().Evaluate(context.Background(), "1 + 0x")
	var perr *bigint.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *bigint.ParseError", err)
	}
	if perr.Offset != 6 {
		t.Errorf("Offset = %d, want 6", perr.Offset)
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"1 / 0", "1 % 0", "1 / (2 - 2)"} {
		_, err := testEngine().Evaluate(context.Background(), expr)
		if !errors.Is(err, bigint.ErrDivisionByZero) {
			t.Errorf("Evaluate(%q): got %v, want ErrDivisionByZero", expr, err)
		}
	}
}

func TestEvaluate_BadExponentAndShift(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"2 ** -1", "1 << -1", "1 >> (0 - 2)"} {
		_, err := testEngine().Evaluate(context.Background(), expr)
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Evaluate(%q): got %v, want *SyntaxError", expr, err)
		}
	}
}

func TestEvaluate_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testEngine().Evaluate(ctx, "1 + 2")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestEvaluateAll(t *testing.T) {
	t.Parallel()

	exprs := []string{"1 + 1", "2 * 3", "1 / 0", "2 ** 8"}
	results, err := EvaluateAll(context.Background(), testEngine(), exprs)
	if err != nil {
		t.Fatalf("EvaluateAll error: %v", err)
	}
	if len(results) != len(exprs) {
		t.Fatalf("got %d results, want %d", len(results), len(exprs))
	}

	wants := []string{"2", "6", "", "256"}
	for i, r := range results {
		if r.Expr != exprs[i] {
			t.Errorf("result %d out of order: %q", i, r.Expr)
		}
		if wants[i] == "" {
			if !errors.Is(r.Err, bigint.ErrDivisionByZero) {
				t.Errorf("result %d: got %v, want ErrDivisionByZero", i, r.Err)
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("result %d: unexpected error %v", i, r.Err)
			continue
		}
		if got := r.Value.String(); got != wants[i] {
			t.Errorf("result %d: %s, want %s", i, got, wants[i])
		}
	}
}
