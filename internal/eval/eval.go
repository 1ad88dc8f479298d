//go:generate mockgen -source=eval.go -destination=mocks/mock_eval.go -package=mocks

// Package eval parses and evaluates integer expressions over the
// bigint engine. The grammar covers the operator surface of the core:
// + - * / % ** << >> & | ^ ~ with parentheses, decimal and 0x literals,
// and underscore digit separators.
package eval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// Evaluator evaluates a single expression. The app, server, and TUI all
// consume this interface so tests can substitute a mock.
type Evaluator interface {
	Evaluate(ctx context.Context, expr string) (bigint.Int, error)
}

// Engine is the production Evaluator.
type Engine struct {
	log zerolog.Logger
}

// NewEngine returns an Engine logging through the given logger.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{log: log}
}

// Evaluate parses and evaluates expr. Errors carry positions within
// expr (*SyntaxError, *bigint.ParseError) or come from the bigint error
// taxonomy (bigint.ErrDivisionByZero, *bigint.RangeError).
func (e *Engine) Evaluate(ctx context.Context, expr string) (bigint.Int, error) {
	start := time.Now()
	root, err := parse(expr)
	if err != nil {
		return bigint.Int{}, err
	}
	v, err := e.walk(ctx, expr, root)
	if err != nil {
		return bigint.Int{}, err
	}
	e.log.Debug().
		Str("expr", expr).
		Int("result_bits", v.BitLen()).
		Dur("elapsed", time.Since(start)).
		Msg("expression evaluated")
	return v, nil
}

// walk evaluates the tree bottom-up. Context cancellation is checked at
// every node so a pathological expression (huge ** or <<) can be
// abandoned.
func (e *Engine) walk(ctx context.Context, expr string, n *node) (bigint.Int, error) {
	if err := ctx.Err(); err != nil {
		return bigint.Int{}, err
	}

	if n.op == OpLit {
		return n.lit, nil
	}

	x, err := e.walk(ctx, expr, n.lhs)
	if err != nil {
		return bigint.Int{}, err
	}
	if n.op == OpNeg {
		return x.Neg(), nil
	}
	if n.op == OpNot {
		return x.Not(), nil
	}

	y, err := e.walk(ctx, expr, n.rhs)
	if err != nil {
		return bigint.Int{}, err
	}

	switch n.op {
	case OpAdd:
		return x.Add(y), nil
	case OpSub:
		return x.Sub(y), nil
	case OpMul:
		return x.Mul(y), nil
	case OpDiv:
		return x.Div(y)
	case OpMod:
		return x.Mod(y)
	case OpAnd:
		return x.And(y), nil
	case OpOr:
		return x.Or(y), nil
	case OpXor:
		return x.Xor(y), nil
	case OpPow:
		exp, err := y.ToUint64()
		if err != nil {
			return bigint.Int{}, &SyntaxError{Expr: expr, Pos: n.pos,
				Msg: fmt.Sprintf("exponent %s is negative or too large", y)}
		}
		return x.Pow(exp), nil
	case OpLsh, OpRsh:
		s, err := y.ToUint64()
		if err != nil || s > math.MaxInt32 {
			return bigint.Int{}, &SyntaxError{Expr: expr, Pos: n.pos,
				Msg: fmt.Sprintf("shift count %s is negative or too large", y)}
		}
		if n.op == OpLsh {
			return x.Lsh(uint(s)), nil
		}
		return x.Rsh(uint(s)), nil
	}
	return bigint.Int{}, fmt.Errorf("eval: invalid op %v", n.op)
}

// Result pairs an expression with its outcome in batch evaluation.
type Result struct {
	Expr    string
	Value   bigint.Int
	Err     error
	Elapsed time.Duration
}

// EvaluateAll evaluates independent expressions concurrently, bounded
// by GOMAXPROCS. Results keep input order. The returned error is the
// context's, if it was canceled; per-expression failures land in their
// Result wrapped as apperrors.EvalError and do not stop the batch.
func EvaluateAll(ctx context.Context, ev Evaluator, exprs []string) ([]Result, error) {
	results := make([]Result, len(exprs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, expr := range exprs {
		i, expr := i, expr
		g.Go(func() error {
			start := time.Now()
			v, err := ev.Evaluate(ctx, expr)
			if err != nil {
				err = apperrors.EvalError{Expr: expr, Cause: err}
			}
			results[i] = Result{Expr: expr, Value: v, Err: err, Elapsed: time.Since(start)}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
