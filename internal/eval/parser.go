package eval

import (
	"errors"
	"fmt"

	"github.com/agbru/bigcalc/internal/bigint"
)

// Op identifies an expression node. The set is closed: dispatch happens
// through switches on this enum, never through strings or reflection.
type Op uint8

const (
	OpLit Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpLsh
	OpRsh
	OpAnd
	OpOr
	OpXor
	OpNeg // unary -
	OpNot // unary ~
)

func (op Op) String() string {
	switch op {
	case OpLit:
		return "lit"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpLsh:
		return "<<"
	case OpRsh:
		return ">>"
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpXor:
		return "^"
	case OpNeg:
		return "neg"
	case OpNot:
		return "~"
	}
	return "invalid"
}

// node is a parsed expression tree. Literal nodes carry their value;
// unary nodes use lhs only.
type node struct {
	op       Op
	lhs, rhs *node
	lit      bigint.Int
	pos      int
}

// Binding powers, loosest to tightest. Exponentiation binds tighter
// than unary minus, so -2**2 == -(2**2).
const (
	precOr = 1 + iota
	precXor
	precAnd
	precShift
	precAdd
	precMul
	precUnary
	precPow
)

func binaryOp(k tokenKind) (Op, int, bool) {
	switch k {
	case tokPipe:
		return OpOr, precOr, true
	case tokCaret:
		return OpXor, precXor, true
	case tokAmp:
		return OpAnd, precAnd, true
	case tokShl:
		return OpLsh, precShift, true
	case tokShr:
		return OpRsh, precShift, true
	case tokPlus:
		return OpAdd, precAdd, true
	case tokMinus:
		return OpSub, precAdd, true
	case tokStar:
		return OpMul, precMul, true
	case tokSlash:
		return OpDiv, precMul, true
	case tokPercent:
		return OpMod, precMul, true
	case tokStarStar:
		return OpPow, precPow, true
	}
	return 0, 0, false
}

type parser struct {
	lex lexer
	tok token
}

// parse turns an expression string into a tree, or a *SyntaxError /
// *bigint.ParseError positioned within the original input.
func parse(src string) (*node, error) {
	p := &parser{lex: lexer{src: src}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokEOF {
		return nil, &SyntaxError{Expr: src, Pos: 0, Msg: "empty expression"}
	}
	n, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %s", p.tok.kind)
	}
	return n, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Expr: p.lex.src, Pos: p.tok.pos, Msg: fmt.Sprintf(format, args...)}
}

// parseExpr is a precedence-climbing loop: fold in binary operators
// whose binding power exceeds minPrec. '**' is right-associative.
func (p *parser) parseExpr(minPrec int) (*node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, prec, ok := binaryOp(p.tok.kind)
		if !ok || prec <= minPrec {
			return lhs, nil
		}
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhsMin := prec
		if op == OpPow {
			rhsMin = prec - 1
		}
		rhs, err := p.parseExpr(rhsMin)
		if err != nil {
			return nil, err
		}
		lhs = &node{op: op, lhs: lhs, rhs: rhs, pos: pos}
	}
}

func (p *parser) parseUnary() (*node, error) {
	switch p.tok.kind {
	case tokPlus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseExpr(precUnary)
	case tokMinus:
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseExpr(precUnary)
		if err != nil {
			return nil, err
		}
		return &node{op: OpNeg, lhs: n, pos: pos}, nil
	case tokTilde:
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseExpr(precUnary)
		if err != nil {
			return nil, err
		}
		return &node{op: OpNot, lhs: n, pos: pos}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*node, error) {
	switch p.tok.kind {
	case tokNumber:
		v, err := bigint.Parse(p.tok.text)
		if err != nil {
			// reposition the literal error within the expression
			var perr *bigint.ParseError
			if errors.As(err, &perr) {
				return nil, &bigint.ParseError{
					Input:  p.lex.src,
					Offset: p.tok.pos + perr.Offset,
					Reason: perr.Reason,
				}
			}
			return nil, err
		}
		n := &node{op: OpLit, lit: v, pos: p.tok.pos}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.errorf("expected ')', found %s", p.tok.kind)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, p.errorf("expected number or '(', found %s", p.tok.kind)
}
