package eval

import "fmt"

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokStarStar
	tokShl
	tokShr
	tokAmp
	tokPipe
	tokCaret
	tokTilde
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokPercent:
		return "'%'"
	case tokStarStar:
		return "'**'"
	case tokShl:
		return "'<<'"
	case tokShr:
		return "'>>'"
	case tokAmp:
		return "'&'"
	case tokPipe:
		return "'|'"
	case tokCaret:
		return "'^'"
	case tokTilde:
		return "'~'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	}
	return "unknown token"
}

type token struct {
	kind tokenKind
	text string // literal text for tokNumber
	pos  int    // byte offset in the input
}

// SyntaxError describes a malformed expression. Pos is the byte offset
// of the offending token.
type SyntaxError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("eval: %s at offset %d in %q", e.Msg, e.Pos, e.Expr)
}

// lexer splits an expression into tokens. Number literals are consumed
// greedily and validated later by the bigint parser, which keeps digit
// and separator rules in one place.
type lexer struct {
	src string
	off int
}

func isDigitChar(c byte) bool {
	return c >= '0' && c <= '9' ||
		c >= 'a' && c <= 'f' ||
		c >= 'A' && c <= 'F' ||
		c == 'x' || c == 'X' || c == '_'
}

func (l *lexer) next() (token, error) {
	for l.off < len(l.src) && (l.src[l.off] == ' ' || l.src[l.off] == '\t') {
		l.off++
	}
	if l.off >= len(l.src) {
		return token{kind: tokEOF, pos: l.off}, nil
	}

	pos := l.off
	c := l.src[l.off]
	switch {
	case c >= '0' && c <= '9':
		end := l.off
		for end < len(l.src) && isDigitChar(l.src[end]) {
			end++
		}
		l.off = end
		return token{kind: tokNumber, text: l.src[pos:end], pos: pos}, nil
	case c == '+':
		l.off++
		return token{kind: tokPlus, pos: pos}, nil
	case c == '-':
		l.off++
		return token{kind: tokMinus, pos: pos}, nil
	case c == '*':
		if l.off+1 < len(l.src) && l.src[l.off+1] == '*' {
			l.off += 2
			return token{kind: tokStarStar, pos: pos}, nil
		}
		l.off++
		return token{kind: tokStar, pos: pos}, nil
	case c == '/':
		l.off++
		return token{kind: tokSlash, pos: pos}, nil
	case c == '%':
		l.off++
		return token{kind: tokPercent, pos: pos}, nil
	case c == '<':
		if l.off+1 < len(l.src) && l.src[l.off+1] == '<' {
			l.off += 2
			return token{kind: tokShl, pos: pos}, nil
		}
	case c == '>':
		if l.off+1 < len(l.src) && l.src[l.off+1] == '>' {
			l.off += 2
			return token{kind: tokShr, pos: pos}, nil
		}
	case c == '&':
		l.off++
		return token{kind: tokAmp, pos: pos}, nil
	case c == '|':
		l.off++
		return token{kind: tokPipe, pos: pos}, nil
	case c == '^':
		l.off++
		return token{kind: tokCaret, pos: pos}, nil
	case c == '~':
		l.off++
		return token{kind: tokTilde, pos: pos}, nil
	case c == '(':
		l.off++
		return token{kind: tokLParen, pos: pos}, nil
	case c == ')':
		l.off++
		return token{kind: tokRParen, pos: pos}, nil
	}
	return token{}, &SyntaxError{Expr: l.src, Pos: pos, Msg: fmt.Sprintf("unexpected character %q", c)}
}
