// Conversion between Int and its textual forms: literal parsing with
// positional error reporting, plain and grouped rendering, and the
// fmt.Formatter hooks.

package bigint

import "fmt"

// Parse interprets s as a signed integer literal: an optional sign,
// an optional 0x or 0X prefix selecting base 16 (base 10 otherwise),
// and digits with optional underscore separators. It returns a
// *ParseError describing the first offending byte on malformed input.
func Parse(s string) (Int, error) {
	if len(s) == 0 {
		return Int{}, &ParseError{Input: s, Offset: 0, Reason: "empty input"}
	}

	i := 0
	neg := false
	switch s[0] {
	case '+':
		i++
	case '-':
		neg = true
		i++
	}

	base := 10
	if i+1 < len(s) && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X') {
		base = 16
		i += 2
	}
	if i == len(s) {
		return Int{}, &ParseError{Input: s, Offset: i, Reason: "missing digits"}
	}

	abs, count, bad := nat(nil).scan(s[i:], base)
	if bad >= 0 {
		return Int{}, &ParseError{
			Input:  s,
			Offset: i + bad,
			Reason: fmt.Sprintf("invalid character %q", s[i+bad]),
		}
	}
	if count == 0 {
		// separators only, e.g. "0x_"
		return Int{}, &ParseError{Input: s, Offset: i, Reason: "missing digits"}
	}
	return makeInt(neg, abs), nil
}

// MustParse is like Parse but panics on malformed input. It is intended
// for literals in tests and package initialization.
func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// String returns the decimal representation of x.
func (x Int) String() string {
	return string(x.append(nil, 10, false))
}

// Text returns the representation of x in the given base
// (2 <= base <= 16) using lowercase digits. Other bases return
// ErrUnsupported.
func (x Int) Text(base int) (string, error) {
	if base < 2 || base > 16 {
		return "", fmt.Errorf("%w: base %d", ErrUnsupported, base)
	}
	return string(x.append(nil, base, false)), nil
}

// append writes the representation of x in the given base to buf and
// returns the extended buffer.
func (x Int) append(buf []byte, base int, upper bool) []byte {
	if x.neg {
		buf = append(buf, '-')
	}
	return append(buf, x.abs.utoa(base, upper)...)
}

// Hex returns the uppercase hexadecimal representation of x with an
// underscore inserted every eight digits, counting from the least
// significant digit.
func (x Int) Hex() string { return x.hex(0) }

// HexPad is like Hex but zero-extends the digit string to at least
// width digits before grouping.
func (x Int) HexPad(width int) string { return x.hex(width) }

func (x Int) hex(width int) string {
	d := x.abs.utoa(16, true)
	if n := width - len(d); n > 0 {
		p := make([]byte, n, n+len(d))
		for i := range p {
			p[i] = '0'
		}
		d = append(p, d...)
	}

	// one separator per started group of eight beyond the first
	n := len(d) + (len(d)-1)/8
	buf := make([]byte, 0, n+1)
	if x.neg {
		buf = append(buf, '-')
	}
	head := len(d) % 8
	if head == 0 {
		head = 8
	}
	buf = append(buf, d[:head]...)
	for i := head; i < len(d); i += 8 {
		buf = append(buf, '_')
		buf = append(buf, d[i:i+8]...)
	}
	return string(buf)
}

// Format implements fmt.Formatter. It accepts the verbs 'b' (binary),
// 'o' and 'O' (octal), 'd', 's', 'v' (decimal), and 'x', 'X'
// (hexadecimal), together with the '+', ' ', '#', '-', and '0' flags,
// a minimum field width, and a precision giving the minimum digit
// count.
func (x Int) Format(s fmt.State, ch rune) {
	var base int
	switch ch {
	case 'b':
		base = 2
	case 'o', 'O':
		base = 8
	case 'd', 's', 'v':
		base = 10
	case 'x', 'X':
		base = 16
	default:
		fmt.Fprintf(s, "%%!%c(bigint.Int=%s)", ch, x.String())
		return
	}

	sign := ""
	switch {
	case x.neg:
		sign = "-"
	case s.Flag('+'):
		sign = "+"
	case s.Flag(' '):
		sign = " "
	}

	prefix := ""
	if s.Flag('#') {
		switch ch {
		case 'b':
			prefix = "0b"
		case 'o':
			prefix = "0"
		case 'x':
			prefix = "0x"
		case 'X':
			prefix = "0X"
		}
	}
	if ch == 'O' {
		prefix = "0o"
	}

	digits := x.abs.utoa(base, ch == 'X')

	// number padding in three flavors
	var left int  // spaces left of digits, right justification
	var zeros int // zero digits between prefix and digits
	var right int // spaces right of digits, left justification

	// precision sets the least number of digits
	precision, precisionSet := s.Precision()
	if precisionSet {
		switch {
		case len(digits) < precision:
			zeros = precision - len(digits)
		case len(digits) == 1 && digits[0] == '0' && precision == 0:
			return // zero value with zero precision prints nothing
		}
	}

	// width sets the least number of characters overall
	length := len(sign) + len(prefix) + zeros + len(digits)
	if width, widthSet := s.Width(); widthSet && length < width {
		switch d := width - length; {
		case s.Flag('-'):
			right = d
		case s.Flag('0') && !precisionSet:
			zeros = d
		default:
			left = d
		}
	}

	// [left pad][sign][prefix][zero pad][digits][right pad]
	writeMultiple(s, " ", left)
	writeMultiple(s, sign, 1)
	writeMultiple(s, prefix, 1)
	writeMultiple(s, "0", zeros)
	s.Write(digits)
	writeMultiple(s, " ", right)
}

func writeMultiple(s fmt.State, text string, count int) {
	if len(text) > 0 {
		b := []byte(text)
		for ; count > 0; count-- {
			s.Write(b)
		}
	}
}
