package bigint

import "fmt"

// ErrDivisionByZero is returned by Div, Mod, and DivMod when the
// divisor is zero.
var ErrDivisionByZero = fmt.Errorf("bigint: division by zero")

// ErrUnsupported is returned for operations outside the supported
// domain, such as formatting in an unsupported base.
var ErrUnsupported = fmt.Errorf("bigint: unsupported operation")

// ParseError describes a malformed numeric literal. Offset is the byte
// index into Input where parsing failed.
type ParseError struct {
	Input  string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bigint: cannot parse %q at offset %d: %s", e.Input, e.Offset, e.Reason)
}

// RangeError reports a narrowing conversion whose value does not fit
// the target type.
type RangeError struct {
	Value  string // decimal rendering of the out-of-range value
	Target string // e.g. "int32"
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("bigint: value %s out of range for %s", e.Value, e.Target)
}
