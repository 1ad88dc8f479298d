// Narrowing conversions to fixed-width machine integers. Each target
// width comes in two flavors: a checked To* form that reports a
// *RangeError when the value does not fit, and a saturating form that
// clamps to the nearest representable boundary.

package bigint

import "math"

// low64 returns the least significant 64 bits of x.
func (x nat) low64() uint64 {
	if len(x) == 0 {
		return 0
	}
	v := uint64(x[0])
	if _W == 32 && len(x) > 1 {
		v |= uint64(x[1]) << 32
	}
	return v
}

// toSigned converts x to a two's complement integer of the given bit
// width. Note that -2^(width-1) fits while +2^(width-1) does not.
func (x Int) toSigned(width uint, target string) (int64, error) {
	if uint(x.abs.bitLen()) > width {
		return 0, &RangeError{Value: x.String(), Target: target}
	}
	m := x.abs.low64()
	max := uint64(1)<<(width-1) - 1
	if x.neg {
		if m > max+1 {
			return 0, &RangeError{Value: x.String(), Target: target}
		}
		return -int64(m), nil
	}
	if m > max {
		return 0, &RangeError{Value: x.String(), Target: target}
	}
	return int64(m), nil
}

// toUnsigned converts x to an unsigned integer of the given bit width.
func (x Int) toUnsigned(width uint, target string) (uint64, error) {
	if x.neg || uint(x.abs.bitLen()) > width {
		return 0, &RangeError{Value: x.String(), Target: target}
	}
	return x.abs.low64(), nil
}

// ToInt64 returns x as an int64, or a *RangeError if x does not fit.
func (x Int) ToInt64() (int64, error) {
	return x.toSigned(64, "int64")
}

// ToInt32 returns x as an int32, or a *RangeError if x does not fit.
func (x Int) ToInt32() (int32, error) {
	v, err := x.toSigned(32, "int32")
	return int32(v), err
}

// ToInt16 returns x as an int16, or a *RangeError if x does not fit.
func (x Int) ToInt16() (int16, error) {
	v, err := x.toSigned(16, "int16")
	return int16(v), err
}

// ToInt8 returns x as an int8, or a *RangeError if x does not fit.
func (x Int) ToInt8() (int8, error) {
	v, err := x.toSigned(8, "int8")
	return int8(v), err
}

// ToUint64 returns x as a uint64, or a *RangeError if x is negative or
// does not fit.
func (x Int) ToUint64() (uint64, error) {
	return x.toUnsigned(64, "uint64")
}

// ToUint32 returns x as a uint32, or a *RangeError if x is negative or
// does not fit.
func (x Int) ToUint32() (uint32, error) {
	v, err := x.toUnsigned(32, "uint32")
	return uint32(v), err
}

// ToUint16 returns x as a uint16, or a *RangeError if x is negative or
// does not fit.
func (x Int) ToUint16() (uint16, error) {
	v, err := x.toUnsigned(16, "uint16")
	return uint16(v), err
}

// ToUint8 returns x as a uint8, or a *RangeError if x is negative or
// does not fit.
func (x Int) ToUint8() (uint8, error) {
	v, err := x.toUnsigned(8, "uint8")
	return uint8(v), err
}

// Int64 returns x as an int64, saturating at math.MinInt64 and
// math.MaxInt64.
func (x Int) Int64() int64 {
	v, err := x.ToInt64()
	if err != nil {
		if x.neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return v
}

// Int32 returns x as an int32, saturating at the int32 boundaries.
func (x Int) Int32() int32 {
	v, err := x.ToInt32()
	if err != nil {
		if x.neg {
			return math.MinInt32
		}
		return math.MaxInt32
	}
	return v
}

// Int16 returns x as an int16, saturating at the int16 boundaries.
func (x Int) Int16() int16 {
	v, err := x.ToInt16()
	if err != nil {
		if x.neg {
			return math.MinInt16
		}
		return math.MaxInt16
	}
	return v
}

// Int8 returns x as an int8, saturating at the int8 boundaries.
func (x Int) Int8() int8 {
	v, err := x.ToInt8()
	if err != nil {
		if x.neg {
			return math.MinInt8
		}
		return math.MaxInt8
	}
	return v
}

// Uint64 returns x as a uint64, saturating at 0 and math.MaxUint64.
func (x Int) Uint64() uint64 {
	v, err := x.ToUint64()
	if err != nil {
		if x.neg {
			return 0
		}
		return math.MaxUint64
	}
	return v
}

// Uint32 returns x as a uint32, saturating at 0 and math.MaxUint32.
func (x Int) Uint32() uint32 {
	v, err := x.ToUint32()
	if err != nil {
		if x.neg {
			return 0
		}
		return math.MaxUint32
	}
	return v
}

// Uint16 returns x as a uint16, saturating at 0 and math.MaxUint16.
func (x Int) Uint16() uint16 {
	v, err := x.ToUint16()
	if err != nil {
		if x.neg {
			return 0
		}
		return math.MaxUint16
	}
	return v
}

// Uint8 returns x as a uint8, saturating at 0 and math.MaxUint8.
func (x Int) Uint8() uint8 {
	v, err := x.ToUint8()
	if err != nil {
		if x.neg {
			return 0
		}
		return math.MaxUint8
	}
	return v
}
