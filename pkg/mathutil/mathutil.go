package mathutil

import (
	"errors"
	"math"
	"math/big"
)

// ErrOverflow is returned whenever the result of a checked operation does
// not fit into an uint64.
var ErrOverflow = errors.New("uint64 overflow")

// CheckedAdd returns x + y, or ErrOverflow.
func CheckedAdd(x, y uint64) (uint64, error) {
	if x > math.MaxUint64-y {
		return 0, ErrOverflow
	}
	return x + y, nil
}

// CheckedSub returns x - y, or ErrOverflow if y > x.
func CheckedSub(x, y uint64) (uint64, error) {
	if y > x {
		return 0, ErrOverflow
	}
	return x - y, nil
}

// CheckedMul returns x * y, or ErrOverflow.
func CheckedMul(x, y uint64) (uint64, error) {
	if x == 0 || y == 0 {
		return 0, nil
	}
	z := x * y
	if z/x != y {
		return 0, ErrOverflow
	}
	return z, nil
}

// MulDiv returns floor(x * y / div) computed without intermediate overflow.
// Truncation, never rounding.
func MulDiv(x, y, div uint64) (uint64, error) {
	if div == 0 {
		return 0, ErrOverflow
	}
	z := new(big.Int).Mul(
		new(big.Int).SetUint64(x), new(big.Int).SetUint64(y),
	)
	z.Quo(z, new(big.Int).SetUint64(div))
	if !z.IsUint64() {
		return 0, ErrOverflow
	}
	return z.Uint64(), nil
}

// Pow10 returns 10^n, or ErrOverflow for n > 19.
func Pow10(n uint8) (uint64, error) {
	if n > 19 {
		return 0, ErrOverflow
	}
	p := uint64(1)
	for i := uint8(0); i < n; i++ {
		p *= 10
	}
	return p, nil
}
