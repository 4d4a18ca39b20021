package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckedAdd(t *testing.T) {
	v, err := CheckedAdd(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), v)

	_, err = CheckedAdd(math.MaxUint64, 1)
	require.ErrorIs(t, err, ErrOverflow)

	v, err = CheckedAdd(math.MaxUint64, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), v)
}

func TestCheckedSub(t *testing.T) {
	v, err := CheckedSub(10, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(6), v)

	_, err = CheckedSub(4, 10)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestCheckedMul(t *testing.T) {
	v, err := CheckedMul(50_000_000, 2_000_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(100_000_000_000_000_000), v)

	_, err = CheckedMul(math.MaxUint64, 2)
	require.ErrorIs(t, err, ErrOverflow)

	v, err = CheckedMul(0, math.MaxUint64)
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestMulDiv(t *testing.T) {
	// would overflow uint64 without the big.Int intermediate
	v, err := MulDiv(math.MaxUint64, 10, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64/10), v)

	// truncates, never rounds
	v, err = MulDiv(7, 1, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), v)

	_, err = MulDiv(1, 1, 0)
	require.ErrorIs(t, err, ErrOverflow)

	_, err = MulDiv(math.MaxUint64, math.MaxUint64, 1)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestPow10(t *testing.T) {
	v, err := Pow10(9)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000_000), v)

	v, err = Pow10(0)
	require.NoError(t, err)
	require.Equal(t, uint64(1), v)

	_, err = Pow10(20)
	require.ErrorIs(t, err, ErrOverflow)
}
