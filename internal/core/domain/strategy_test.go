package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

func TestNotional(t *testing.T) {
	tests := []struct {
		name          string
		strikePrice   uint64
		contractSize  uint64
		assetDecimals uint8
		expected      uint64
	}{
		{
			name:          "two_underlying_at_fifty",
			strikePrice:   50_000_000,
			contractSize:  2_000_000_000,
			assetDecimals: 9,
			expected:      100_000_000,
		},
		{
			name:          "truncates_fractional_result",
			strikePrice:   1,
			contractSize:  1_999_999_999,
			assetDecimals: 9,
			expected:      1,
		},
		{
			name:          "zero_size",
			strikePrice:   50_000_000,
			contractSize:  0,
			assetDecimals: 9,
			expected:      0,
		},
		{
			name:          "zero_decimals",
			strikePrice:   7,
			contractSize:  3,
			assetDecimals: 0,
			expected:      21,
		},
		{
			name:          "intermediate_product_exceeds_uint64",
			strikePrice:   ^uint64(0),
			contractSize:  1_000_000_000,
			assetDecimals: 9,
			expected:      ^uint64(0),
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			n, err := domain.Notional(tt.strikePrice, tt.contractSize, tt.assetDecimals)
			require.NoError(t, err)
			require.Equal(t, tt.expected, n)
		})
	}
}

func TestOpenLegs(t *testing.T) {
	t.Run("covered_call", func(t *testing.T) {
		legs, err := domain.StrategyCoveredCall.OpenLegs(50_000_000, 2_000_000_000, 9)
		require.NoError(t, err)
		require.Equal(t, uint64(2_000_000_000), legs.UserAmount)
		require.Equal(t, domain.SideUnderlying, legs.UserSide)
		require.Equal(t, uint64(100_000_000), legs.MakerAmount)
		require.Equal(t, domain.SideQuoteCurrency, legs.MakerSide)
	})

	t.Run("cash_secured_put", func(t *testing.T) {
		legs, err := domain.StrategyCashSecuredPut.OpenLegs(50_000_000, 2_000_000_000, 9)
		require.NoError(t, err)
		require.Equal(t, uint64(100_000_000), legs.UserAmount)
		require.Equal(t, domain.SideQuoteCurrency, legs.UserSide)
		require.Equal(t, uint64(2_000_000_000), legs.MakerAmount)
		require.Equal(t, domain.SideUnderlying, legs.MakerSide)
	})

	t.Run("invalid_strategy", func(t *testing.T) {
		_, err := domain.StrategyType(42).OpenLegs(1, 1, 0)
		require.ErrorIs(t, err, domain.ErrInvalidStrategy)
	})
}

func TestInTheMoney(t *testing.T) {
	tests := []struct {
		name            string
		strategy        domain.StrategyType
		settlementPrice uint64
		strikePrice     uint64
		expected        bool
	}{
		{"call_above_strike", domain.StrategyCoveredCall, 120, 100, true},
		{"call_below_strike", domain.StrategyCoveredCall, 80, 100, false},
		{"call_at_strike", domain.StrategyCoveredCall, 100, 100, false},
		{"put_below_strike", domain.StrategyCashSecuredPut, 80, 100, true},
		{"put_above_strike", domain.StrategyCashSecuredPut, 120, 100, false},
		{"put_at_strike", domain.StrategyCashSecuredPut, 100, 100, false},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(
				t, tt.expected,
				tt.strategy.InTheMoney(tt.settlementPrice, tt.strikePrice),
			)
		})
	}
}

func TestParseStrategyType(t *testing.T) {
	s, err := domain.ParseStrategyType("covered_call")
	require.NoError(t, err)
	require.Equal(t, domain.StrategyCoveredCall, s)

	s, err = domain.ParseStrategyType("cash_secured_put")
	require.NoError(t, err)
	require.Equal(t, domain.StrategyCashSecuredPut, s)

	_, err = domain.ParseStrategyType("straddle")
	require.ErrorIs(t, err, domain.ErrInvalidStrategy)
}
