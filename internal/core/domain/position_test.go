package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

func newTestPosition(strategy domain.StrategyType) *domain.Position {
	return &domain.Position{
		ID:               "pos-1",
		UserID:           "user",
		MakerID:          "maker",
		Strategy:         strategy,
		AssetID:          "sol",
		QuoteAssetID:     "usdc",
		StrikePrice:      100,
		PremiumPaid:      15,
		ContractSize:     10,
		CreatedAt:        testNow,
		ExpiryTimestamp:  testNow + 3600,
		Status:           domain.PositionStatusActive,
		CollateralLocked: 1000,
	}
}

func TestPositionSettle(t *testing.T) {
	tests := []struct {
		name            string
		strategy        domain.StrategyType
		settlementPrice uint64
		expectedStatus  domain.PositionStatus
	}{
		{"call_itm", domain.StrategyCoveredCall, 120, domain.PositionStatusSettledITM},
		{"call_otm", domain.StrategyCoveredCall, 80, domain.PositionStatusSettledOTM},
		{"call_at_strike_is_otm", domain.StrategyCoveredCall, 100, domain.PositionStatusSettledOTM},
		{"put_itm", domain.StrategyCashSecuredPut, 80, domain.PositionStatusSettledITM},
		{"put_otm", domain.StrategyCashSecuredPut, 120, domain.PositionStatusSettledOTM},
		{"put_at_strike_is_otm", domain.StrategyCashSecuredPut, 100, domain.PositionStatusSettledOTM},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			position := newTestPosition(tt.strategy)
			status, err := position.Settle(tt.settlementPrice, position.ExpiryTimestamp)
			require.NoError(t, err)
			require.Equal(t, tt.expectedStatus, status)
			require.Equal(t, tt.expectedStatus, position.Status)
			require.NotNil(t, position.SettlementPrice)
			require.Equal(t, tt.settlementPrice, *position.SettlementPrice)
		})
	}
}

func TestPositionSettleBeforeExpiry(t *testing.T) {
	position := newTestPosition(domain.StrategyCoveredCall)
	_, err := position.Settle(120, position.ExpiryTimestamp-1)
	require.ErrorIs(t, err, domain.ErrPositionNotExpired)
	require.True(t, position.IsActive())
	require.Nil(t, position.SettlementPrice)
}

func TestPositionDoubleSettle(t *testing.T) {
	position := newTestPosition(domain.StrategyCoveredCall)
	_, err := position.Settle(120, position.ExpiryTimestamp)
	require.NoError(t, err)

	// The second attempt fails fast and leaves the record untouched.
	status, err := position.Settle(80, position.ExpiryTimestamp+10)
	require.ErrorIs(t, err, domain.ErrPositionNotActive)
	require.Equal(t, domain.PositionStatusSettledITM, status)
	require.Equal(t, uint64(120), *position.SettlementPrice)
}

func TestPositionCollateralAssets(t *testing.T) {
	call := newTestPosition(domain.StrategyCoveredCall)
	require.Equal(t, "usdc", call.CollateralAssetID())
	require.Equal(t, "sol", call.UserCollateralAssetID())

	put := newTestPosition(domain.StrategyCashSecuredPut)
	require.Equal(t, "sol", put.CollateralAssetID())
	require.Equal(t, "usdc", put.UserCollateralAssetID())
}
