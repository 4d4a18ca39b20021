package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

const testNow int64 = 1_700_000_000

func newTestStrikes(n int) []domain.StrikeQuote {
	strikes := make([]domain.StrikeQuote, 0, n)
	for i := 0; i < n; i++ {
		strikes = append(strikes, domain.StrikeQuote{
			StrikePrice:        uint64(100_000_000 * (i + 1)),
			PremiumPerContract: 5_000_000,
			AvailableContracts: 1000,
		})
	}
	return strikes
}

func newTestQuote(t *testing.T) *domain.Quote {
	quote, err := domain.NewQuote(
		"maker", "sol", "usdc",
		domain.StrategyCoveredCall,
		newTestStrikes(2),
		testNow+3600, 1, 1_000_000, testNow,
	)
	require.NoError(t, err)
	return quote
}

func TestNewQuote(t *testing.T) {
	tests := []struct {
		name        string
		strategy    domain.StrategyType
		strikes     []domain.StrikeQuote
		expiry      int64
		minSize     uint64
		maxSize     uint64
		expectedErr error
	}{
		{
			name:     "valid",
			strategy: domain.StrategyCoveredCall,
			strikes:  newTestStrikes(10),
			expiry:   testNow + 3600,
			minSize:  1, maxSize: 100,
		},
		{
			name:     "empty_strike_list",
			strategy: domain.StrategyCashSecuredPut,
			strikes:  nil,
			expiry:   testNow + 3600,
			minSize:  1, maxSize: 100,
		},
		{
			name:        "too_many_strikes",
			strategy:    domain.StrategyCoveredCall,
			strikes:     newTestStrikes(11),
			expiry:      testNow + 3600,
			minSize:     1, maxSize: 100,
			expectedErr: domain.ErrTooManyStrikes,
		},
		{
			name:        "zero_min_size",
			strategy:    domain.StrategyCoveredCall,
			strikes:     newTestStrikes(1),
			expiry:      testNow + 3600,
			minSize:     0, maxSize: 100,
			expectedErr: domain.ErrInvalidQuoteParameters,
		},
		{
			name:        "max_below_min",
			strategy:    domain.StrategyCoveredCall,
			strikes:     newTestStrikes(1),
			expiry:      testNow + 3600,
			minSize:     10, maxSize: 9,
			expectedErr: domain.ErrInvalidQuoteParameters,
		},
		{
			name:        "expiry_in_the_past",
			strategy:    domain.StrategyCoveredCall,
			strikes:     newTestStrikes(1),
			expiry:      testNow,
			minSize:     1, maxSize: 100,
			expectedErr: domain.ErrQuoteExpired,
		},
		{
			name:        "invalid_strategy",
			strategy:    domain.StrategyType(9),
			strikes:     newTestStrikes(1),
			expiry:      testNow + 3600,
			minSize:     1, maxSize: 100,
			expectedErr: domain.ErrInvalidStrategy,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			quote, err := domain.NewQuote(
				"maker", "sol", "usdc", tt.strategy, tt.strikes,
				tt.expiry, tt.minSize, tt.maxSize, testNow,
			)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			require.True(t, quote.Active)
			require.Equal(t, testNow, quote.LastUpdated)
		})
	}
}

func TestQuoteFindStrike(t *testing.T) {
	quote := newTestQuote(t)

	strike, err := quote.FindStrike(200_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(200_000_000), strike.StrikePrice)

	// Exact match only, no nearest-strike fallback.
	_, err = quote.FindStrike(150_000_000)
	require.ErrorIs(t, err, domain.ErrStrikePriceNotFound)
}

func TestQuoteUpdate(t *testing.T) {
	t.Run("replaces_strikes_wholesale", func(t *testing.T) {
		quote := newTestQuote(t)
		newStrikes := newTestStrikes(1)
		require.NoError(t, quote.Update(domain.QuoteUpdate{
			Strikes: &newStrikes,
		}, testNow+10))
		require.Len(t, quote.Strikes, 1)
		require.Equal(t, testNow+10, quote.LastUpdated)
	})

	t.Run("deactivate_keeps_other_fields", func(t *testing.T) {
		quote := newTestQuote(t)
		inactive := false
		require.NoError(t, quote.Update(domain.QuoteUpdate{
			Active: &inactive,
		}, testNow+10))
		require.False(t, quote.Active)
		require.Len(t, quote.Strikes, 2)
	})

	t.Run("rejects_past_expiry", func(t *testing.T) {
		quote := newTestQuote(t)
		pastExpiry := testNow
		err := quote.Update(domain.QuoteUpdate{
			ExpiryTimestamp: &pastExpiry,
		}, testNow+10)
		require.ErrorIs(t, err, domain.ErrQuoteExpired)
	})

	t.Run("rejects_inverted_size_range", func(t *testing.T) {
		quote := newTestQuote(t)
		minSize := uint64(50)
		maxSize := uint64(49)
		err := quote.Update(domain.QuoteUpdate{
			MinSize: &minSize,
			MaxSize: &maxSize,
		}, testNow+10)
		require.ErrorIs(t, err, domain.ErrInvalidQuoteParameters)
	})

	t.Run("changed_expiry_changes_key", func(t *testing.T) {
		quote := newTestQuote(t)
		oldKey := quote.Key()
		newExpiry := quote.ExpiryTimestamp + 3600
		require.NoError(t, quote.Update(domain.QuoteUpdate{
			ExpiryTimestamp: &newExpiry,
		}, testNow+10))
		require.NotEqual(t, oldKey, quote.Key())
	})
}

func TestQuoteIsExpired(t *testing.T) {
	quote := newTestQuote(t)
	require.False(t, quote.IsExpired(quote.ExpiryTimestamp-1))
	require.True(t, quote.IsExpired(quote.ExpiryTimestamp))
	require.True(t, quote.IsExpired(quote.ExpiryTimestamp+1))
}
