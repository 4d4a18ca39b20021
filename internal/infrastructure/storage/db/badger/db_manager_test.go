package dbbadger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Solation-Finance/solation/internal/core/domain"
	"github.com/Solation-Finance/solation/internal/core/ports"
	dbbadger "github.com/Solation-Finance/solation/internal/infrastructure/storage/db/badger"
)

func newTestRepoManager(t *testing.T) ports.RepoManager {
	t.Helper()
	repoManager, err := dbbadger.NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)
	return repoManager
}

func TestMarketMakerRoundTrip(t *testing.T) {
	repoManager := newTestRepoManager(t)
	ctx := context.Background()

	maker := domain.NewMarketMaker("maker-1")
	require.NoError(t, repoManager.MarketMakerRepository().AddMarketMaker(ctx, maker))

	err := repoManager.MarketMakerRepository().AddMarketMaker(ctx, maker)
	require.ErrorIs(t, err, domain.ErrMarketMakerAlreadyRegistered)

	stored, err := repoManager.MarketMakerRepository().GetMarketMaker(ctx, "maker-1")
	require.NoError(t, err)
	require.Equal(t, maker.Owner, stored.Owner)
	require.True(t, stored.Active)

	require.NoError(t, repoManager.MarketMakerRepository().UpdateMarketMaker(
		ctx, "maker-1",
		func(m *domain.MarketMaker) (*domain.MarketMaker, error) {
			m.TotalPositions++
			return m, nil
		},
	))
	stored, err = repoManager.MarketMakerRepository().GetMarketMaker(ctx, "maker-1")
	require.NoError(t, err)
	require.Equal(t, uint64(1), stored.TotalPositions)

	_, err = repoManager.MarketMakerRepository().GetMarketMaker(ctx, "maker-2")
	require.ErrorIs(t, err, domain.ErrMarketMakerNotFound)
}

func TestQuoteReKeyOnExpiryChange(t *testing.T) {
	repoManager := newTestRepoManager(t)
	ctx := context.Background()

	quote, err := domain.NewQuote(
		"maker-1", "sol", "usdc", domain.StrategyCoveredCall,
		[]domain.StrikeQuote{{
			StrikePrice:        100,
			PremiumPerContract: 5,
			AvailableContracts: 1000,
		}},
		2_000_000_000, 1, 1000, 1_000_000_000,
	)
	require.NoError(t, err)
	require.NoError(t, repoManager.QuoteRepository().AddQuote(ctx, quote))

	oldKey := quote.Key()
	newExpiry := int64(2_000_003_600)
	require.NoError(t, repoManager.QuoteRepository().UpdateQuote(
		ctx, oldKey,
		func(q *domain.Quote) (*domain.Quote, error) {
			if err := q.Update(domain.QuoteUpdate{
				ExpiryTimestamp: &newExpiry,
			}, 1_000_000_000); err != nil {
				return nil, err
			}
			return q, nil
		},
	))

	_, err = repoManager.QuoteRepository().GetQuote(ctx, oldKey)
	require.ErrorIs(t, err, domain.ErrQuoteNotFound)

	moved, err := repoManager.QuoteRepository().GetQuote(ctx, domain.QuoteKey(
		"maker-1", "sol", domain.StrategyCoveredCall, newExpiry,
	))
	require.NoError(t, err)
	require.Equal(t, newExpiry, moved.ExpiryTimestamp)
}

func TestPositionQueriesByOwner(t *testing.T) {
	repoManager := newTestRepoManager(t)
	ctx := context.Background()

	for _, p := range []*domain.Position{
		{ID: "pos-1", UserID: "user-1", MakerID: "maker-1"},
		{ID: "pos-2", UserID: "user-1", MakerID: "maker-2"},
		{ID: "pos-3", UserID: "user-2", MakerID: "maker-1"},
	} {
		require.NoError(t, repoManager.PositionRepository().AddPosition(ctx, p))
	}

	forUser, err := repoManager.PositionRepository().GetPositionsForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, forUser, 2)

	forMaker, err := repoManager.PositionRepository().GetPositionsForMaker(ctx, "maker-1")
	require.NoError(t, err)
	require.Len(t, forMaker, 2)
}

func TestRunTransactionAtomicity(t *testing.T) {
	repoManager := newTestRepoManager(t)
	ctx := context.Background()
	errBoom := errors.New("boom")

	_, err := repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			if err := repoManager.VaultRepository().AddVault(
				ctx, domain.NewVault("maker-1", "sol"),
			); err != nil {
				return nil, err
			}
			return nil, errBoom
		},
	)
	require.ErrorIs(t, err, errBoom)

	// The failed transaction left nothing behind.
	_, err = repoManager.VaultRepository().GetVault(ctx, "maker-1", "sol")
	require.ErrorIs(t, err, domain.ErrVaultNotFound)

	_, err = repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, repoManager.VaultRepository().AddVault(
				ctx, domain.NewVault("maker-1", "sol"),
			)
		},
	)
	require.NoError(t, err)

	vault, err := repoManager.VaultRepository().GetVault(ctx, "maker-1", "sol")
	require.NoError(t, err)
	require.Equal(t, "maker-1", vault.MakerID)
}

func TestGlobalStateSingleton(t *testing.T) {
	repoManager := newTestRepoManager(t)
	ctx := context.Background()

	_, err := repoManager.GlobalStateRepository().GetGlobalState(ctx)
	require.ErrorIs(t, err, domain.ErrGlobalStateNotInitialized)

	require.NoError(t, repoManager.GlobalStateRepository().InitGlobalState(
		ctx, &domain.GlobalState{Authority: "admin", Treasury: "treasury"},
	))
	err = repoManager.GlobalStateRepository().InitGlobalState(
		ctx, &domain.GlobalState{Authority: "other"},
	)
	require.ErrorIs(t, err, domain.ErrGlobalStateAlreadyInitialized)

	require.NoError(t, repoManager.GlobalStateRepository().UpdateGlobalState(
		ctx, func(s *domain.GlobalState) (*domain.GlobalState, error) {
			s.Paused = true
			return s, nil
		},
	))
	state, err := repoManager.GlobalStateRepository().GetGlobalState(ctx)
	require.NoError(t, err)
	require.True(t, state.Paused)
}
