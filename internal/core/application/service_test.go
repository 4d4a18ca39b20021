package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Solation-Finance/solation/internal/core/application"
	"github.com/Solation-Finance/solation/internal/core/domain"
	"github.com/Solation-Finance/solation/internal/core/ports"
	"github.com/Solation-Finance/solation/internal/infrastructure/ledger"
	"github.com/Solation-Finance/solation/internal/infrastructure/storage/db/inmemory"
)

const (
	testAuthority = "admin"
	testMakerID   = "maker-1"
	testUserID    = "user-1"
	solAsset      = "sol"
	usdcAsset     = "usdc"
	solFeedID     = "feed-sol-usd"

	// 2 units of a 9-decimals underlying at a 50.000000 strike in a
	// 6-decimals quote currency: notional 100.000000.
	testStrike   = uint64(50_000_000)
	testSize     = uint64(2_000_000_000)
	testNotional = uint64(100_000_000)
	// premium_per_contract * contract_size
	testPremiumPerContract = uint64(2)
	testPremium            = testPremiumPerContract * testSize

	makerUsdcDeposit = uint64(100_000_000_000)
	makerSolDeposit  = uint64(10_000_000_000)
)

type stubPriceSource struct {
	update ports.PriceUpdate
	err    error
}

func (s *stubPriceSource) GetPrice(
	_ context.Context, _ string,
) (*ports.PriceUpdate, error) {
	if s.err != nil {
		return nil, s.err
	}
	u := s.update
	return &u, nil
}

func (s *stubPriceSource) setPrice(price int64, expo int32) {
	s.update = ports.PriceUpdate{
		FeedID:      solFeedID,
		Price:       price,
		Expo:        expo,
		PublishTime: time.Now().Unix(),
	}
}

type testEnv struct {
	ctx         context.Context
	repoManager ports.RepoManager
	ledger      *ledger.InMemory
	priceSource *stubPriceSource

	admin      application.AdminService
	operator   application.OperatorService
	trade      application.TradeService
	settlement application.SettlementService
}

func newTestEnv(t *testing.T) *testEnv {
	repoManager := inmemory.NewRepoManager()
	ledgerSvc := ledger.NewInMemory()
	priceSource := &stubPriceSource{}

	env := &testEnv{
		ctx:         context.Background(),
		repoManager: repoManager,
		ledger:      ledgerSvc,
		priceSource: priceSource,
		admin:       application.NewAdminService(repoManager),
		operator:    application.NewOperatorService(repoManager, ledgerSvc, nil),
		trade:       application.NewTradeService(repoManager, ledgerSvc, nil),
		settlement: application.NewSettlementService(
			repoManager, ledgerSvc, priceSource, nil,
		),
	}

	require.NoError(t, env.admin.InitGlobalState(env.ctx, application.InitGlobalStateArgs{
		Authority: testAuthority,
		Treasury:  "treasury",
	}))
	require.NoError(t, env.admin.AddAsset(env.ctx, testAuthority, domain.AssetConfig{
		AssetID:       solAsset,
		QuoteAssetID:  usdcAsset,
		OracleFeedID:  solFeedID,
		Enabled:       true,
		Decimals:      9,
		QuoteDecimals: 6,
	}))
	return env
}

func (e *testEnv) fundWallet(t *testing.T, owner, assetID string, amount uint64) {
	t.Helper()
	account := application.WalletAccount(owner, assetID)
	require.NoError(t, e.ledger.OpenAccount(e.ctx, account, assetID, owner))
	require.NoError(t, e.ledger.Fund(account, amount))
}

func (e *testEnv) balance(t *testing.T, account string) uint64 {
	t.Helper()
	balance, err := e.ledger.Balance(e.ctx, account)
	require.NoError(t, err)
	return balance
}

func (e *testEnv) setupMaker(t *testing.T) {
	t.Helper()
	require.NoError(t, e.operator.RegisterMarketMaker(e.ctx, testMakerID))
	for asset, amount := range map[string]uint64{
		usdcAsset: makerUsdcDeposit,
		solAsset:  makerSolDeposit,
	} {
		require.NoError(t, e.operator.InitializeVault(e.ctx, testMakerID, asset))
		e.fundWallet(t, testMakerID, asset, amount)
		require.NoError(t, e.operator.DepositLiquidity(e.ctx, testMakerID, asset, amount))
	}
}

func (e *testEnv) submitQuote(t *testing.T, strategy domain.StrategyType) (string, int64) {
	t.Helper()
	expiry := time.Now().Unix() + 3600
	key, err := e.operator.SubmitQuote(e.ctx, testMakerID, application.SubmitQuoteArgs{
		AssetID:  solAsset,
		Strategy: strategy,
		Strikes: []domain.StrikeQuote{{
			StrikePrice:        testStrike,
			PremiumPerContract: testPremiumPerContract,
			AvailableContracts: 8_000_000_000,
		}},
		ExpiryTimestamp: expiry,
		MinSize:         1,
		MaxSize:         10_000_000_000,
	})
	require.NoError(t, err)
	return key, expiry
}

func (e *testEnv) requestArgs(strategy domain.StrategyType, expiry int64) application.RequestPositionArgs {
	return application.RequestPositionArgs{
		MakerID:         testMakerID,
		AssetID:         solAsset,
		Strategy:        strategy,
		ExpiryTimestamp: expiry,
		StrikePrice:     testStrike,
		ContractSize:    testSize,
	}
}

// openCoveredCall runs the whole handshake and returns the stored position.
func (e *testEnv) openCoveredCall(t *testing.T) *domain.Position {
	t.Helper()
	e.setupMaker(t)
	_, expiry := e.submitQuote(t, domain.StrategyCoveredCall)
	e.fundWallet(t, testUserID, solAsset, testSize)

	info, err := e.trade.RequestPosition(
		e.ctx, testUserID, e.requestArgs(domain.StrategyCoveredCall, expiry),
	)
	require.NoError(t, err)
	require.Equal(t, testPremium, info.Premium)

	posInfo, err := e.operator.ConfirmPosition(e.ctx, testMakerID, testUserID, info.RequestID)
	require.NoError(t, err)

	position, err := e.repoManager.PositionRepository().GetPosition(
		e.ctx, testUserID, posInfo.PositionID,
	)
	require.NoError(t, err)
	return position
}

// expirePosition backdates the stored expiry so settlement can run without
// waiting out the clock.
func (e *testEnv) expirePosition(t *testing.T, position *domain.Position) {
	t.Helper()
	_, err := e.repoManager.RunTransaction(
		e.ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, e.repoManager.PositionRepository().UpdatePosition(
				ctx, position.UserID, position.ID,
				func(p *domain.Position) (*domain.Position, error) {
					p.ExpiryTimestamp = time.Now().Unix() - 1
					return p, nil
				},
			)
		},
	)
	require.NoError(t, err)
}

func TestDepositAndWithdrawLiquidity(t *testing.T) {
	env := newTestEnv(t)
	env.setupMaker(t)

	vault, err := env.repoManager.VaultRepository().GetVault(env.ctx, testMakerID, usdcAsset)
	require.NoError(t, err)
	require.Equal(t, makerUsdcDeposit, vault.TotalDeposited)
	require.Equal(t, makerUsdcDeposit, vault.AvailableLiquidity)
	require.Equal(t, uint64(0), env.balance(t, application.WalletAccount(testMakerID, usdcAsset)))

	require.NoError(t, env.operator.WithdrawLiquidity(env.ctx, testMakerID, usdcAsset, 1_000))

	vault, err = env.repoManager.VaultRepository().GetVault(env.ctx, testMakerID, usdcAsset)
	require.NoError(t, err)
	require.Equal(t, makerUsdcDeposit-1_000, vault.AvailableLiquidity)
	// Lifetime total is untouched by withdrawals.
	require.Equal(t, makerUsdcDeposit, vault.TotalDeposited)
	require.Equal(t, uint64(1_000), env.balance(t, application.WalletAccount(testMakerID, usdcAsset)))

	err = env.operator.WithdrawLiquidity(
		env.ctx, testMakerID, usdcAsset, makerUsdcDeposit,
	)
	require.ErrorIs(t, err, domain.ErrInsufficientLiquidity)
}

func TestCoveredCallHandshake(t *testing.T) {
	env := newTestEnv(t)
	position := env.openCoveredCall(t)

	// The user's underlying moved into escrow, the maker's notional into
	// the other escrow, and the premium into the user's quote wallet.
	require.Equal(t, uint64(0), env.balance(t, application.WalletAccount(testUserID, solAsset)))
	require.Equal(t, testSize, env.balance(t, position.UserEscrow))
	require.Equal(t, testNotional, env.balance(t, position.MakerEscrow))
	require.Equal(t, testPremium, env.balance(t, application.WalletAccount(testUserID, usdcAsset)))

	vault, err := env.repoManager.VaultRepository().GetVault(env.ctx, testMakerID, usdcAsset)
	require.NoError(t, err)
	require.Equal(t, testNotional, vault.LockedLiquidity)
	require.Equal(t, makerUsdcDeposit-testNotional-testPremium, vault.AvailableLiquidity)

	require.Equal(t, domain.PositionStatusActive, position.Status)
	require.Equal(t, testNotional, position.CollateralLocked)
	require.Equal(t, testPremium, position.PremiumPaid)

	maker, err := env.operator.GetMarketMaker(env.ctx, testMakerID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), maker.TotalPositions)
	require.Equal(t, uint64(0), maker.CompletedPositions)

	state, err := env.admin.GetGlobalState(env.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), state.TotalPositions)
	require.Equal(t, testSize, state.TotalVolume)
}

func TestCashSecuredPutHandshake(t *testing.T) {
	env := newTestEnv(t)
	env.setupMaker(t)
	_, expiry := env.submitQuote(t, domain.StrategyCashSecuredPut)
	env.fundWallet(t, testUserID, usdcAsset, testNotional)

	info, err := env.trade.RequestPosition(
		env.ctx, testUserID, env.requestArgs(domain.StrategyCashSecuredPut, expiry),
	)
	require.NoError(t, err)

	posInfo, err := env.operator.ConfirmPosition(env.ctx, testMakerID, testUserID, info.RequestID)
	require.NoError(t, err)

	position, err := env.repoManager.PositionRepository().GetPosition(
		env.ctx, testUserID, posInfo.PositionID,
	)
	require.NoError(t, err)

	// The user escrows the notional in quote currency, the maker escrows
	// the underlying; premium still comes out of the quote vault.
	require.Equal(t, testNotional, env.balance(t, position.UserEscrow))
	require.Equal(t, testSize, env.balance(t, position.MakerEscrow))
	require.Equal(t, testPremium, env.balance(t, application.WalletAccount(testUserID, usdcAsset)))

	solVault, err := env.repoManager.VaultRepository().GetVault(env.ctx, testMakerID, solAsset)
	require.NoError(t, err)
	require.Equal(t, testSize, solVault.LockedLiquidity)

	usdcVault, err := env.repoManager.VaultRepository().GetVault(env.ctx, testMakerID, usdcAsset)
	require.NoError(t, err)
	require.Equal(t, uint64(0), usdcVault.LockedLiquidity)
	require.Equal(t, makerUsdcDeposit-testPremium, usdcVault.AvailableLiquidity)
}

func TestRequestPositionValidation(t *testing.T) {
	env := newTestEnv(t)
	env.setupMaker(t)
	_, expiry := env.submitQuote(t, domain.StrategyCoveredCall)

	tests := []struct {
		name        string
		mutate      func(args *application.RequestPositionArgs)
		setup       func(t *testing.T)
		expectedErr error
	}{
		{
			name: "unknown_strike",
			mutate: func(args *application.RequestPositionArgs) {
				args.StrikePrice = testStrike + 1
			},
			expectedErr: domain.ErrStrikePriceNotFound,
		},
		{
			name: "size_above_max",
			mutate: func(args *application.RequestPositionArgs) {
				args.ContractSize = 10_000_000_001
			},
			expectedErr: domain.ErrContractSizeTooLarge,
		},
		{
			// Within the quote's size range but beyond the strike's
			// remaining capacity.
			name: "size_above_strike_capacity",
			mutate: func(args *application.RequestPositionArgs) {
				args.ContractSize = 9_000_000_000
			},
			expectedErr: domain.ErrInsufficientLiquidity,
		},
		{
			name: "size_below_min",
			mutate: func(args *application.RequestPositionArgs) {
				args.ContractSize = 0
			},
			expectedErr: domain.ErrContractSizeTooSmall,
		},
		{
			name: "unknown_quote",
			mutate: func(args *application.RequestPositionArgs) {
				args.ExpiryTimestamp = expiry + 1
			},
			expectedErr: domain.ErrQuoteNotFound,
		},
		{
			name: "asset_disabled",
			setup: func(t *testing.T) {
				require.NoError(t, env.admin.SetAssetEnabled(
					env.ctx, testAuthority, solAsset, false,
				))
				t.Cleanup(func() {
					require.NoError(t, env.admin.SetAssetEnabled(
						env.ctx, testAuthority, solAsset, true,
					))
				})
			},
			expectedErr: domain.ErrAssetNotEnabled,
		},
		{
			name: "protocol_paused",
			setup: func(t *testing.T) {
				require.NoError(t, env.admin.SetPaused(env.ctx, testAuthority, true))
				t.Cleanup(func() {
					require.NoError(t, env.admin.SetPaused(env.ctx, testAuthority, false))
				})
			},
			expectedErr: domain.ErrProtocolPaused,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(t)
			}
			args := env.requestArgs(domain.StrategyCoveredCall, expiry)
			if tt.mutate != nil {
				tt.mutate(&args)
			}
			_, err := env.trade.RequestPosition(env.ctx, testUserID, args)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestCapacityIsAdvisory(t *testing.T) {
	env := newTestEnv(t)
	env.setupMaker(t)
	_, expiry := env.submitQuote(t, domain.StrategyCoveredCall)

	args := env.requestArgs(domain.StrategyCoveredCall, expiry)
	args.ContractSize = 6_000_000_000

	// Two requests together exceed the strike's 8_000_000_000 capacity:
	// the capacity gates each request alone and is never decremented.
	for i := 0; i < 2; i++ {
		_, err := env.trade.RequestPosition(env.ctx, testUserID, args)
		require.NoError(t, err)
	}
}

func TestConfirmRequestExpired(t *testing.T) {
	env := newTestEnv(t)
	env.setupMaker(t)
	key, _ := env.submitQuote(t, domain.StrategyCoveredCall)
	env.fundWallet(t, testUserID, solAsset, testSize)

	now := time.Now().Unix()
	seedRequest := func(t *testing.T, id string) {
		_, err := env.repoManager.RunTransaction(
			env.ctx, false, func(ctx context.Context) (interface{}, error) {
				return nil, env.repoManager.PositionRequestRepository().AddRequest(
					ctx, &domain.PositionRequest{
						ID:           id,
						UserID:       testUserID,
						MakerID:      testMakerID,
						QuoteKey:     key,
						Strategy:     domain.StrategyCoveredCall,
						AssetID:      solAsset,
						QuoteAssetID: usdcAsset,
						StrikePrice:  testStrike,
						ContractSize: testSize,
						Premium:      testPremium,
						CreatedAt:    now - domain.ConfirmationWindow - 1,
						ExpiresAt:    now - 1,
						Status:       domain.RequestStatusPending,
					},
				)
			},
		)
		require.NoError(t, err)
	}

	t.Run("confirm_after_window", func(t *testing.T) {
		seedRequest(t, "req-expired")
		_, err := env.operator.ConfirmPosition(env.ctx, testMakerID, testUserID, "req-expired")
		require.ErrorIs(t, err, domain.ErrRequestExpired)
	})

	t.Run("confirm_after_expiry_cancel", func(t *testing.T) {
		seedRequest(t, "req-cancelled")
		require.NoError(t, env.trade.CancelExpiredRequest(env.ctx, testUserID, "req-cancelled"))

		// The record survives cancellation by terminal status: the maker's
		// late confirmation finds it and fails deterministically.
		_, err := env.operator.ConfirmPosition(env.ctx, testMakerID, testUserID, "req-cancelled")
		require.ErrorIs(t, err, domain.ErrRequestExpired)

		request, err := env.repoManager.PositionRequestRepository().GetRequest(
			env.ctx, testUserID, "req-cancelled",
		)
		require.NoError(t, err)
		require.Equal(t, domain.RequestStatusExpired, request.Status)
	})

	t.Run("cancel_before_window", func(t *testing.T) {
		_, expiry := env.submitQuote(t, domain.StrategyCashSecuredPut)
		env.fundWallet(t, testUserID, usdcAsset, testNotional)
		info, err := env.trade.RequestPosition(
			env.ctx, testUserID, env.requestArgs(domain.StrategyCashSecuredPut, expiry),
		)
		require.NoError(t, err)

		err = env.trade.CancelExpiredRequest(env.ctx, testUserID, info.RequestID)
		require.ErrorIs(t, err, domain.ErrRequestNotExpired)
	})
}

func TestConfirmByWrongMaker(t *testing.T) {
	env := newTestEnv(t)
	env.setupMaker(t)
	_, expiry := env.submitQuote(t, domain.StrategyCoveredCall)
	env.fundWallet(t, testUserID, solAsset, testSize)

	info, err := env.trade.RequestPosition(
		env.ctx, testUserID, env.requestArgs(domain.StrategyCoveredCall, expiry),
	)
	require.NoError(t, err)

	require.NoError(t, env.operator.RegisterMarketMaker(env.ctx, "maker-2"))
	_, err = env.operator.ConfirmPosition(env.ctx, "maker-2", testUserID, info.RequestID)
	require.ErrorIs(t, err, domain.ErrUnauthorizedConfirmation)

	// The request is still pending for the right maker.
	request, err := env.repoManager.PositionRequestRepository().GetRequest(
		env.ctx, testUserID, info.RequestID,
	)
	require.NoError(t, err)
	require.True(t, request.IsPending())
}

func TestRejectRequest(t *testing.T) {
	env := newTestEnv(t)
	env.setupMaker(t)
	_, expiry := env.submitQuote(t, domain.StrategyCoveredCall)
	env.fundWallet(t, testUserID, solAsset, testSize)

	info, err := env.trade.RequestPosition(
		env.ctx, testUserID, env.requestArgs(domain.StrategyCoveredCall, expiry),
	)
	require.NoError(t, err)

	require.NoError(t, env.operator.RejectRequest(env.ctx, testMakerID, testUserID, info.RequestID))

	_, err = env.operator.ConfirmPosition(env.ctx, testMakerID, testUserID, info.RequestID)
	require.ErrorIs(t, err, domain.ErrRequestNotPending)

	// No funds ever moved.
	require.Equal(t, testSize, env.balance(t, application.WalletAccount(testUserID, solAsset)))
}

func TestCreatePositionDirect(t *testing.T) {
	env := newTestEnv(t)
	env.setupMaker(t)
	_, expiry := env.submitQuote(t, domain.StrategyCoveredCall)
	env.fundWallet(t, testUserID, solAsset, testSize)

	info, err := env.trade.CreatePosition(
		env.ctx, testUserID, env.requestArgs(domain.StrategyCoveredCall, expiry),
	)
	require.NoError(t, err)

	position, err := env.repoManager.PositionRepository().GetPosition(
		env.ctx, testUserID, info.PositionID,
	)
	require.NoError(t, err)
	require.Equal(t, testSize, env.balance(t, position.UserEscrow))
	require.Equal(t, testNotional, env.balance(t, position.MakerEscrow))
}

func TestSettleCoveredCallITM(t *testing.T) {
	env := newTestEnv(t)
	position := env.openCoveredCall(t)
	env.expirePosition(t, position)

	// 60.000000 in quote decimals, above the 50.000000 strike.
	env.priceSource.setPrice(60, 0)

	info, err := env.settlement.SettlePosition(env.ctx, testUserID, position.ID)
	require.NoError(t, err)
	require.Equal(t, "settled_itm", info.Status)
	require.Equal(t, uint64(60_000_000), info.SettlementPrice)

	// Escrows crossed: the maker receives the user's underlying, the user
	// receives the maker's notional on top of the premium.
	require.Equal(t, testSize, env.balance(t, application.WalletAccount(testMakerID, solAsset)))
	require.Equal(
		t, testPremium+testNotional,
		env.balance(t, application.WalletAccount(testUserID, usdcAsset)),
	)
	require.Equal(t, uint64(0), env.balance(t, position.UserEscrow))
	require.Equal(t, uint64(0), env.balance(t, position.MakerEscrow))

	vault, err := env.repoManager.VaultRepository().GetVault(env.ctx, testMakerID, usdcAsset)
	require.NoError(t, err)
	require.Equal(t, uint64(0), vault.LockedLiquidity)

	maker, err := env.operator.GetMarketMaker(env.ctx, testMakerID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), maker.CompletedPositions)
}

func TestSettleCoveredCallOTM(t *testing.T) {
	env := newTestEnv(t)
	position := env.openCoveredCall(t)
	env.expirePosition(t, position)

	// 40.000000, below the strike.
	env.priceSource.setPrice(40, 0)

	info, err := env.settlement.SettlePosition(env.ctx, testUserID, position.ID)
	require.NoError(t, err)
	require.Equal(t, "settled_otm", info.Status)

	// Each escrow returns to its depositor in full.
	require.Equal(t, testSize, env.balance(t, application.WalletAccount(testUserID, solAsset)))
	require.Equal(t, testNotional, env.balance(t, application.WalletAccount(testMakerID, usdcAsset)))
	require.Equal(t, testPremium, env.balance(t, application.WalletAccount(testUserID, usdcAsset)))
}

func TestSettleAtStrikeIsOTM(t *testing.T) {
	env := newTestEnv(t)
	position := env.openCoveredCall(t)
	env.expirePosition(t, position)

	// Exactly the strike.
	env.priceSource.setPrice(50, 0)

	info, err := env.settlement.SettlePosition(env.ctx, testUserID, position.ID)
	require.NoError(t, err)
	require.Equal(t, "settled_otm", info.Status)
}

func TestSettleValidation(t *testing.T) {
	env := newTestEnv(t)
	position := env.openCoveredCall(t)

	t.Run("not_expired", func(t *testing.T) {
		env.priceSource.setPrice(60, 0)
		_, err := env.settlement.SettlePosition(env.ctx, testUserID, position.ID)
		require.ErrorIs(t, err, domain.ErrPositionNotExpired)
	})

	env.expirePosition(t, position)

	t.Run("stale_price", func(t *testing.T) {
		env.priceSource.setPrice(60, 0)
		env.priceSource.update.PublishTime = time.Now().Unix() - domain.PriceStalenessThreshold

		_, err := env.settlement.SettlePosition(env.ctx, testUserID, position.ID)
		require.ErrorIs(t, err, domain.ErrPriceTooStale)

		// The failed attempt mutated nothing; a fresh update settles.
		stored, err := env.repoManager.PositionRepository().GetPosition(
			env.ctx, testUserID, position.ID,
		)
		require.NoError(t, err)
		require.True(t, stored.IsActive())
		require.Equal(t, testSize, env.balance(t, position.UserEscrow))
	})

	t.Run("feed_mismatch", func(t *testing.T) {
		env.priceSource.setPrice(60, 0)
		env.priceSource.update.FeedID = "feed-other"

		_, err := env.settlement.SettlePosition(env.ctx, testUserID, position.ID)
		require.ErrorIs(t, err, domain.ErrOracleFeedMismatch)
	})

	t.Run("double_settlement", func(t *testing.T) {
		env.priceSource.setPrice(60, 0)
		_, err := env.settlement.SettlePosition(env.ctx, testUserID, position.ID)
		require.NoError(t, err)

		makerSol := env.balance(t, application.WalletAccount(testMakerID, solAsset))

		_, err = env.settlement.SettlePosition(env.ctx, testUserID, position.ID)
		require.ErrorIs(t, err, domain.ErrPositionNotActive)

		// The second attempt paid out nothing.
		require.Equal(t, makerSol, env.balance(t, application.WalletAccount(testMakerID, solAsset)))
	})
}

func TestSettleCashSecuredPutITM(t *testing.T) {
	env := newTestEnv(t)
	env.setupMaker(t)
	_, expiry := env.submitQuote(t, domain.StrategyCashSecuredPut)
	env.fundWallet(t, testUserID, usdcAsset, testNotional)

	info, err := env.trade.CreatePosition(
		env.ctx, testUserID, env.requestArgs(domain.StrategyCashSecuredPut, expiry),
	)
	require.NoError(t, err)

	position, err := env.repoManager.PositionRepository().GetPosition(
		env.ctx, testUserID, info.PositionID,
	)
	require.NoError(t, err)
	env.expirePosition(t, position)

	// 40.000000, below the strike: the put exercises.
	env.priceSource.setPrice(40, 0)
	settleInfo, err := env.settlement.SettlePosition(env.ctx, testUserID, position.ID)
	require.NoError(t, err)
	require.Equal(t, "settled_itm", settleInfo.Status)

	// The maker receives the user's cash, the user the maker's underlying.
	require.Equal(t, testNotional, env.balance(t, application.WalletAccount(testMakerID, usdcAsset)))
	require.Equal(t, testSize, env.balance(t, application.WalletAccount(testUserID, solAsset)))
}

func TestInsufficientVaultLiquidityAbortsConfirm(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.operator.RegisterMarketMaker(env.ctx, testMakerID))
	require.NoError(t, env.operator.InitializeVault(env.ctx, testMakerID, usdcAsset))
	require.NoError(t, env.operator.InitializeVault(env.ctx, testMakerID, solAsset))

	// Enough for the premium but not for the notional.
	env.fundWallet(t, testMakerID, usdcAsset, testPremium)
	require.NoError(t, env.operator.DepositLiquidity(env.ctx, testMakerID, usdcAsset, testPremium))

	_, expiry := env.submitQuote(t, domain.StrategyCoveredCall)
	env.fundWallet(t, testUserID, solAsset, testSize)

	info, err := env.trade.RequestPosition(
		env.ctx, testUserID, env.requestArgs(domain.StrategyCoveredCall, expiry),
	)
	require.NoError(t, err)

	_, err = env.operator.ConfirmPosition(env.ctx, testMakerID, testUserID, info.RequestID)
	require.ErrorIs(t, err, domain.ErrInsufficientLiquidity)

	// The failed confirmation rolled everything back: request still
	// pending, no funds moved, no position recorded.
	request, err := env.repoManager.PositionRequestRepository().GetRequest(
		env.ctx, testUserID, info.RequestID,
	)
	require.NoError(t, err)
	require.True(t, request.IsPending())
	require.Equal(t, testSize, env.balance(t, application.WalletAccount(testUserID, solAsset)))

	positions, err := env.trade.ListPositions(env.ctx, testUserID)
	require.NoError(t, err)
	require.Empty(t, positions)
}

func TestAdminAuthority(t *testing.T) {
	env := newTestEnv(t)

	require.ErrorIs(
		t, env.admin.SetPaused(env.ctx, "mallory", true), domain.ErrUnauthorized,
	)
	require.ErrorIs(
		t, env.admin.AddAsset(env.ctx, "mallory", domain.AssetConfig{AssetID: "eth"}),
		domain.ErrUnauthorized,
	)
	require.ErrorIs(
		t, env.admin.SetAssetEnabled(env.ctx, "mallory", solAsset, false),
		domain.ErrUnauthorized,
	)
	require.ErrorIs(
		t, env.admin.UpdateGlobalState(env.ctx, "mallory", domain.GlobalStateUpdate{}),
		domain.ErrUnauthorized,
	)
	require.ErrorIs(
		t, env.admin.UpdateAsset(env.ctx, "mallory", solAsset, domain.AssetConfigUpdate{}),
		domain.ErrUnauthorized,
	)

	err := env.admin.InitGlobalState(env.ctx, application.InitGlobalStateArgs{
		Authority: "other", Treasury: "other",
	})
	require.ErrorIs(t, err, domain.ErrGlobalStateAlreadyInitialized)
}

func TestUpdateAsset(t *testing.T) {
	env := newTestEnv(t)

	minStrike, maxStrike := uint16(50), uint16(200)
	maxExpiry := int64(86_400)
	require.NoError(t, env.admin.UpdateAsset(
		env.ctx, testAuthority, solAsset, domain.AssetConfigUpdate{
			MinStrikePercentage: &minStrike,
			MaxStrikePercentage: &maxStrike,
			MaxExpirySeconds:    &maxExpiry,
		},
	))

	assets, err := env.admin.ListAssets(env.ctx)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	require.Equal(t, minStrike, assets[0].MinStrikePercentage)
	require.Equal(t, maxStrike, assets[0].MaxStrikePercentage)
	require.Equal(t, maxExpiry, assets[0].MaxExpirySeconds)
	// Untouched fields survive the patch.
	require.Equal(t, "feed-sol-usd", assets[0].OracleFeedID)
	require.True(t, assets[0].Enabled)

	err = env.admin.UpdateAsset(env.ctx, testAuthority, "eth", domain.AssetConfigUpdate{})
	require.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestUpdateGlobalState(t *testing.T) {
	env := newTestEnv(t)

	treasury := "treasury-2"
	feeBps := uint16(25)
	require.NoError(t, env.admin.UpdateGlobalState(
		env.ctx, testAuthority, domain.GlobalStateUpdate{
			Treasury:       &treasury,
			ProtocolFeeBps: &feeBps,
		},
	))

	state, err := env.admin.GetGlobalState(env.ctx)
	require.NoError(t, err)
	require.Equal(t, treasury, state.Treasury)
	require.Equal(t, feeBps, state.ProtocolFeeBps)
	require.Equal(t, testAuthority, state.Authority)

	// Authority handover: the new identity governs, the old one is locked
	// out.
	newAuthority := "admin-2"
	require.NoError(t, env.admin.UpdateGlobalState(
		env.ctx, testAuthority, domain.GlobalStateUpdate{Authority: &newAuthority},
	))
	require.ErrorIs(
		t, env.admin.SetPaused(env.ctx, testAuthority, true), domain.ErrUnauthorized,
	)
	require.NoError(t, env.admin.SetPaused(env.ctx, newAuthority, true))
}
