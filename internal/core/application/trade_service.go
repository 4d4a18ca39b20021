package application

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Solation-Finance/solation/internal/core/domain"
	"github.com/Solation-Finance/solation/internal/core/ports"
	"github.com/Solation-Finance/solation/internal/metrics"
	"github.com/Solation-Finance/solation/pkg/mathutil"
)

// TradeService is the user-facing surface: the user's half of the
// position-request handshake, the legacy direct open and position lookup.
type TradeService interface {
	RequestPosition(ctx context.Context, userID string, args RequestPositionArgs) (*RequestInfo, error)
	CancelExpiredRequest(ctx context.Context, userID, requestID string) error
	CreatePosition(ctx context.Context, userID string, args RequestPositionArgs) (*PositionInfo, error)
	GetQuote(ctx context.Context, key string) (*domain.Quote, error)
	GetPosition(ctx context.Context, userID, positionID string) (*PositionInfo, error)
	ListPositions(ctx context.Context, userID string) ([]*PositionInfo, error)
}

type tradeService struct {
	repoManager ports.RepoManager
	ledger      ports.Ledger
	metrics     *metrics.Metrics
}

func NewTradeService(
	repoManager ports.RepoManager, ledger ports.Ledger, m *metrics.Metrics,
) TradeService {
	if m == nil {
		m = metrics.NewNoop()
	}
	return &tradeService{repoManager: repoManager, ledger: ledger, metrics: m}
}

// validateTradeTarget re-checks every precondition of an open against the
// records as they exist inside the current transaction, and returns the
// matched strike with the computed premium. Strike capacity is advisory:
// it gates this check but is never decremented, so concurrent requests may
// collectively exceed it.
func (t *tradeService) validateTradeTarget(
	ctx context.Context, args RequestPositionArgs, now int64,
) (*domain.MarketMaker, *domain.Quote, *domain.AssetConfig, uint64, error) {
	state, err := t.repoManager.GlobalStateRepository().GetGlobalState(ctx)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	if state.Paused {
		return nil, nil, nil, 0, domain.ErrProtocolPaused
	}

	maker, err := t.repoManager.MarketMakerRepository().GetMarketMaker(ctx, args.MakerID)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	if !maker.Active {
		return nil, nil, nil, 0, domain.ErrMarketMakerNotActive
	}

	quote, err := t.repoManager.QuoteRepository().GetQuote(ctx, domain.QuoteKey(
		args.MakerID, args.AssetID, args.Strategy, args.ExpiryTimestamp,
	))
	if err != nil {
		return nil, nil, nil, 0, err
	}
	if !quote.Active {
		return nil, nil, nil, 0, domain.ErrQuoteNotActive
	}
	if quote.IsExpired(now) {
		return nil, nil, nil, 0, domain.ErrQuoteExpired
	}

	asset, err := t.repoManager.AssetConfigRepository().GetAssetConfig(ctx, args.AssetID)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	if !asset.Enabled {
		return nil, nil, nil, 0, domain.ErrAssetNotEnabled
	}

	if args.ContractSize < quote.MinSize {
		return nil, nil, nil, 0, domain.ErrContractSizeTooSmall
	}
	if args.ContractSize > quote.MaxSize {
		return nil, nil, nil, 0, domain.ErrContractSizeTooLarge
	}

	strike, err := quote.FindStrike(args.StrikePrice)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	if args.ContractSize > strike.AvailableContracts {
		return nil, nil, nil, 0, domain.ErrInsufficientLiquidity
	}

	premium, err := mathutil.CheckedMul(strike.PremiumPerContract, args.ContractSize)
	if err != nil {
		return nil, nil, nil, 0, domain.ErrMathOverflow
	}
	return maker, quote, asset, premium, nil
}

// RequestPosition records the user's purchase intent. No funds move; the
// maker must confirm within the fixed window or the request becomes
// reclaimable by anyone.
func (t *tradeService) RequestPosition(
	ctx context.Context, userID string, args RequestPositionArgs,
) (*RequestInfo, error) {
	res, err := t.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			now := nowUnix()
			_, quote, _, premium, err := t.validateTradeTarget(ctx, args, now)
			if err != nil {
				return nil, err
			}

			request := &domain.PositionRequest{
				ID:           uuid.New().String(),
				UserID:       userID,
				MakerID:      args.MakerID,
				QuoteKey:     quote.Key(),
				Strategy:     args.Strategy,
				AssetID:      args.AssetID,
				QuoteAssetID: quote.QuoteAssetID,
				StrikePrice:  args.StrikePrice,
				ContractSize: args.ContractSize,
				Premium:      premium,
				CreatedAt:    now,
				ExpiresAt:    now + domain.ConfirmationWindow,
				Status:       domain.RequestStatusPending,
			}
			if err := t.repoManager.PositionRequestRepository().AddRequest(
				ctx, request,
			); err != nil {
				return nil, err
			}
			return &RequestInfo{
				RequestID: request.ID,
				Premium:   premium,
				CreatedAt: now,
				ExpiresAt: request.ExpiresAt,
			}, nil
		},
	)
	if err != nil {
		return nil, err
	}

	t.metrics.RequestsCreated.Inc()
	info := res.(*RequestInfo)
	log.Debugf("position request %s created by %s, expires at %d",
		info.RequestID, userID, info.ExpiresAt)
	return info, nil
}

// CancelExpiredRequest closes a pending request once its confirmation
// window has elapsed. Any caller may trigger it: the user is never left
// waiting on an unresponsive maker.
func (t *tradeService) CancelExpiredRequest(
	ctx context.Context, userID, requestID string,
) error {
	_, err := t.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, t.repoManager.PositionRequestRepository().UpdateRequest(
				ctx, userID, requestID,
				func(r *domain.PositionRequest) (*domain.PositionRequest, error) {
					if err := r.Expire(nowUnix()); err != nil {
						return nil, err
					}
					return r, nil
				},
			)
		},
	)
	if err != nil {
		return err
	}

	t.metrics.RequestsExpired.Inc()
	log.Debugf("expired request %s cancelled", requestID)
	return nil
}

// CreatePosition is the legacy direct path collapsing request and
// confirmation into one user-authenticated step. The maker's collateral
// moves under the vault capability without the maker signing.
func (t *tradeService) CreatePosition(
	ctx context.Context, userID string, args RequestPositionArgs,
) (*PositionInfo, error) {
	res, err := t.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			now := nowUnix()
			maker, quote, asset, premium, err := t.validateTradeTarget(ctx, args, now)
			if err != nil {
				return nil, err
			}

			position, err := openPosition(ctx, t.repoManager, t.ledger, openPositionParams{
				userID:          userID,
				maker:           maker,
				strategy:        args.Strategy,
				assetID:         args.AssetID,
				quoteAssetID:    quote.QuoteAssetID,
				assetDecimals:   asset.Decimals,
				strikePrice:     args.StrikePrice,
				contractSize:    args.ContractSize,
				premium:         premium,
				expiryTimestamp: quote.ExpiryTimestamp,
				now:             now,
			})
			if err != nil {
				return nil, err
			}
			return positionInfo(position), nil
		},
	)
	if err != nil {
		return nil, err
	}

	t.metrics.PositionsOpened.Inc()
	info := res.(*PositionInfo)
	log.Infof("position created directly: %s", info.PositionID)
	return info, nil
}

func (t *tradeService) GetQuote(ctx context.Context, key string) (*domain.Quote, error) {
	return t.repoManager.QuoteRepository().GetQuote(ctx, key)
}

func (t *tradeService) GetPosition(
	ctx context.Context, userID, positionID string,
) (*PositionInfo, error) {
	position, err := t.repoManager.PositionRepository().GetPosition(ctx, userID, positionID)
	if err != nil {
		return nil, err
	}
	return positionInfo(position), nil
}

func (t *tradeService) ListPositions(
	ctx context.Context, userID string,
) ([]*PositionInfo, error) {
	positions, err := t.repoManager.PositionRepository().GetPositionsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	infos := make([]*PositionInfo, 0, len(positions))
	for _, p := range positions {
		infos = append(infos, positionInfo(p))
	}
	return infos, nil
}
