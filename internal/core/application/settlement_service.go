package application

import (
	"context"
	"math"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/Solation-Finance/solation/internal/core/domain"
	"github.com/Solation-Finance/solation/internal/core/ports"
	"github.com/Solation-Finance/solation/internal/metrics"
)

// SettlementService classifies matured positions against the oracle and
// routes the escrowed collateral. Settlement is permissionless: any caller
// may trigger it once the position has expired.
type SettlementService interface {
	SettlePosition(ctx context.Context, userID, positionID string) (*SettlementInfo, error)
}

type settlementService struct {
	repoManager ports.RepoManager
	ledger      ports.Ledger
	priceSource ports.PriceSource
	metrics     *metrics.Metrics
}

func NewSettlementService(
	repoManager ports.RepoManager,
	ledger ports.Ledger,
	priceSource ports.PriceSource,
	m *metrics.Metrics,
) SettlementService {
	if m == nil {
		m = metrics.NewNoop()
	}
	return &settlementService{
		repoManager: repoManager,
		ledger:      ledger,
		priceSource: priceSource,
		metrics:     m,
	}
}

// SettlePosition fetches a fresh oracle update, validates it against the
// asset's configured feed and the staleness bound, then runs the
// strategy's exercise test and pays out both escrows. A stale or
// mismatched update mutates nothing; the position stays Active and the
// call can be retried with a fresher update.
func (s *settlementService) SettlePosition(
	ctx context.Context, userID, positionID string,
) (*SettlementInfo, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			now := nowUnix()

			position, err := s.repoManager.PositionRepository().GetPosition(
				ctx, userID, positionID,
			)
			if err != nil {
				return nil, err
			}
			if !position.IsActive() {
				return nil, domain.ErrPositionNotActive
			}
			if now < position.ExpiryTimestamp {
				return nil, domain.ErrPositionNotExpired
			}

			asset, err := s.repoManager.AssetConfigRepository().GetAssetConfig(
				ctx, position.AssetID,
			)
			if err != nil {
				return nil, err
			}

			update, err := s.priceSource.GetPrice(ctx, asset.OracleFeedID)
			if err != nil {
				return nil, err
			}
			settlementPrice, err := validateOraclePrice(update, asset, now)
			if err != nil {
				return nil, err
			}

			var status domain.PositionStatus
			if err := s.repoManager.PositionRepository().UpdatePosition(
				ctx, userID, positionID,
				func(p *domain.Position) (*domain.Position, error) {
					st, err := p.Settle(settlementPrice, now)
					if err != nil {
						return nil, err
					}
					status = st
					return p, nil
				},
			); err != nil {
				return nil, err
			}

			if err := s.repoManager.MarketMakerRepository().UpdateMarketMaker(
				ctx, position.MakerID,
				func(m *domain.MarketMaker) (*domain.MarketMaker, error) {
					completed, err := checkedIncrement(m.CompletedPositions)
					if err != nil {
						return nil, err
					}
					m.CompletedPositions = completed
					return m, nil
				},
			); err != nil {
				return nil, err
			}

			// Release exactly what was locked at open. An underflow here is
			// book corruption and panics inside Unlock.
			if err := s.repoManager.VaultRepository().UpdateVault(
				ctx, position.MakerID, position.CollateralAssetID(),
				func(v *domain.Vault) (*domain.Vault, error) {
					v.Unlock(position.CollateralLocked)
					return v, nil
				},
			); err != nil {
				return nil, err
			}

			if err := s.payout(ctx, position, status); err != nil {
				return nil, err
			}

			return &SettlementInfo{
				PositionID:      positionID,
				SettlementPrice: settlementPrice,
				Status:          status.String(),
			}, nil
		},
	)
	if err != nil {
		s.metrics.SettleFailures.Inc()
		return nil, err
	}

	s.metrics.PositionsSettled.Inc()
	info := res.(*SettlementInfo)
	log.Infof("position %s settled %s at price %d",
		positionID, info.Status, info.SettlementPrice)
	return info, nil
}

// payout drains both escrows in one atomic batch. In the money, the
// escrows cross: each counterparty receives the other's collateral. Out of
// the money, each escrow returns to its original depositor in full.
func (s *settlementService) payout(
	ctx context.Context, position *domain.Position, status domain.PositionStatus,
) error {
	userEscrowBalance, err := s.ledger.Balance(ctx, position.UserEscrow)
	if err != nil {
		return err
	}
	makerEscrowBalance, err := s.ledger.Balance(ctx, position.MakerEscrow)
	if err != nil {
		return err
	}

	userEscrowAsset := position.UserCollateralAssetID()
	makerEscrowAsset := position.CollateralAssetID()

	userEscrowOwner, makerEscrowOwner := position.UserID, position.MakerID
	if status == domain.PositionStatusSettledITM {
		userEscrowOwner, makerEscrowOwner = position.MakerID, position.UserID
	}
	userEscrowDest := WalletAccount(userEscrowOwner, userEscrowAsset)
	makerEscrowDest := WalletAccount(makerEscrowOwner, makerEscrowAsset)

	// Payout wallets may not exist yet; opening is idempotent.
	if err := s.ledger.OpenAccount(
		ctx, userEscrowDest, userEscrowAsset, userEscrowOwner,
	); err != nil {
		return err
	}
	if err := s.ledger.OpenAccount(
		ctx, makerEscrowDest, makerEscrowAsset, makerEscrowOwner,
	); err != nil {
		return err
	}

	return s.ledger.Transfer(ctx,
		ports.TransferLeg{
			From:       position.UserEscrow,
			To:         userEscrowDest,
			Authorizer: position.EscrowAuthority,
			Amount:     userEscrowBalance,
		},
		ports.TransferLeg{
			From:       position.MakerEscrow,
			To:         makerEscrowDest,
			Authorizer: position.EscrowAuthority,
			Amount:     makerEscrowBalance,
		},
	)
}

// validateOraclePrice enforces the trust boundary on an oracle update and
// normalizes it to the quote currency's precision. The feed identity must
// match the asset's configured feed, the publish time must fall within the
// staleness bound, and the signed price's sign is discarded, not rejected.
func validateOraclePrice(
	update *ports.PriceUpdate, asset *domain.AssetConfig, now int64,
) (uint64, error) {
	if update.FeedID != asset.OracleFeedID {
		return 0, domain.ErrOracleFeedMismatch
	}
	if now-update.PublishTime >= domain.PriceStalenessThreshold {
		return 0, domain.ErrPriceTooStale
	}

	price := update.Price
	if price == math.MinInt64 {
		return 0, domain.ErrMathOverflow
	}
	if price < 0 {
		price = -price
	}

	// The oracle publishes price * 10^Expo; strikes are integers scaled by
	// the quote currency's decimals. Rescale explicitly before comparing.
	scaled := decimal.New(price, update.Expo+int32(asset.QuoteDecimals)).Truncate(0)
	v := scaled.BigInt()
	if !v.IsUint64() {
		return 0, domain.ErrMathOverflow
	}
	return v.Uint64(), nil
}
