package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Solation-Finance/solation/internal/core/domain"
	"github.com/Solation-Finance/solation/internal/core/ports"
	"github.com/Solation-Finance/solation/internal/metrics"
)

// OperatorService is the maker-facing surface: liquidity management,
// quote publishing and the maker's half of the position-request handshake.
type OperatorService interface {
	RegisterMarketMaker(ctx context.Context, owner string) error
	GetMarketMaker(ctx context.Context, owner string) (*domain.MarketMaker, error)
	InitializeVault(ctx context.Context, owner, assetID string) error
	DepositLiquidity(ctx context.Context, owner, assetID string, amount uint64) error
	WithdrawLiquidity(ctx context.Context, owner, assetID string, amount uint64) error
	ListVaults(ctx context.Context, owner string) ([]*domain.Vault, error)
	SubmitQuote(ctx context.Context, owner string, args SubmitQuoteArgs) (string, error)
	UpdateQuote(ctx context.Context, owner, quoteKey string, update domain.QuoteUpdate) error
	ListQuotes(ctx context.Context, owner string) ([]*domain.Quote, error)
	ConfirmPosition(ctx context.Context, owner, userID, requestID string) (*PositionInfo, error)
	RejectRequest(ctx context.Context, owner, userID, requestID string) error
}

type operatorService struct {
	repoManager ports.RepoManager
	ledger      ports.Ledger
	metrics     *metrics.Metrics
}

func NewOperatorService(
	repoManager ports.RepoManager, ledger ports.Ledger, m *metrics.Metrics,
) OperatorService {
	if m == nil {
		m = metrics.NewNoop()
	}
	return &operatorService{repoManager: repoManager, ledger: ledger, metrics: m}
}

func (o *operatorService) RegisterMarketMaker(ctx context.Context, owner string) error {
	_, err := o.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			if _, err := o.repoManager.MarketMakerRepository().GetMarketMaker(
				ctx, owner,
			); err == nil {
				return nil, domain.ErrMarketMakerAlreadyRegistered
			}
			maker := domain.NewMarketMaker(owner)
			if err := o.repoManager.MarketMakerRepository().AddMarketMaker(
				ctx, maker,
			); err != nil {
				return nil, err
			}
			return nil, nil
		},
	)
	if err != nil {
		return err
	}

	log.Infof("market maker registered: %s", owner)
	return nil
}

func (o *operatorService) GetMarketMaker(
	ctx context.Context, owner string,
) (*domain.MarketMaker, error) {
	return o.repoManager.MarketMakerRepository().GetMarketMaker(ctx, owner)
}

func (o *operatorService) InitializeVault(
	ctx context.Context, owner, assetID string,
) error {
	_, err := o.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			if _, err := o.repoManager.MarketMakerRepository().GetMarketMaker(
				ctx, owner,
			); err != nil {
				return nil, err
			}
			if _, err := o.repoManager.VaultRepository().GetVault(
				ctx, owner, assetID,
			); err == nil {
				return nil, domain.ErrVaultAlreadyInitialized
			}
			if err := o.repoManager.VaultRepository().AddVault(
				ctx, domain.NewVault(owner, assetID),
			); err != nil {
				return nil, err
			}
			return nil, o.ledger.OpenAccount(
				ctx, vaultAccount(owner, assetID), assetID, vaultAuthority(owner, assetID),
			)
		},
	)
	if err != nil {
		return err
	}

	log.Infof("vault initialized for maker %s, asset %s", owner, assetID)
	return nil
}

// DepositLiquidity moves amount from the owner's wallet into vault custody
// and credits the vault's balances. The ledger transfer is the authorization
// check: only the owner can debit their wallet.
func (o *operatorService) DepositLiquidity(
	ctx context.Context, owner, assetID string, amount uint64,
) error {
	_, err := o.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			if err := o.repoManager.VaultRepository().UpdateVault(
				ctx, owner, assetID,
				func(v *domain.Vault) (*domain.Vault, error) {
					if err := v.Deposit(amount); err != nil {
						return nil, err
					}
					return v, nil
				},
			); err != nil {
				return nil, err
			}
			return nil, o.ledger.Transfer(ctx, ports.TransferLeg{
				From:       WalletAccount(owner, assetID),
				To:         vaultAccount(owner, assetID),
				Authorizer: owner,
				Amount:     amount,
			})
		},
	)
	if err != nil {
		return fmt.Errorf("deposit: %w", err)
	}

	log.Debugf("maker %s deposited %d of %s", owner, amount, assetID)
	return nil
}

func (o *operatorService) WithdrawLiquidity(
	ctx context.Context, owner, assetID string, amount uint64,
) error {
	_, err := o.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			if err := o.repoManager.VaultRepository().UpdateVault(
				ctx, owner, assetID,
				func(v *domain.Vault) (*domain.Vault, error) {
					if err := v.Withdraw(amount); err != nil {
						return nil, err
					}
					return v, nil
				},
			); err != nil {
				return nil, err
			}
			return nil, o.ledger.Transfer(ctx, ports.TransferLeg{
				From:       vaultAccount(owner, assetID),
				To:         WalletAccount(owner, assetID),
				Authorizer: vaultAuthority(owner, assetID),
				Amount:     amount,
			})
		},
	)
	if err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}

	log.Debugf("maker %s withdrew %d of %s", owner, amount, assetID)
	return nil
}

func (o *operatorService) ListVaults(
	ctx context.Context, owner string,
) ([]*domain.Vault, error) {
	return o.repoManager.VaultRepository().GetVaultsForMaker(ctx, owner)
}

func (o *operatorService) SubmitQuote(
	ctx context.Context, owner string, args SubmitQuoteArgs,
) (string, error) {
	key, err := o.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			maker, err := o.repoManager.MarketMakerRepository().GetMarketMaker(ctx, owner)
			if err != nil {
				return nil, err
			}
			if !maker.Active {
				return nil, domain.ErrMarketMakerNotActive
			}

			asset, err := o.repoManager.AssetConfigRepository().GetAssetConfig(
				ctx, args.AssetID,
			)
			if err != nil {
				return nil, err
			}
			if !asset.Enabled {
				return nil, domain.ErrAssetNotEnabled
			}

			quote, err := domain.NewQuote(
				owner, args.AssetID, asset.QuoteAssetID, args.Strategy,
				args.Strikes, args.ExpiryTimestamp, args.MinSize, args.MaxSize,
				nowUnix(),
			)
			if err != nil {
				return nil, err
			}
			if err := o.repoManager.QuoteRepository().AddQuote(ctx, quote); err != nil {
				return nil, err
			}
			return quote.Key(), nil
		},
	)
	if err != nil {
		return "", err
	}

	log.Infof("quote submitted by maker %s for asset %s", owner, args.AssetID)
	return key.(string), nil
}

func (o *operatorService) UpdateQuote(
	ctx context.Context, owner, quoteKey string, update domain.QuoteUpdate,
) error {
	_, err := o.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, o.repoManager.QuoteRepository().UpdateQuote(
				ctx, quoteKey,
				func(q *domain.Quote) (*domain.Quote, error) {
					if q.MakerID != owner {
						return nil, domain.ErrUnauthorized
					}
					if err := q.Update(update, nowUnix()); err != nil {
						return nil, err
					}
					return q, nil
				},
			)
		},
	)
	return err
}

func (o *operatorService) ListQuotes(
	ctx context.Context, owner string,
) ([]*domain.Quote, error) {
	return o.repoManager.QuoteRepository().GetQuotesForMaker(ctx, owner)
}

// ConfirmPosition is the maker's half of the two-phase handshake. All
// preconditions are re-validated inside the transaction; strike, size and
// premium are re-derived from the stored request, never from caller input.
func (o *operatorService) ConfirmPosition(
	ctx context.Context, owner, userID, requestID string,
) (*PositionInfo, error) {
	res, err := o.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			now := nowUnix()

			state, err := o.repoManager.GlobalStateRepository().GetGlobalState(ctx)
			if err != nil {
				return nil, err
			}
			if state.Paused {
				return nil, domain.ErrProtocolPaused
			}

			maker, err := o.repoManager.MarketMakerRepository().GetMarketMaker(ctx, owner)
			if err != nil {
				return nil, err
			}
			if !maker.Active {
				return nil, domain.ErrMarketMakerNotActive
			}

			request, err := o.repoManager.PositionRequestRepository().GetRequest(
				ctx, userID, requestID,
			)
			if err != nil {
				return nil, err
			}
			if request.MakerID != owner {
				return nil, domain.ErrUnauthorizedConfirmation
			}
			if request.Status == domain.RequestStatusExpired {
				return nil, domain.ErrRequestExpired
			}

			quote, err := o.repoManager.QuoteRepository().GetQuote(ctx, request.QuoteKey)
			if err != nil {
				return nil, err
			}
			asset, err := o.repoManager.AssetConfigRepository().GetAssetConfig(
				ctx, request.AssetID,
			)
			if err != nil {
				return nil, err
			}

			if err := o.repoManager.PositionRequestRepository().UpdateRequest(
				ctx, userID, requestID,
				func(r *domain.PositionRequest) (*domain.PositionRequest, error) {
					if err := r.Accept(now); err != nil {
						return nil, err
					}
					return r, nil
				},
			); err != nil {
				return nil, err
			}

			position, err := openPosition(ctx, o.repoManager, o.ledger, openPositionParams{
				userID:          userID,
				maker:           maker,
				strategy:        request.Strategy,
				assetID:         request.AssetID,
				quoteAssetID:    request.QuoteAssetID,
				assetDecimals:   asset.Decimals,
				strikePrice:     request.StrikePrice,
				contractSize:    request.ContractSize,
				premium:         request.Premium,
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

	o.metrics.RequestsConfirmed.Inc()
	o.metrics.PositionsOpened.Inc()
	info := res.(*PositionInfo)
	log.Infof("position confirmed: %s (request %s)", info.PositionID, requestID)
	return info, nil
}

func (o *operatorService) RejectRequest(
	ctx context.Context, owner, userID, requestID string,
) error {
	_, err := o.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, o.repoManager.PositionRequestRepository().UpdateRequest(
				ctx, userID, requestID,
				func(r *domain.PositionRequest) (*domain.PositionRequest, error) {
					if r.MakerID != owner {
						return nil, domain.ErrUnauthorizedConfirmation
					}
					if err := r.Reject(); err != nil {
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

	o.metrics.RequestsRejected.Inc()
	log.Debugf("request %s rejected by maker %s", requestID, owner)
	return nil
}
