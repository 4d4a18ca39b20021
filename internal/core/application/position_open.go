package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Solation-Finance/solation/internal/core/domain"
	"github.com/Solation-Finance/solation/internal/core/ports"
)

// openPositionParams carries everything needed to turn an agreed trade into
// an escrow-backed position. Values are re-derived from stored records by
// the caller inside the same transaction that runs the open.
type openPositionParams struct {
	userID          string
	maker           *domain.MarketMaker
	strategy        domain.StrategyType
	assetID         string
	quoteAssetID    string
	assetDecimals   uint8
	strikePrice     uint64
	contractSize    uint64
	premium         uint64
	expiryTimestamp int64
	now             int64
}

func (p openPositionParams) sideAsset(side domain.CollateralSide) string {
	if side == domain.SideUnderlying {
		return p.assetID
	}
	return p.quoteAssetID
}

// openPosition executes the strategy's collateral routing as one
// all-or-nothing unit: locks the maker's collateral, debits the premium,
// creates the position with its two escrow accounts and updates the
// aggregate counters. The ledger transfer runs last so that any earlier
// failure aborts with zero funds moved.
func openPosition(
	ctx context.Context,
	repoManager ports.RepoManager,
	ledger ports.Ledger,
	p openPositionParams,
) (*domain.Position, error) {
	legs, err := p.strategy.OpenLegs(p.strikePrice, p.contractSize, p.assetDecimals)
	if err != nil {
		return nil, err
	}

	collateralAssetID := p.sideAsset(legs.MakerSide)

	if err := repoManager.VaultRepository().UpdateVault(
		ctx, p.maker.Owner, collateralAssetID,
		func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.Lock(legs.MakerAmount); err != nil {
				return nil, err
			}
			return v, nil
		},
	); err != nil {
		return nil, err
	}

	// The premium always leaves the maker's quote-currency vault. For a
	// covered call that is the same vault the collateral was just locked
	// in, so the two debits naturally compound inside the transaction.
	if err := repoManager.VaultRepository().UpdateVault(
		ctx, p.maker.Owner, p.quoteAssetID,
		func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.Withdraw(p.premium); err != nil {
				return nil, err
			}
			return v, nil
		},
	); err != nil {
		return nil, err
	}

	positionID := uuid.New().String()
	position := &domain.Position{
		ID:               positionID,
		UserID:           p.userID,
		MakerID:          p.maker.Owner,
		Strategy:         p.strategy,
		AssetID:          p.assetID,
		QuoteAssetID:     p.quoteAssetID,
		StrikePrice:      p.strikePrice,
		PremiumPaid:      p.premium,
		ContractSize:     p.contractSize,
		CreatedAt:        p.now,
		ExpiryTimestamp:  p.expiryTimestamp,
		Status:           domain.PositionStatusActive,
		UserEscrow:       userEscrowAccount(positionID),
		MakerEscrow:      makerEscrowAccount(positionID),
		EscrowAuthority:  escrowAuthority(positionID),
		CollateralLocked: legs.MakerAmount,
	}

	if err := repoManager.PositionRepository().AddPosition(ctx, position); err != nil {
		return nil, err
	}

	if err := repoManager.MarketMakerRepository().UpdateMarketMaker(
		ctx, p.maker.Owner,
		func(m *domain.MarketMaker) (*domain.MarketMaker, error) {
			total, err := checkedIncrement(m.TotalPositions)
			if err != nil {
				return nil, err
			}
			m.TotalPositions = total
			return m, nil
		},
	); err != nil {
		return nil, err
	}

	if err := repoManager.GlobalStateRepository().UpdateGlobalState(
		ctx, func(s *domain.GlobalState) (*domain.GlobalState, error) {
			if err := s.RecordPosition(p.contractSize); err != nil {
				return nil, err
			}
			return s, nil
		},
	); err != nil {
		return nil, err
	}

	if err := ledger.OpenAccount(
		ctx, position.UserEscrow, p.sideAsset(legs.UserSide), position.EscrowAuthority,
	); err != nil {
		return nil, err
	}
	if err := ledger.OpenAccount(
		ctx, position.MakerEscrow, collateralAssetID, position.EscrowAuthority,
	); err != nil {
		return nil, err
	}

	// The premium destination may be a wallet the user never touched
	// before, e.g. the quote-currency wallet of a covered-call writer.
	if err := ledger.OpenAccount(
		ctx, WalletAccount(p.userID, p.quoteAssetID), p.quoteAssetID, p.userID,
	); err != nil {
		return nil, err
	}

	if err := ledger.Transfer(ctx,
		ports.TransferLeg{
			From:       WalletAccount(p.userID, p.sideAsset(legs.UserSide)),
			To:         position.UserEscrow,
			Authorizer: p.userID,
			Amount:     legs.UserAmount,
		},
		ports.TransferLeg{
			From:       vaultAccount(p.maker.Owner, collateralAssetID),
			To:         position.MakerEscrow,
			Authorizer: vaultAuthority(p.maker.Owner, collateralAssetID),
			Amount:     legs.MakerAmount,
		},
		ports.TransferLeg{
			From:       vaultAccount(p.maker.Owner, p.quoteAssetID),
			To:         WalletAccount(p.userID, p.quoteAssetID),
			Authorizer: vaultAuthority(p.maker.Owner, p.quoteAssetID),
			Amount:     p.premium,
		},
	); err != nil {
		return nil, err
	}

	return position, nil
}

func checkedIncrement(v uint64) (uint64, error) {
	if v == ^uint64(0) {
		return 0, domain.ErrMathOverflow
	}
	return v + 1, nil
}

func nowUnix() int64 {
	return time.Now().Unix()
}
