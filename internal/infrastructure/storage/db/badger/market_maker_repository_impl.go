package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type marketMakerRepositoryImpl struct {
	db *repoManager
}

func newMarketMakerRepositoryImpl(db *repoManager) domain.MarketMakerRepository {
	return marketMakerRepositoryImpl{db}
}

func (m marketMakerRepositoryImpl) AddMarketMaker(
	ctx context.Context, maker *domain.MarketMaker,
) error {
	if err := m.db.insert(ctx, maker.Owner, maker); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrMarketMakerAlreadyRegistered
		}
		return err
	}
	return nil
}

func (m marketMakerRepositoryImpl) GetMarketMaker(
	ctx context.Context, owner string,
) (*domain.MarketMaker, error) {
	var maker domain.MarketMaker
	if err := m.db.get(ctx, owner, &maker); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrMarketMakerNotFound
		}
		return nil, err
	}
	return &maker, nil
}

func (m marketMakerRepositoryImpl) UpdateMarketMaker(
	ctx context.Context, owner string,
	updateFn func(mm *domain.MarketMaker) (*domain.MarketMaker, error),
) error {
	currentMaker, err := m.GetMarketMaker(ctx, owner)
	if err != nil {
		return err
	}

	updatedMaker, err := updateFn(currentMaker)
	if err != nil {
		return err
	}

	return m.db.upsert(ctx, owner, updatedMaker)
}
