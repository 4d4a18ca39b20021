package inmemory

import (
	"context"
	"sync"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type marketMakerInmemoryStore struct {
	makers map[string]domain.MarketMaker
	locker *sync.Mutex
}

type marketMakerRepositoryImpl struct {
	store *marketMakerInmemoryStore
}

func newMarketMakerRepositoryImpl(
	store *marketMakerInmemoryStore,
) domain.MarketMakerRepository {
	return &marketMakerRepositoryImpl{store}
}

func (r marketMakerRepositoryImpl) AddMarketMaker(
	_ context.Context, maker *domain.MarketMaker,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.makers[maker.Owner] = *maker
	return nil
}

func (r marketMakerRepositoryImpl) GetMarketMaker(
	_ context.Context, owner string,
) (*domain.MarketMaker, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getMarketMaker(owner)
}

func (r marketMakerRepositoryImpl) UpdateMarketMaker(
	_ context.Context, owner string,
	updateFn func(m *domain.MarketMaker) (*domain.MarketMaker, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentMaker, err := r.getMarketMaker(owner)
	if err != nil {
		return err
	}

	updatedMaker, err := updateFn(currentMaker)
	if err != nil {
		return err
	}

	r.store.makers[owner] = *updatedMaker
	return nil
}

func (r marketMakerRepositoryImpl) getMarketMaker(
	owner string,
) (*domain.MarketMaker, error) {
	maker, ok := r.store.makers[owner]
	if !ok {
		return nil, domain.ErrMarketMakerNotFound
	}
	return &maker, nil
}
