package inmemory

import (
	"context"
	"sync"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type positionInmemoryStore struct {
	positions map[string]domain.Position
	locker    *sync.Mutex
}

type positionRepositoryImpl struct {
	store *positionInmemoryStore
}

func newPositionRepositoryImpl(
	store *positionInmemoryStore,
) domain.PositionRepository {
	return &positionRepositoryImpl{store}
}

func (r positionRepositoryImpl) AddPosition(
	_ context.Context, position *domain.Position,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.positions[domain.PositionKey(position.UserID, position.ID)] = *clonePosition(position)
	return nil
}

func (r positionRepositoryImpl) GetPosition(
	_ context.Context, userID, positionID string,
) (*domain.Position, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getPosition(userID, positionID)
}

func (r positionRepositoryImpl) UpdatePosition(
	_ context.Context, userID, positionID string,
	updateFn func(p *domain.Position) (*domain.Position, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentPosition, err := r.getPosition(userID, positionID)
	if err != nil {
		return err
	}

	updatedPosition, err := updateFn(currentPosition)
	if err != nil {
		return err
	}

	r.store.positions[domain.PositionKey(userID, positionID)] = *clonePosition(updatedPosition)
	return nil
}

func (r positionRepositoryImpl) GetPositionsForUser(
	_ context.Context, userID string,
) ([]*domain.Position, error) {
	return r.listPositions(func(p *domain.Position) bool {
		return p.UserID == userID
	})
}

func (r positionRepositoryImpl) GetPositionsForMaker(
	_ context.Context, makerID string,
) ([]*domain.Position, error) {
	return r.listPositions(func(p *domain.Position) bool {
		return p.MakerID == makerID
	})
}

func (r positionRepositoryImpl) listPositions(
	selector func(p *domain.Position) bool,
) ([]*domain.Position, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	positions := make([]*domain.Position, 0)
	for key := range r.store.positions {
		p := r.store.positions[key]
		if selector(&p) {
			positions = append(positions, clonePosition(&p))
		}
	}
	return positions, nil
}

func (r positionRepositoryImpl) getPosition(
	userID, positionID string,
) (*domain.Position, error) {
	position, ok := r.store.positions[domain.PositionKey(userID, positionID)]
	if !ok {
		return nil, domain.ErrPositionNotFound
	}
	return clonePosition(&position), nil
}

func clonePosition(p *domain.Position) *domain.Position {
	position := *p
	if p.SettlementPrice != nil {
		price := *p.SettlementPrice
		position.SettlementPrice = &price
	}
	return &position
}
