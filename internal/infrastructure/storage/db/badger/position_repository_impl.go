package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type positionRepositoryImpl struct {
	db *repoManager
}

func newPositionRepositoryImpl(db *repoManager) domain.PositionRepository {
	return positionRepositoryImpl{db}
}

func (p positionRepositoryImpl) AddPosition(
	ctx context.Context, position *domain.Position,
) error {
	return p.db.insert(ctx, domain.PositionKey(position.UserID, position.ID), position)
}

func (p positionRepositoryImpl) GetPosition(
	ctx context.Context, userID, positionID string,
) (*domain.Position, error) {
	var position domain.Position
	if err := p.db.get(ctx, domain.PositionKey(userID, positionID), &position); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrPositionNotFound
		}
		return nil, err
	}
	return &position, nil
}

func (p positionRepositoryImpl) UpdatePosition(
	ctx context.Context, userID, positionID string,
	updateFn func(pos *domain.Position) (*domain.Position, error),
) error {
	currentPosition, err := p.GetPosition(ctx, userID, positionID)
	if err != nil {
		return err
	}

	updatedPosition, err := updateFn(currentPosition)
	if err != nil {
		return err
	}

	return p.db.upsert(ctx, domain.PositionKey(userID, positionID), updatedPosition)
}

func (p positionRepositoryImpl) GetPositionsForUser(
	ctx context.Context, userID string,
) ([]*domain.Position, error) {
	return p.findPositions(ctx, badgerhold.Where("UserID").Eq(userID))
}

func (p positionRepositoryImpl) GetPositionsForMaker(
	ctx context.Context, makerID string,
) ([]*domain.Position, error) {
	return p.findPositions(ctx, badgerhold.Where("MakerID").Eq(makerID))
}

func (p positionRepositoryImpl) findPositions(
	ctx context.Context, query *badgerhold.Query,
) ([]*domain.Position, error) {
	var positions []domain.Position
	if err := p.db.find(ctx, &positions, query); err != nil {
		return nil, err
	}

	res := make([]*domain.Position, 0, len(positions))
	for i := range positions {
		res = append(res, &positions[i])
	}
	return res, nil
}
