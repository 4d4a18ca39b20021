package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type positionRequestRepositoryImpl struct {
	db *repoManager
}

func newPositionRequestRepositoryImpl(
	db *repoManager,
) domain.PositionRequestRepository {
	return positionRequestRepositoryImpl{db}
}

func (p positionRequestRepositoryImpl) AddRequest(
	ctx context.Context, request *domain.PositionRequest,
) error {
	return p.db.insert(ctx, domain.RequestKey(request.UserID, request.ID), request)
}

func (p positionRequestRepositoryImpl) GetRequest(
	ctx context.Context, userID, requestID string,
) (*domain.PositionRequest, error) {
	var request domain.PositionRequest
	if err := p.db.get(ctx, domain.RequestKey(userID, requestID), &request); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (p positionRequestRepositoryImpl) UpdateRequest(
	ctx context.Context, userID, requestID string,
	updateFn func(req *domain.PositionRequest) (*domain.PositionRequest, error),
) error {
	currentRequest, err := p.GetRequest(ctx, userID, requestID)
	if err != nil {
		return err
	}

	updatedRequest, err := updateFn(currentRequest)
	if err != nil {
		return err
	}

	return p.db.upsert(ctx, domain.RequestKey(userID, requestID), updatedRequest)
}
