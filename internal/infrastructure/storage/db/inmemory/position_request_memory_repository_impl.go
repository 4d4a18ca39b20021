package inmemory

import (
	"context"
	"sync"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type positionRequestInmemoryStore struct {
	requests map[string]domain.PositionRequest
	locker   *sync.Mutex
}

type positionRequestRepositoryImpl struct {
	store *positionRequestInmemoryStore
}

func newPositionRequestRepositoryImpl(
	store *positionRequestInmemoryStore,
) domain.PositionRequestRepository {
	return &positionRequestRepositoryImpl{store}
}

func (r positionRequestRepositoryImpl) AddRequest(
	_ context.Context, request *domain.PositionRequest,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.requests[domain.RequestKey(request.UserID, request.ID)] = *request
	return nil
}

func (r positionRequestRepositoryImpl) GetRequest(
	_ context.Context, userID, requestID string,
) (*domain.PositionRequest, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getRequest(userID, requestID)
}

func (r positionRequestRepositoryImpl) UpdateRequest(
	_ context.Context, userID, requestID string,
	updateFn func(req *domain.PositionRequest) (*domain.PositionRequest, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentRequest, err := r.getRequest(userID, requestID)
	if err != nil {
		return err
	}

	updatedRequest, err := updateFn(currentRequest)
	if err != nil {
		return err
	}

	r.store.requests[domain.RequestKey(userID, requestID)] = *updatedRequest
	return nil
}

func (r positionRequestRepositoryImpl) getRequest(
	userID, requestID string,
) (*domain.PositionRequest, error) {
	request, ok := r.store.requests[domain.RequestKey(userID, requestID)]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return &request, nil
}
