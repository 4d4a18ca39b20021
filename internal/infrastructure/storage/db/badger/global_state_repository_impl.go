package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

const globalStateKey = "global"

type globalStateRepositoryImpl struct {
	db *repoManager
}

func newGlobalStateRepositoryImpl(db *repoManager) domain.GlobalStateRepository {
	return globalStateRepositoryImpl{db}
}

func (g globalStateRepositoryImpl) InitGlobalState(
	ctx context.Context, state *domain.GlobalState,
) error {
	if err := g.db.insert(ctx, globalStateKey, state); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrGlobalStateAlreadyInitialized
		}
		return err
	}
	return nil
}

func (g globalStateRepositoryImpl) GetGlobalState(
	ctx context.Context,
) (*domain.GlobalState, error) {
	var state domain.GlobalState
	if err := g.db.get(ctx, globalStateKey, &state); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrGlobalStateNotInitialized
		}
		return nil, err
	}
	return &state, nil
}

func (g globalStateRepositoryImpl) UpdateGlobalState(
	ctx context.Context,
	updateFn func(s *domain.GlobalState) (*domain.GlobalState, error),
) error {
	currentState, err := g.GetGlobalState(ctx)
	if err != nil {
		return err
	}

	updatedState, err := updateFn(currentState)
	if err != nil {
		return err
	}

	return g.db.upsert(ctx, globalStateKey, updatedState)
}
