package inmemory

import (
	"context"
	"sync"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type globalStateInmemoryStore struct {
	state  *domain.GlobalState
	locker *sync.Mutex
}

func (s *globalStateInmemoryStore) get() *domain.GlobalState {
	s.locker.Lock()
	defer s.locker.Unlock()

	if s.state == nil {
		return nil
	}
	state := *s.state
	return &state
}

func (s *globalStateInmemoryStore) set(state *domain.GlobalState) {
	s.locker.Lock()
	defer s.locker.Unlock()

	s.state = state
}

type globalStateRepositoryImpl struct {
	store *globalStateInmemoryStore
}

func newGlobalStateRepositoryImpl(
	store *globalStateInmemoryStore,
) domain.GlobalStateRepository {
	return &globalStateRepositoryImpl{store}
}

func (r globalStateRepositoryImpl) InitGlobalState(
	_ context.Context, state *domain.GlobalState,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if r.store.state != nil {
		return domain.ErrGlobalStateAlreadyInitialized
	}
	s := *state
	r.store.state = &s
	return nil
}

func (r globalStateRepositoryImpl) GetGlobalState(
	_ context.Context,
) (*domain.GlobalState, error) {
	state := r.store.get()
	if state == nil {
		return nil, domain.ErrGlobalStateNotInitialized
	}
	return state, nil
}

func (r globalStateRepositoryImpl) UpdateGlobalState(
	_ context.Context,
	updateFn func(s *domain.GlobalState) (*domain.GlobalState, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if r.store.state == nil {
		return domain.ErrGlobalStateNotInitialized
	}
	currentState := *r.store.state

	updatedState, err := updateFn(&currentState)
	if err != nil {
		return err
	}

	r.store.state = updatedState
	return nil
}
