package domain

import "context"

// GlobalStateRepository persists the protocol's single global record.
type GlobalStateRepository interface {
	InitGlobalState(ctx context.Context, state *GlobalState) error
	GetGlobalState(ctx context.Context) (*GlobalState, error)
	UpdateGlobalState(
		ctx context.Context,
		updateFn func(s *GlobalState) (*GlobalState, error),
	) error
}
