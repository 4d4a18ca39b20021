package domain

import "context"

// PositionRepository persists confirmed positions. Settled positions are
// finalized in place, never deleted.
type PositionRepository interface {
	AddPosition(ctx context.Context, position *Position) error
	GetPosition(ctx context.Context, userID, positionID string) (*Position, error)
	UpdatePosition(
		ctx context.Context, userID, positionID string,
		updateFn func(p *Position) (*Position, error),
	) error
	GetPositionsForUser(ctx context.Context, userID string) ([]*Position, error)
	GetPositionsForMaker(ctx context.Context, makerID string) ([]*Position, error)
}
