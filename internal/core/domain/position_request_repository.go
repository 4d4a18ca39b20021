package domain

import "context"

// PositionRequestRepository persists the ephemeral two-phase-commit
// records. A request is closed by its terminal status, so a confirm
// attempt arriving after cancellation still finds the record and fails
// with the expiry error rather than a lookup miss.
type PositionRequestRepository interface {
	AddRequest(ctx context.Context, request *PositionRequest) error
	GetRequest(ctx context.Context, userID, requestID string) (*PositionRequest, error)
	UpdateRequest(
		ctx context.Context, userID, requestID string,
		updateFn func(r *PositionRequest) (*PositionRequest, error),
	) error
}
