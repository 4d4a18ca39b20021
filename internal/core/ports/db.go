package ports

import (
	"context"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

// RepoManager gives access to all repositories and to the unit-of-work
// wrapper every exposed operation runs in. All repository calls made
// through the handler's ctx share one transaction: either every mutation
// commits or none does.
type RepoManager interface {
	MarketMakerRepository() domain.MarketMakerRepository
	VaultRepository() domain.VaultRepository
	QuoteRepository() domain.QuoteRepository
	PositionRequestRepository() domain.PositionRequestRepository
	PositionRepository() domain.PositionRepository
	AssetConfigRepository() domain.AssetConfigRepository
	GlobalStateRepository() domain.GlobalStateRepository

	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)

	Close()
}
