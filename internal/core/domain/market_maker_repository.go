package domain

import "context"

// MarketMakerRepository persists maker records. Update functions run
// inside the transaction carried by ctx so that every precondition is
// re-validated in the same atomic unit that commits the transition.
type MarketMakerRepository interface {
	AddMarketMaker(ctx context.Context, maker *MarketMaker) error
	GetMarketMaker(ctx context.Context, owner string) (*MarketMaker, error)
	UpdateMarketMaker(
		ctx context.Context, owner string,
		updateFn func(m *MarketMaker) (*MarketMaker, error),
	) error
}
