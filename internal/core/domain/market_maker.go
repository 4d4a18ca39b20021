package domain

// MarketMaker is a registered liquidity provider. Created once per owner
// identity; mutated only through protocol operations acting on its behalf.
type MarketMaker struct {
	Owner              string
	Active             bool
	TotalPositions     uint64
	CompletedPositions uint64
	ReputationScore    uint16
}

// NewMarketMaker registers a maker in active state with the initial
// reputation score.
func NewMarketMaker(owner string) *MarketMaker {
	return &MarketMaker{
		Owner:           owner,
		Active:          true,
		ReputationScore: InitialReputationScore,
	}
}
