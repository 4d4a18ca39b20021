package application

import "github.com/Solation-Finance/solation/internal/core/domain"

// SubmitQuoteArgs are the maker-supplied fields of a new quote.
type SubmitQuoteArgs struct {
	AssetID         string
	Strategy        domain.StrategyType
	Strikes         []domain.StrikeQuote
	ExpiryTimestamp int64
	MinSize         uint64
	MaxSize         uint64
}

// RequestPositionArgs identify a quote by exact key plus the chosen strike
// and size. There is no matching engine: the caller already knows the
// maker, strategy and expiry it wants.
type RequestPositionArgs struct {
	MakerID         string
	AssetID         string
	Strategy        domain.StrategyType
	ExpiryTimestamp int64
	StrikePrice     uint64
	ContractSize    uint64
}

// RequestInfo is returned to the user after a request is created.
type RequestInfo struct {
	RequestID string
	Premium   uint64
	CreatedAt int64
	ExpiresAt int64
}

// PositionInfo summarizes a confirmed position.
type PositionInfo struct {
	PositionID      string
	UserID          string
	MakerID         string
	Strategy        domain.StrategyType
	AssetID         string
	QuoteAssetID    string
	StrikePrice     uint64
	PremiumPaid     uint64
	ContractSize    uint64
	CreatedAt       int64
	ExpiryTimestamp int64
	Status          string
}

// SettlementInfo reports the outcome of a settlement.
type SettlementInfo struct {
	PositionID      string
	SettlementPrice uint64
	Status          string
}

// InitGlobalStateArgs seed the protocol's global record.
type InitGlobalStateArgs struct {
	Authority      string
	Treasury       string
	ProtocolFeeBps uint16
}

func positionInfo(p *domain.Position) *PositionInfo {
	return &PositionInfo{
		PositionID:      p.ID,
		UserID:          p.UserID,
		MakerID:         p.MakerID,
		Strategy:        p.Strategy,
		AssetID:         p.AssetID,
		QuoteAssetID:    p.QuoteAssetID,
		StrikePrice:     p.StrikePrice,
		PremiumPaid:     p.PremiumPaid,
		ContractSize:    p.ContractSize,
		CreatedAt:       p.CreatedAt,
		ExpiryTimestamp: p.ExpiryTimestamp,
		Status:          p.Status.String(),
	}
}
