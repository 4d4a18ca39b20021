package domain

import "fmt"

// StrikeQuote is one strike entry of a quote. AvailableContracts is
// advisory capacity: it is checked when a request is created but never
// decremented, so concurrent requests may collectively exceed it.
type StrikeQuote struct {
	StrikePrice        uint64
	PremiumPerContract uint64
	AvailableContracts uint64
}

// Quote is a maker's published offer for one (asset, strategy, expiry)
// tuple. It is replaced field-wholesale on update, never merged.
type Quote struct {
	MakerID         string
	AssetID         string
	QuoteAssetID    string
	Strategy        StrategyType
	Strikes         []StrikeQuote
	ExpiryTimestamp int64
	MinSize         uint64
	MaxSize         uint64
	LastUpdated     int64
	Active          bool
}

// QuoteKey is the exact-match storage key of a quote. There is no scan or
// matching engine: discovery is an external concern.
func QuoteKey(makerID, assetID string, strategy StrategyType, expiry int64) string {
	return fmt.Sprintf("%s:%s:%d:%d", makerID, assetID, strategy, expiry)
}

// NewQuote validates and builds a quote, enforcing the strike-list bound,
// the size range and expiry-vs-now.
func NewQuote(
	makerID, assetID, quoteAssetID string,
	strategy StrategyType,
	strikes []StrikeQuote,
	expiryTimestamp int64,
	minSize, maxSize uint64,
	now int64,
) (*Quote, error) {
	if err := strategy.Validate(); err != nil {
		return nil, err
	}
	if len(strikes) > MaxStrikesPerQuote {
		return nil, ErrTooManyStrikes
	}
	if minSize == 0 || maxSize < minSize {
		return nil, ErrInvalidQuoteParameters
	}
	if expiryTimestamp <= now {
		return nil, ErrQuoteExpired
	}

	return &Quote{
		MakerID:         makerID,
		AssetID:         assetID,
		QuoteAssetID:    quoteAssetID,
		Strategy:        strategy,
		Strikes:         strikes,
		ExpiryTimestamp: expiryTimestamp,
		MinSize:         minSize,
		MaxSize:         maxSize,
		LastUpdated:     now,
		Active:          true,
	}, nil
}

// Key returns the quote's storage key.
func (q *Quote) Key() string {
	return QuoteKey(q.MakerID, q.AssetID, q.Strategy, q.ExpiryTimestamp)
}

// IsExpired returns whether the quote's own expiry has passed.
func (q *Quote) IsExpired(now int64) bool {
	return now >= q.ExpiryTimestamp
}

// FindStrike returns the strike entry exactly matching strikePrice.
func (q *Quote) FindStrike(strikePrice uint64) (*StrikeQuote, error) {
	for i := range q.Strikes {
		if q.Strikes[i].StrikePrice == strikePrice {
			return &q.Strikes[i], nil
		}
	}
	return nil, ErrStrikePriceNotFound
}

// QuoteUpdate carries the optional fields of an update. A nil field keeps
// the current value; a set field replaces it wholesale.
type QuoteUpdate struct {
	Strikes         *[]StrikeQuote
	ExpiryTimestamp *int64
	MinSize         *uint64
	MaxSize         *uint64
	Active          *bool
}

// Update applies u and refreshes LastUpdated. A changed expiry is
// re-validated against now; a changed strike list against the bound. The
// size range is re-validated whenever either end changes.
func (q *Quote) Update(u QuoteUpdate, now int64) error {
	minSize, maxSize := q.MinSize, q.MaxSize
	if u.MinSize != nil {
		minSize = *u.MinSize
	}
	if u.MaxSize != nil {
		maxSize = *u.MaxSize
	}
	if minSize == 0 || maxSize < minSize {
		return ErrInvalidQuoteParameters
	}
	if u.Strikes != nil && len(*u.Strikes) > MaxStrikesPerQuote {
		return ErrTooManyStrikes
	}
	if u.ExpiryTimestamp != nil && *u.ExpiryTimestamp <= now {
		return ErrQuoteExpired
	}

	if u.Strikes != nil {
		q.Strikes = *u.Strikes
	}
	if u.ExpiryTimestamp != nil {
		q.ExpiryTimestamp = *u.ExpiryTimestamp
	}
	q.MinSize = minSize
	q.MaxSize = maxSize
	if u.Active != nil {
		q.Active = *u.Active
	}
	q.LastUpdated = now
	return nil
}
