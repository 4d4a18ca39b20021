package domain

import "context"

// QuoteRepository persists quotes, located by exact key only.
type QuoteRepository interface {
	AddQuote(ctx context.Context, quote *Quote) error
	GetQuote(ctx context.Context, key string) (*Quote, error)
	// UpdateQuote re-keys the record when the update changes the expiry,
	// since the expiry is part of the key.
	UpdateQuote(
		ctx context.Context, key string,
		updateFn func(q *Quote) (*Quote, error),
	) error
	GetQuotesForMaker(ctx context.Context, makerID string) ([]*Quote, error)
}
