package ports

import "context"

// PriceUpdate is a raw oracle observation. Price is signed and scaled by
// 10^Expo; consumers must validate FeedID and PublishTime before use.
type PriceUpdate struct {
	FeedID      string
	Price       int64
	Expo        int32
	PublishTime int64
}

// PriceSource fetches price updates for a feed. Always treated as
// untrusted input.
type PriceSource interface {
	GetPrice(ctx context.Context, feedID string) (*PriceUpdate, error)
}
