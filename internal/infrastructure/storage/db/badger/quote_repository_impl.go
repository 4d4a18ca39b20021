package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type quoteRepositoryImpl struct {
	db *repoManager
}

func newQuoteRepositoryImpl(db *repoManager) domain.QuoteRepository {
	return quoteRepositoryImpl{db}
}

func (q quoteRepositoryImpl) AddQuote(
	ctx context.Context, quote *domain.Quote,
) error {
	return q.db.upsert(ctx, quote.Key(), quote)
}

func (q quoteRepositoryImpl) GetQuote(
	ctx context.Context, key string,
) (*domain.Quote, error) {
	var quote domain.Quote
	if err := q.db.get(ctx, key, &quote); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}
	return &quote, nil
}

func (q quoteRepositoryImpl) UpdateQuote(
	ctx context.Context, key string,
	updateFn func(quote *domain.Quote) (*domain.Quote, error),
) error {
	currentQuote, err := q.GetQuote(ctx, key)
	if err != nil {
		return err
	}

	updatedQuote, err := updateFn(currentQuote)
	if err != nil {
		return err
	}

	// The expiry is part of the key, so a rescheduled quote moves.
	if newKey := updatedQuote.Key(); newKey != key {
		if err := q.db.delete(ctx, key, domain.Quote{}); err != nil {
			return err
		}
		key = newKey
	}
	return q.db.upsert(ctx, key, updatedQuote)
}

func (q quoteRepositoryImpl) GetQuotesForMaker(
	ctx context.Context, makerID string,
) ([]*domain.Quote, error) {
	var quotes []domain.Quote
	query := badgerhold.Where("MakerID").Eq(makerID)
	if err := q.db.find(ctx, &quotes, query); err != nil {
		return nil, err
	}

	res := make([]*domain.Quote, 0, len(quotes))
	for i := range quotes {
		res = append(res, &quotes[i])
	}
	return res, nil
}
