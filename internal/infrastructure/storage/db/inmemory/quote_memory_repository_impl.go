package inmemory

import (
	"context"
	"sync"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type quoteInmemoryStore struct {
	quotes map[string]domain.Quote
	locker *sync.Mutex
}

type quoteRepositoryImpl struct {
	store *quoteInmemoryStore
}

func newQuoteRepositoryImpl(store *quoteInmemoryStore) domain.QuoteRepository {
	return &quoteRepositoryImpl{store}
}

func (r quoteRepositoryImpl) AddQuote(_ context.Context, quote *domain.Quote) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.quotes[quote.Key()] = *cloneQuote(quote)
	return nil
}

func (r quoteRepositoryImpl) GetQuote(
	_ context.Context, key string,
) (*domain.Quote, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getQuote(key)
}

func (r quoteRepositoryImpl) UpdateQuote(
	_ context.Context, key string,
	updateFn func(q *domain.Quote) (*domain.Quote, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentQuote, err := r.getQuote(key)
	if err != nil {
		return err
	}

	updatedQuote, err := updateFn(currentQuote)
	if err != nil {
		return err
	}

	// The expiry is part of the key, so a rescheduled quote moves.
	if newKey := updatedQuote.Key(); newKey != key {
		delete(r.store.quotes, key)
		key = newKey
	}
	r.store.quotes[key] = *cloneQuote(updatedQuote)
	return nil
}

func (r quoteRepositoryImpl) GetQuotesForMaker(
	_ context.Context, makerID string,
) ([]*domain.Quote, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	quotes := make([]*domain.Quote, 0)
	for key := range r.store.quotes {
		q := r.store.quotes[key]
		if q.MakerID == makerID {
			quotes = append(quotes, cloneQuote(&q))
		}
	}
	return quotes, nil
}

func (r quoteRepositoryImpl) getQuote(key string) (*domain.Quote, error) {
	quote, ok := r.store.quotes[key]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	return cloneQuote(&quote), nil
}

func cloneQuote(q *domain.Quote) *domain.Quote {
	quote := *q
	quote.Strikes = make([]domain.StrikeQuote, len(q.Strikes))
	copy(quote.Strikes, q.Strikes)
	return &quote
}
