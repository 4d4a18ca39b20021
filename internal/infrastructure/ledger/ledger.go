// Package ledger provides the in-process implementation of the token
// custody service the trading core delegates balance movement to.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Solation-Finance/solation/internal/core/ports"
	"github.com/Solation-Finance/solation/pkg/mathutil"
)

var (
	ErrAccountNotFound   = errors.New("ledger: account not found")
	ErrAccountExists     = errors.New("ledger: account already exists with different parameters")
	ErrUnauthorizedDebit = errors.New("ledger: authorizer does not hold the account's authority")
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
	ErrAssetMismatch     = errors.New("ledger: transfer across different assets")
	ErrEmptyTransfer     = errors.New("ledger: transfer with no legs")
)

type account struct {
	assetID   string
	authority string
	balance   uint64
}

// InMemory is a map-backed ledger. Transfers apply all legs or none under
// a single lock.
type InMemory struct {
	accounts map[string]*account
	locker   sync.Mutex
}

func NewInMemory() *InMemory {
	return &InMemory{accounts: map[string]*account{}}
}

func (l *InMemory) OpenAccount(
	_ context.Context, accountID, assetID, authority string,
) error {
	l.locker.Lock()
	defer l.locker.Unlock()

	if existing, ok := l.accounts[accountID]; ok {
		if existing.assetID != assetID || existing.authority != authority {
			return fmt.Errorf("%w: %s", ErrAccountExists, accountID)
		}
		return nil
	}
	l.accounts[accountID] = &account{assetID: assetID, authority: authority}
	return nil
}

func (l *InMemory) Transfer(_ context.Context, legs ...ports.TransferLeg) error {
	l.locker.Lock()
	defer l.locker.Unlock()

	if len(legs) == 0 {
		return ErrEmptyTransfer
	}

	// Validate every leg before touching any balance, so the apply loop
	// below cannot fail half way. Legs debiting or crediting the same
	// account must clear as a running total, not individually.
	debits := map[string]uint64{}
	credits := map[string]uint64{}
	for _, leg := range legs {
		from, ok := l.accounts[leg.From]
		if !ok {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, leg.From)
		}
		to, ok := l.accounts[leg.To]
		if !ok {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, leg.To)
		}
		if leg.Authorizer != from.authority {
			return fmt.Errorf("%w: %s", ErrUnauthorizedDebit, leg.From)
		}
		if from.assetID != to.assetID {
			return fmt.Errorf("%w: %s -> %s", ErrAssetMismatch, leg.From, leg.To)
		}

		debited, err := mathutil.CheckedAdd(debits[leg.From], leg.Amount)
		if err != nil {
			return err
		}
		if debited > from.balance {
			return fmt.Errorf("%w: %s", ErrInsufficientFunds, leg.From)
		}
		debits[leg.From] = debited

		credited, err := mathutil.CheckedAdd(credits[leg.To], leg.Amount)
		if err != nil {
			return err
		}
		if _, err := mathutil.CheckedAdd(to.balance, credited); err != nil {
			return err
		}
		credits[leg.To] = credited
	}

	for _, leg := range legs {
		l.accounts[leg.From].balance -= leg.Amount
		l.accounts[leg.To].balance += leg.Amount
	}
	return nil
}

func (l *InMemory) Balance(_ context.Context, accountID string) (uint64, error) {
	l.locker.Lock()
	defer l.locker.Unlock()

	acc, ok := l.accounts[accountID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return acc.balance, nil
}

// Fund credits an account out of thin air. It exists for bootstrapping
// wallets in tests and local development; production custody feeds
// balances from real deposits.
func (l *InMemory) Fund(accountID string, amount uint64) error {
	l.locker.Lock()
	defer l.locker.Unlock()

	acc, ok := l.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	balance, err := mathutil.CheckedAdd(acc.balance, amount)
	if err != nil {
		return err
	}
	acc.balance = balance
	return nil
}
