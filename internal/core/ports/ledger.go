package ports

import "context"

// TransferLeg moves Amount from one ledger account to another. Authorizer
// must match the authority the From account was opened under: an account is
// debited only by logic provably acting on behalf of its owner.
type TransferLeg struct {
	From       string
	To         string
	Authorizer string
	Amount     uint64
}

// Ledger is the opaque token-custody service. The protocol core never
// reimplements balance bookkeeping for external funds; it only instructs
// atomic, authorization-checked movement.
type Ledger interface {
	// OpenAccount registers an account holding one asset, debitable only
	// under the given authority. Reopening an account with the same asset
	// and authority is a no-op; reopening with different parameters is an
	// error.
	OpenAccount(ctx context.Context, account, assetID, authority string) error

	// Transfer applies all legs or none. Any failing leg (unknown account,
	// wrong authorizer, insufficient balance, asset mismatch) aborts the
	// whole batch with no partial effect.
	Transfer(ctx context.Context, legs ...TransferLeg) error

	Balance(ctx context.Context, account string) (uint64, error)
}
