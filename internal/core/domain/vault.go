package domain

import (
	"fmt"

	"github.com/Solation-Finance/solation/pkg/mathutil"
)

// Vault is the per (maker, asset) custody record of a market maker's
// liquidity. Invariant at every observable point:
//
//	AvailableLiquidity + LockedLiquidity <= TotalDeposited
//
// TotalDeposited is the lifetime sum of deposits and never decreases.
type Vault struct {
	MakerID            string
	AssetID            string
	TotalDeposited     uint64
	AvailableLiquidity uint64
	LockedLiquidity    uint64
}

// VaultKey is the storage key of a vault record.
func VaultKey(makerID, assetID string) string {
	return makerID + ":" + assetID
}

// NewVault returns an empty vault for the given maker and asset.
func NewVault(makerID, assetID string) *Vault {
	return &Vault{MakerID: makerID, AssetID: assetID}
}

// Key returns the vault's storage key.
func (v *Vault) Key() string {
	return VaultKey(v.MakerID, v.AssetID)
}

// Deposit credits amount to both the lifetime total and the available
// balance.
func (v *Vault) Deposit(amount uint64) error {
	total, err := mathutil.CheckedAdd(v.TotalDeposited, amount)
	if err != nil {
		return ErrMathOverflow
	}
	available, err := mathutil.CheckedAdd(v.AvailableLiquidity, amount)
	if err != nil {
		return ErrMathOverflow
	}
	v.TotalDeposited = total
	v.AvailableLiquidity = available
	return nil
}

// Withdraw debits amount from the available balance. The caller is
// responsible for moving the funds out of custody afterwards.
func (v *Vault) Withdraw(amount uint64) error {
	if amount > v.AvailableLiquidity {
		return ErrInsufficientLiquidity
	}
	v.AvailableLiquidity -= amount
	return nil
}

// Lock moves amount from available to locked. Called only while opening a
// position, never exposed to callers directly.
func (v *Vault) Lock(amount uint64) error {
	if amount > v.AvailableLiquidity {
		return ErrInsufficientLiquidity
	}
	v.AvailableLiquidity -= amount
	v.LockedLiquidity += amount
	return nil
}

// Unlock releases amount from the locked balance at settlement. The escrowed
// funds left custody when the position opened, so nothing is credited back
// to available; payout routing returns them to their owner externally.
//
// An underflowing unlock means the books no longer match the positions that
// locked them. That is corruption, not a user error, so it panics.
func (v *Vault) Unlock(amount uint64) {
	if amount > v.LockedLiquidity {
		panic(fmt.Sprintf(
			"vault %s: unlock of %d exceeds locked balance %d",
			v.Key(), amount, v.LockedLiquidity,
		))
	}
	v.LockedLiquidity -= amount
}
