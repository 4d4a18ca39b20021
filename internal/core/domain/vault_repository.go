package domain

import "context"

// VaultRepository persists per (maker, asset) vault records.
type VaultRepository interface {
	AddVault(ctx context.Context, vault *Vault) error
	GetVault(ctx context.Context, makerID, assetID string) (*Vault, error)
	UpdateVault(
		ctx context.Context, makerID, assetID string,
		updateFn func(v *Vault) (*Vault, error),
	) error
	GetVaultsForMaker(ctx context.Context, makerID string) ([]*Vault, error)
}
