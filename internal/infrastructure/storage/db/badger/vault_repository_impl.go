package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type vaultRepositoryImpl struct {
	db *repoManager
}

func newVaultRepositoryImpl(db *repoManager) domain.VaultRepository {
	return vaultRepositoryImpl{db}
}

func (v vaultRepositoryImpl) AddVault(
	ctx context.Context, vault *domain.Vault,
) error {
	key := domain.VaultKey(vault.MakerID, vault.AssetID)
	if err := v.db.insert(ctx, key, vault); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrVaultAlreadyInitialized
		}
		return err
	}
	return nil
}

func (v vaultRepositoryImpl) GetVault(
	ctx context.Context, makerID, assetID string,
) (*domain.Vault, error) {
	var vault domain.Vault
	if err := v.db.get(ctx, domain.VaultKey(makerID, assetID), &vault); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrVaultNotFound
		}
		return nil, err
	}
	return &vault, nil
}

func (v vaultRepositoryImpl) UpdateVault(
	ctx context.Context, makerID, assetID string,
	updateFn func(vault *domain.Vault) (*domain.Vault, error),
) error {
	currentVault, err := v.GetVault(ctx, makerID, assetID)
	if err != nil {
		return err
	}

	updatedVault, err := updateFn(currentVault)
	if err != nil {
		return err
	}

	return v.db.upsert(ctx, domain.VaultKey(makerID, assetID), updatedVault)
}

func (v vaultRepositoryImpl) GetVaultsForMaker(
	ctx context.Context, makerID string,
) ([]*domain.Vault, error) {
	var vaults []domain.Vault
	query := badgerhold.Where("MakerID").Eq(makerID)
	if err := v.db.find(ctx, &vaults, query); err != nil {
		return nil, err
	}

	res := make([]*domain.Vault, 0, len(vaults))
	for i := range vaults {
		res = append(res, &vaults[i])
	}
	return res, nil
}
