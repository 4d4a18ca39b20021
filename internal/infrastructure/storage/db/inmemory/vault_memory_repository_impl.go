package inmemory

import (
	"context"
	"sync"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type vaultInmemoryStore struct {
	vaults map[string]domain.Vault
	locker *sync.Mutex
}

type vaultRepositoryImpl struct {
	store *vaultInmemoryStore
}

func newVaultRepositoryImpl(store *vaultInmemoryStore) domain.VaultRepository {
	return &vaultRepositoryImpl{store}
}

func (r vaultRepositoryImpl) AddVault(_ context.Context, vault *domain.Vault) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.vaults[domain.VaultKey(vault.MakerID, vault.AssetID)] = *vault
	return nil
}

func (r vaultRepositoryImpl) GetVault(
	_ context.Context, makerID, assetID string,
) (*domain.Vault, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getVault(makerID, assetID)
}

func (r vaultRepositoryImpl) UpdateVault(
	_ context.Context, makerID, assetID string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentVault, err := r.getVault(makerID, assetID)
	if err != nil {
		return err
	}

	updatedVault, err := updateFn(currentVault)
	if err != nil {
		return err
	}

	r.store.vaults[domain.VaultKey(makerID, assetID)] = *updatedVault
	return nil
}

func (r vaultRepositoryImpl) GetVaultsForMaker(
	_ context.Context, makerID string,
) ([]*domain.Vault, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	vaults := make([]*domain.Vault, 0)
	for _, v := range r.store.vaults {
		if v.MakerID == makerID {
			vault := v
			vaults = append(vaults, &vault)
		}
	}
	return vaults, nil
}

func (r vaultRepositoryImpl) getVault(
	makerID, assetID string,
) (*domain.Vault, error) {
	vault, ok := r.store.vaults[domain.VaultKey(makerID, assetID)]
	if !ok {
		return nil, domain.ErrVaultNotFound
	}
	return &vault, nil
}
