package inmemory

import (
	"context"
	"sync"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type assetConfigInmemoryStore struct {
	assets map[string]domain.AssetConfig
	locker *sync.Mutex
}

type assetConfigRepositoryImpl struct {
	store *assetConfigInmemoryStore
}

func newAssetConfigRepositoryImpl(
	store *assetConfigInmemoryStore,
) domain.AssetConfigRepository {
	return &assetConfigRepositoryImpl{store}
}

func (r assetConfigRepositoryImpl) AddAssetConfig(
	_ context.Context, asset *domain.AssetConfig,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.assets[asset.AssetID] = *asset
	return nil
}

func (r assetConfigRepositoryImpl) GetAssetConfig(
	_ context.Context, assetID string,
) (*domain.AssetConfig, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getAssetConfig(assetID)
}

func (r assetConfigRepositoryImpl) UpdateAssetConfig(
	_ context.Context, assetID string,
	updateFn func(a *domain.AssetConfig) (*domain.AssetConfig, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentAsset, err := r.getAssetConfig(assetID)
	if err != nil {
		return err
	}

	updatedAsset, err := updateFn(currentAsset)
	if err != nil {
		return err
	}

	r.store.assets[assetID] = *updatedAsset
	return nil
}

func (r assetConfigRepositoryImpl) GetAllAssetConfigs(
	_ context.Context,
) ([]*domain.AssetConfig, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	assets := make([]*domain.AssetConfig, 0, len(r.store.assets))
	for id := range r.store.assets {
		asset := r.store.assets[id]
		assets = append(assets, &asset)
	}
	return assets, nil
}

func (r assetConfigRepositoryImpl) getAssetConfig(
	assetID string,
) (*domain.AssetConfig, error) {
	asset, ok := r.store.assets[assetID]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	return &asset, nil
}
