package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

type assetConfigRepositoryImpl struct {
	db *repoManager
}

func newAssetConfigRepositoryImpl(db *repoManager) domain.AssetConfigRepository {
	return assetConfigRepositoryImpl{db}
}

func (a assetConfigRepositoryImpl) AddAssetConfig(
	ctx context.Context, asset *domain.AssetConfig,
) error {
	return a.db.upsert(ctx, asset.AssetID, asset)
}

func (a assetConfigRepositoryImpl) GetAssetConfig(
	ctx context.Context, assetID string,
) (*domain.AssetConfig, error) {
	var asset domain.AssetConfig
	if err := a.db.get(ctx, assetID, &asset); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (a assetConfigRepositoryImpl) UpdateAssetConfig(
	ctx context.Context, assetID string,
	updateFn func(cfg *domain.AssetConfig) (*domain.AssetConfig, error),
) error {
	currentAsset, err := a.GetAssetConfig(ctx, assetID)
	if err != nil {
		return err
	}

	updatedAsset, err := updateFn(currentAsset)
	if err != nil {
		return err
	}

	return a.db.upsert(ctx, assetID, updatedAsset)
}

func (a assetConfigRepositoryImpl) GetAllAssetConfigs(
	ctx context.Context,
) ([]*domain.AssetConfig, error) {
	var assets []domain.AssetConfig
	if err := a.db.find(ctx, &assets, &badgerhold.Query{}); err != nil {
		return nil, err
	}

	res := make([]*domain.AssetConfig, 0, len(assets))
	for i := range assets {
		res = append(res, &assets[i])
	}
	return res, nil
}
