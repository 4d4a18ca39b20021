package domain

import "context"

// AssetConfigRepository persists the asset registry. The trading core only
// reads it; mutation belongs to the admin surface.
type AssetConfigRepository interface {
	AddAssetConfig(ctx context.Context, asset *AssetConfig) error
	GetAssetConfig(ctx context.Context, assetID string) (*AssetConfig, error)
	UpdateAssetConfig(
		ctx context.Context, assetID string,
		updateFn func(a *AssetConfig) (*AssetConfig, error),
	) error
	GetAllAssetConfigs(ctx context.Context) ([]*AssetConfig, error)
}
