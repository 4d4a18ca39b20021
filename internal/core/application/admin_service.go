package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/Solation-Finance/solation/internal/core/domain"
	"github.com/Solation-Finance/solation/internal/core/ports"
)

// AdminService is the protocol-configuration surface. Every mutation is
// guarded by the authority recorded in the global state; the trading core
// only reads what this service writes.
type AdminService interface {
	InitGlobalState(ctx context.Context, args InitGlobalStateArgs) error
	GetGlobalState(ctx context.Context) (*domain.GlobalState, error)
	UpdateGlobalState(ctx context.Context, caller string, update domain.GlobalStateUpdate) error
	SetPaused(ctx context.Context, caller string, paused bool) error
	AddAsset(ctx context.Context, caller string, asset domain.AssetConfig) error
	UpdateAsset(ctx context.Context, caller, assetID string, update domain.AssetConfigUpdate) error
	SetAssetEnabled(ctx context.Context, caller, assetID string, enabled bool) error
	ListAssets(ctx context.Context) ([]*domain.AssetConfig, error)
}

type adminService struct {
	repoManager ports.RepoManager
}

func NewAdminService(repoManager ports.RepoManager) AdminService {
	return &adminService{repoManager: repoManager}
}

func (a *adminService) InitGlobalState(
	ctx context.Context, args InitGlobalStateArgs,
) error {
	_, err := a.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, a.repoManager.GlobalStateRepository().InitGlobalState(
				ctx, &domain.GlobalState{
					Authority:      args.Authority,
					Treasury:       args.Treasury,
					ProtocolFeeBps: args.ProtocolFeeBps,
				},
			)
		},
	)
	if err != nil {
		return err
	}

	log.Infof("global state initialized, authority %s", args.Authority)
	return nil
}

func (a *adminService) GetGlobalState(ctx context.Context) (*domain.GlobalState, error) {
	return a.repoManager.GlobalStateRepository().GetGlobalState(ctx)
}

// UpdateGlobalState patches the protocol configuration, including
// authority handover. The caller is checked against the authority as it
// stands before the update.
func (a *adminService) UpdateGlobalState(
	ctx context.Context, caller string, update domain.GlobalStateUpdate,
) error {
	_, err := a.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, a.repoManager.GlobalStateRepository().UpdateGlobalState(
				ctx, func(s *domain.GlobalState) (*domain.GlobalState, error) {
					if s.Authority != caller {
						return nil, domain.ErrUnauthorized
					}
					s.Update(update)
					return s, nil
				},
			)
		},
	)
	if err != nil {
		return err
	}

	log.Infof("global state updated by %s", caller)
	return nil
}

func (a *adminService) SetPaused(ctx context.Context, caller string, paused bool) error {
	_, err := a.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, a.repoManager.GlobalStateRepository().UpdateGlobalState(
				ctx, func(s *domain.GlobalState) (*domain.GlobalState, error) {
					if s.Authority != caller {
						return nil, domain.ErrUnauthorized
					}
					s.Paused = paused
					return s, nil
				},
			)
		},
	)
	if err != nil {
		return err
	}

	log.Warnf("protocol paused flag set to %v by %s", paused, caller)
	return nil
}

func (a *adminService) AddAsset(
	ctx context.Context, caller string, asset domain.AssetConfig,
) error {
	_, err := a.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			state, err := a.repoManager.GlobalStateRepository().GetGlobalState(ctx)
			if err != nil {
				return nil, err
			}
			if state.Authority != caller {
				return nil, domain.ErrUnauthorized
			}
			return nil, a.repoManager.AssetConfigRepository().AddAssetConfig(ctx, &asset)
		},
	)
	if err != nil {
		return err
	}

	log.Infof("asset %s registered, oracle feed %s", asset.AssetID, asset.OracleFeedID)
	return nil
}

func (a *adminService) UpdateAsset(
	ctx context.Context, caller, assetID string, update domain.AssetConfigUpdate,
) error {
	_, err := a.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			state, err := a.repoManager.GlobalStateRepository().GetGlobalState(ctx)
			if err != nil {
				return nil, err
			}
			if state.Authority != caller {
				return nil, domain.ErrUnauthorized
			}
			return nil, a.repoManager.AssetConfigRepository().UpdateAssetConfig(
				ctx, assetID,
				func(cfg *domain.AssetConfig) (*domain.AssetConfig, error) {
					cfg.Update(update)
					return cfg, nil
				},
			)
		},
	)
	if err != nil {
		return err
	}

	log.Infof("asset %s updated", assetID)
	return nil
}

func (a *adminService) SetAssetEnabled(
	ctx context.Context, caller, assetID string, enabled bool,
) error {
	_, err := a.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			state, err := a.repoManager.GlobalStateRepository().GetGlobalState(ctx)
			if err != nil {
				return nil, err
			}
			if state.Authority != caller {
				return nil, domain.ErrUnauthorized
			}
			return nil, a.repoManager.AssetConfigRepository().UpdateAssetConfig(
				ctx, assetID,
				func(cfg *domain.AssetConfig) (*domain.AssetConfig, error) {
					cfg.Enabled = enabled
					return cfg, nil
				},
			)
		},
	)
	return err
}

func (a *adminService) ListAssets(ctx context.Context) ([]*domain.AssetConfig, error) {
	return a.repoManager.AssetConfigRepository().GetAllAssetConfigs(ctx)
}
