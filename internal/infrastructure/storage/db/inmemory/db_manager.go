package inmemory

import (
	"context"
	"sync"

	"github.com/Solation-Finance/solation/internal/core/domain"
	"github.com/Solation-Finance/solation/internal/core/ports"
)

// RepoManager is the map-backed storage backend. Transactions are
// serialized by a single lock and rolled back by restoring a snapshot of
// every store, so a failed handler leaves no trace. Suited to tests and
// local development; the badger backend is the durable one.
type RepoManager struct {
	makerStore       *marketMakerInmemoryStore
	vaultStore       *vaultInmemoryStore
	quoteStore       *quoteInmemoryStore
	requestStore     *positionRequestInmemoryStore
	positionStore    *positionInmemoryStore
	assetStore       *assetConfigInmemoryStore
	globalStateStore *globalStateInmemoryStore

	makerRepository       domain.MarketMakerRepository
	vaultRepository       domain.VaultRepository
	quoteRepository       domain.QuoteRepository
	requestRepository     domain.PositionRequestRepository
	positionRepository    domain.PositionRepository
	assetRepository       domain.AssetConfigRepository
	globalStateRepository domain.GlobalStateRepository

	txLocker sync.Mutex
}

func NewRepoManager() ports.RepoManager {
	makerStore := &marketMakerInmemoryStore{
		makers: map[string]domain.MarketMaker{},
		locker: &sync.Mutex{},
	}
	vaultStore := &vaultInmemoryStore{
		vaults: map[string]domain.Vault{},
		locker: &sync.Mutex{},
	}
	quoteStore := &quoteInmemoryStore{
		quotes: map[string]domain.Quote{},
		locker: &sync.Mutex{},
	}
	requestStore := &positionRequestInmemoryStore{
		requests: map[string]domain.PositionRequest{},
		locker:   &sync.Mutex{},
	}
	positionStore := &positionInmemoryStore{
		positions: map[string]domain.Position{},
		locker:    &sync.Mutex{},
	}
	assetStore := &assetConfigInmemoryStore{
		assets: map[string]domain.AssetConfig{},
		locker: &sync.Mutex{},
	}
	globalStateStore := &globalStateInmemoryStore{
		locker: &sync.Mutex{},
	}

	return &RepoManager{
		makerStore:            makerStore,
		vaultStore:            vaultStore,
		quoteStore:            quoteStore,
		requestStore:          requestStore,
		positionStore:         positionStore,
		assetStore:            assetStore,
		globalStateStore:      globalStateStore,
		makerRepository:       newMarketMakerRepositoryImpl(makerStore),
		vaultRepository:       newVaultRepositoryImpl(vaultStore),
		quoteRepository:       newQuoteRepositoryImpl(quoteStore),
		requestRepository:     newPositionRequestRepositoryImpl(requestStore),
		positionRepository:    newPositionRepositoryImpl(positionStore),
		assetRepository:       newAssetConfigRepositoryImpl(assetStore),
		globalStateRepository: newGlobalStateRepositoryImpl(globalStateStore),
	}
}

func (d *RepoManager) MarketMakerRepository() domain.MarketMakerRepository {
	return d.makerRepository
}

func (d *RepoManager) VaultRepository() domain.VaultRepository {
	return d.vaultRepository
}

func (d *RepoManager) QuoteRepository() domain.QuoteRepository {
	return d.quoteRepository
}

func (d *RepoManager) PositionRequestRepository() domain.PositionRequestRepository {
	return d.requestRepository
}

func (d *RepoManager) PositionRepository() domain.PositionRepository {
	return d.positionRepository
}

func (d *RepoManager) AssetConfigRepository() domain.AssetConfigRepository {
	return d.assetRepository
}

func (d *RepoManager) GlobalStateRepository() domain.GlobalStateRepository {
	return d.globalStateRepository
}

func (d *RepoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	d.txLocker.Lock()
	defer d.txLocker.Unlock()

	var snap *storesSnapshot
	if !readOnly {
		snap = d.snapshot()
	}

	res, err := handler(ctx)
	if err != nil {
		if snap != nil {
			d.restore(snap)
		}
		return nil, err
	}
	return res, nil
}

func (d *RepoManager) Close() {}

type storesSnapshot struct {
	makers      map[string]domain.MarketMaker
	vaults      map[string]domain.Vault
	quotes      map[string]domain.Quote
	requests    map[string]domain.PositionRequest
	positions   map[string]domain.Position
	assets      map[string]domain.AssetConfig
	globalState *domain.GlobalState
}

// Repositories clone records on every read and write, so the stored
// values are never mutated in place and a shallow map copy is a valid
// snapshot.
func (d *RepoManager) snapshot() *storesSnapshot {
	return &storesSnapshot{
		makers:      copyMap(d.makerStore.locker, d.makerStore.makers),
		vaults:      copyMap(d.vaultStore.locker, d.vaultStore.vaults),
		quotes:      copyMap(d.quoteStore.locker, d.quoteStore.quotes),
		requests:    copyMap(d.requestStore.locker, d.requestStore.requests),
		positions:   copyMap(d.positionStore.locker, d.positionStore.positions),
		assets:      copyMap(d.assetStore.locker, d.assetStore.assets),
		globalState: d.globalStateStore.get(),
	}
}

func (d *RepoManager) restore(snap *storesSnapshot) {
	restoreMap(d.makerStore.locker, &d.makerStore.makers, snap.makers)
	restoreMap(d.vaultStore.locker, &d.vaultStore.vaults, snap.vaults)
	restoreMap(d.quoteStore.locker, &d.quoteStore.quotes, snap.quotes)
	restoreMap(d.requestStore.locker, &d.requestStore.requests, snap.requests)
	restoreMap(d.positionStore.locker, &d.positionStore.positions, snap.positions)
	restoreMap(d.assetStore.locker, &d.assetStore.assets, snap.assets)
	d.globalStateStore.set(snap.globalState)
}

func copyMap[V any](locker *sync.Mutex, src map[string]V) map[string]V {
	locker.Lock()
	defer locker.Unlock()

	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func restoreMap[V any](locker *sync.Mutex, dst *map[string]V, snap map[string]V) {
	locker.Lock()
	defer locker.Unlock()

	*dst = snap
}
