package dbbadger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/Solation-Finance/solation/internal/core/domain"
	"github.com/Solation-Finance/solation/internal/core/ports"
)

// repoManager is the badger-backed storage backend. A single badgerhold
// store holds every record type; RunTransaction wraps the handler in one
// badger transaction carried through the context, so every repository
// call made by the handler shares it.
type repoManager struct {
	store *badgerhold.Store

	makerRepository       domain.MarketMakerRepository
	vaultRepository       domain.VaultRepository
	quoteRepository       domain.QuoteRepository
	requestRepository     domain.PositionRequestRepository
	positionRepository    domain.PositionRepository
	assetRepository       domain.AssetConfigRepository
	globalStateRepository domain.GlobalStateRepository
}

// NewRepoManager opens (or creates if not exists) the badger store under
// the given data dir.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	store, err := createDb(baseDbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening main db: %w", err)
	}

	rm := &repoManager{store: store}
	rm.makerRepository = newMarketMakerRepositoryImpl(rm)
	rm.vaultRepository = newVaultRepositoryImpl(rm)
	rm.quoteRepository = newQuoteRepositoryImpl(rm)
	rm.requestRepository = newPositionRequestRepositoryImpl(rm)
	rm.positionRepository = newPositionRepositoryImpl(rm)
	rm.assetRepository = newAssetConfigRepositoryImpl(rm)
	rm.globalStateRepository = newGlobalStateRepositoryImpl(rm)
	return rm, nil
}

func (d *repoManager) MarketMakerRepository() domain.MarketMakerRepository {
	return d.makerRepository
}

func (d *repoManager) VaultRepository() domain.VaultRepository {
	return d.vaultRepository
}

func (d *repoManager) QuoteRepository() domain.QuoteRepository {
	return d.quoteRepository
}

func (d *repoManager) PositionRequestRepository() domain.PositionRequestRepository {
	return d.requestRepository
}

func (d *repoManager) PositionRepository() domain.PositionRepository {
	return d.positionRepository
}

func (d *repoManager) AssetConfigRepository() domain.AssetConfigRepository {
	return d.assetRepository
}

func (d *repoManager) GlobalStateRepository() domain.GlobalStateRepository {
	return d.globalStateRepository
}

func (d *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	tx := d.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	res, err := handler(context.WithValue(ctx, "tx", tx))
	if err != nil {
		return nil, err
	}

	if !readOnly {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (d *repoManager) Close() {
	d.store.Close()
}

func (d *repoManager) insert(ctx context.Context, key string, value interface{}) error {
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return d.store.TxInsert(tx, key, value)
	}
	return d.store.Insert(key, value)
}

func (d *repoManager) get(ctx context.Context, key string, to interface{}) error {
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return d.store.TxGet(tx, key, to)
	}
	return d.store.Get(key, to)
}

func (d *repoManager) upsert(ctx context.Context, key string, value interface{}) error {
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return d.store.TxUpsert(tx, key, value)
	}
	return d.store.Upsert(key, value)
}

func (d *repoManager) delete(ctx context.Context, key string, dataType interface{}) error {
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return d.store.TxDelete(tx, key, dataType)
	}
	return d.store.Delete(key, dataType)
}

func (d *repoManager) find(
	ctx context.Context, to interface{}, query *badgerhold.Query,
) error {
	if tx, ok := ctx.Value("tx").(*badger.Txn); ok {
		return d.store.TxFind(tx, to, query)
	}
	return d.store.Find(to, query)
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}
