package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Solation-Finance/solation/config"
	"github.com/Solation-Finance/solation/internal/core/application"
	"github.com/Solation-Finance/solation/internal/core/ports"
	"github.com/Solation-Finance/solation/internal/infrastructure/ledger"
	"github.com/Solation-Finance/solation/internal/infrastructure/oracle"
	dbbadger "github.com/Solation-Finance/solation/internal/infrastructure/storage/db/badger"
	"github.com/Solation-Finance/solation/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/Solation-Finance/solation/internal/interfaces/http"
	"github.com/Solation-Finance/solation/internal/metrics"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repoManager, err := newRepoManager()
	if err != nil {
		log.WithError(err).Panic("error while opening storage")
	}
	defer repoManager.Close()

	ledgerSvc := ledger.NewInMemory()
	priceSource := newPriceSource()

	prom := metrics.NewPrometheus()

	opts := httpinterface.ServerOpts{
		AdminService: application.NewAdminService(repoManager),
		OperatorService: application.NewOperatorService(
			repoManager, ledgerSvc, prom.Metrics,
		),
		TradeService: application.NewTradeService(
			repoManager, ledgerSvc, prom.Metrics,
		),
		SettlementService: application.NewSettlementService(
			repoManager, ledgerSvc, priceSource, prom.Metrics,
		),
	}
	if config.GetBool(config.EnableMetricsKey) {
		opts.MetricsHandler = prom.Handler()
	}

	if err := seedGlobalState(opts.AdminService); err != nil {
		log.WithError(err).Panic("error while seeding global state")
	}

	server := httpinterface.NewServer(opts)
	addr := fmt.Sprintf(":%d", config.GetInt(config.ListeningPortKey))

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(addr)
	}()

	log.Debug("daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-errChan:
		if err != nil {
			log.WithError(err).Panic("error serving http interface")
		}
	case <-sigChan:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("error while shutting down http interface")
	}

	log.Debug("exiting")
}

func newRepoManager() (ports.RepoManager, error) {
	if config.GetString(config.DbTypeKey) == "inmemory" {
		return inmemory.NewRepoManager(), nil
	}
	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	return dbbadger.NewRepoManager(dbDir, log.New())
}

func newPriceSource() ports.PriceSource {
	if endpoint := config.GetString(config.OracleEndpointKey); endpoint != "" {
		return oracle.NewHermesSource(endpoint)
	}
	log.Warn("no oracle endpoint configured, using static price source")
	return oracle.NewStaticSource()
}

// seedGlobalState initializes the global record on first run; an already
// initialized store is left untouched.
func seedGlobalState(adminSvc application.AdminService) error {
	if _, err := adminSvc.GetGlobalState(context.Background()); err == nil {
		return nil
	}
	return adminSvc.InitGlobalState(context.Background(), application.InitGlobalStateArgs{
		Authority:      config.GetString(config.AuthorityKey),
		Treasury:       config.GetString(config.TreasuryKey),
		ProtocolFeeBps: uint16(config.GetInt(config.ProtocolFeeBpsKey)),
	})
}
