// Package httpinterface exposes the trading core over HTTP. Caller
// identity is taken from the X-Account-ID header; authentication sits in
// front of the daemon and is not this layer's concern.
package httpinterface

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Solation-Finance/solation/internal/core/application"
)

const identityHeader = "X-Account-ID"

type ServerOpts struct {
	AdminService      application.AdminService
	OperatorService   application.OperatorService
	TradeService      application.TradeService
	SettlementService application.SettlementService

	// MetricsHandler, when set, is mounted on /metrics.
	MetricsHandler http.Handler
}

type Server struct {
	opts   ServerOpts
	router *gin.Engine
	server *http.Server
}

func NewServer(opts ServerOpts) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())

	s := &Server{opts: opts, router: router}
	s.registerRoutes()
	return s
}

// Router returns the internal gin engine for testing purposes.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start(addr string) error {
	s.server = &http.Server{Addr: addr, Handler: s.router}
	log.Infof("http interface listening on %s", addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	if s.opts.MetricsHandler != nil {
		s.router.GET("/metrics", gin.WrapH(s.opts.MetricsHandler))
	}
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.router.Group("/v1")

	admin := v1.Group("/admin")
	{
		admin.POST("/global-state", s.initGlobalState)
		admin.GET("/global-state", s.getGlobalState)
		admin.PUT("/global-state", s.updateGlobalState)
		admin.PUT("/paused", s.setPaused)
		admin.POST("/assets", s.addAsset)
		admin.PUT("/assets/:asset", s.updateAsset)
		admin.PUT("/assets/:asset/enabled", s.setAssetEnabled)
		admin.GET("/assets", s.listAssets)
	}

	makers := v1.Group("/makers")
	{
		makers.POST("", s.registerMarketMaker)
		makers.GET("/:owner", s.getMarketMaker)
		makers.POST("/vaults", s.initializeVault)
		makers.GET("/vaults", s.listVaults)
		makers.POST("/vaults/:asset/deposit", s.depositLiquidity)
		makers.POST("/vaults/:asset/withdraw", s.withdrawLiquidity)
	}

	quotes := v1.Group("/quotes")
	{
		quotes.POST("", s.submitQuote)
		quotes.GET("", s.listQuotes)
		quotes.GET("/:key", s.getQuote)
		quotes.PUT("/:key", s.updateQuote)
	}

	requests := v1.Group("/requests")
	{
		requests.POST("", s.requestPosition)
		requests.POST("/:user/:id/cancel", s.cancelExpiredRequest)
		requests.POST("/:user/:id/confirm", s.confirmPosition)
		requests.POST("/:user/:id/reject", s.rejectRequest)
	}

	positions := v1.Group("/positions")
	{
		positions.POST("", s.createPosition)
		positions.GET("", s.listPositions)
		positions.GET("/:id", s.getPosition)
		positions.POST("/:user/:id/settle", s.settlePosition)
	}
}

// identity returns the caller identity, or aborts with 401 when the
// header is missing.
func (s *Server) identity(c *gin.Context) (string, bool) {
	id := c.GetHeader(identityHeader)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing " + identityHeader + " header",
		})
		return "", false
	}
	return id, true
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Errorf("%s %s", c.Request.Method, c.Request.URL.Path)
			return
		}
		entry.Debugf("%s %s", c.Request.Method, c.Request.URL.Path)
	}
}
