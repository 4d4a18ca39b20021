package httpinterface

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Solation-Finance/solation/internal/core/application"
	"github.com/Solation-Finance/solation/internal/core/domain"
)

func (s *Server) registerMarketMaker(c *gin.Context) {
	owner, ok := s.identity(c)
	if !ok {
		return
	}

	if err := s.opts.OperatorService.RegisterMarketMaker(
		c.Request.Context(), owner,
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"owner": owner})
}

func (s *Server) getMarketMaker(c *gin.Context) {
	maker, err := s.opts.OperatorService.GetMarketMaker(
		c.Request.Context(), c.Param("owner"),
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, maker)
}

type initializeVaultRequest struct {
	AssetID string `json:"asset_id" binding:"required"`
}

func (s *Server) initializeVault(c *gin.Context) {
	owner, ok := s.identity(c)
	if !ok {
		return
	}

	var req initializeVaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.opts.OperatorService.InitializeVault(
		c.Request.Context(), owner, req.AssetID,
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (s *Server) listVaults(c *gin.Context) {
	owner, ok := s.identity(c)
	if !ok {
		return
	}

	vaults, err := s.opts.OperatorService.ListVaults(c.Request.Context(), owner)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, vaults)
}

type liquidityRequest struct {
	Amount uint64 `json:"amount" binding:"required"`
}

func (s *Server) depositLiquidity(c *gin.Context) {
	owner, ok := s.identity(c)
	if !ok {
		return
	}

	var req liquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.opts.OperatorService.DepositLiquidity(
		c.Request.Context(), owner, c.Param("asset"), req.Amount,
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) withdrawLiquidity(c *gin.Context) {
	owner, ok := s.identity(c)
	if !ok {
		return
	}

	var req liquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.opts.OperatorService.WithdrawLiquidity(
		c.Request.Context(), owner, c.Param("asset"), req.Amount,
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type strikeQuoteRequest struct {
	StrikePrice        uint64 `json:"strike_price" binding:"required"`
	PremiumPerContract uint64 `json:"premium_per_contract" binding:"required"`
	AvailableContracts uint64 `json:"available_contracts" binding:"required"`
}

type submitQuoteRequest struct {
	AssetID         string               `json:"asset_id" binding:"required"`
	Strategy        string               `json:"strategy" binding:"required"`
	Strikes         []strikeQuoteRequest `json:"strikes" binding:"required"`
	ExpiryTimestamp int64                `json:"expiry_timestamp" binding:"required"`
	MinSize         uint64               `json:"min_size" binding:"required"`
	MaxSize         uint64               `json:"max_size" binding:"required"`
}

func (s *Server) submitQuote(c *gin.Context) {
	owner, ok := s.identity(c)
	if !ok {
		return
	}

	var req submitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy, err := domain.ParseStrategyType(req.Strategy)
	if err != nil {
		abortWithError(c, err)
		return
	}

	strikes := make([]domain.StrikeQuote, 0, len(req.Strikes))
	for _, strike := range req.Strikes {
		strikes = append(strikes, domain.StrikeQuote{
			StrikePrice:        strike.StrikePrice,
			PremiumPerContract: strike.PremiumPerContract,
			AvailableContracts: strike.AvailableContracts,
		})
	}

	key, err := s.opts.OperatorService.SubmitQuote(
		c.Request.Context(), owner, application.SubmitQuoteArgs{
			AssetID:         req.AssetID,
			Strategy:        strategy,
			Strikes:         strikes,
			ExpiryTimestamp: req.ExpiryTimestamp,
			MinSize:         req.MinSize,
			MaxSize:         req.MaxSize,
		},
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"quote_key": key})
}

type updateQuoteRequest struct {
	Strikes         []strikeQuoteRequest `json:"strikes"`
	ExpiryTimestamp *int64               `json:"expiry_timestamp"`
	MinSize         *uint64              `json:"min_size"`
	MaxSize         *uint64              `json:"max_size"`
	Active          *bool                `json:"active"`
}

func (s *Server) updateQuote(c *gin.Context) {
	owner, ok := s.identity(c)
	if !ok {
		return
	}

	var req updateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := domain.QuoteUpdate{
		ExpiryTimestamp: req.ExpiryTimestamp,
		MinSize:         req.MinSize,
		MaxSize:         req.MaxSize,
		Active:          req.Active,
	}
	if req.Strikes != nil {
		strikes := make([]domain.StrikeQuote, 0, len(req.Strikes))
		for _, strike := range req.Strikes {
			strikes = append(strikes, domain.StrikeQuote{
				StrikePrice:        strike.StrikePrice,
				PremiumPerContract: strike.PremiumPerContract,
				AvailableContracts: strike.AvailableContracts,
			})
		}
		update.Strikes = &strikes
	}

	if err := s.opts.OperatorService.UpdateQuote(
		c.Request.Context(), owner, c.Param("key"), update,
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listQuotes(c *gin.Context) {
	owner, ok := s.identity(c)
	if !ok {
		return
	}

	quotes, err := s.opts.OperatorService.ListQuotes(c.Request.Context(), owner)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

func (s *Server) confirmPosition(c *gin.Context) {
	owner, ok := s.identity(c)
	if !ok {
		return
	}

	position, err := s.opts.OperatorService.ConfirmPosition(
		c.Request.Context(), owner, c.Param("user"), c.Param("id"),
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, position)
}

func (s *Server) rejectRequest(c *gin.Context) {
	owner, ok := s.identity(c)
	if !ok {
		return
	}

	if err := s.opts.OperatorService.RejectRequest(
		c.Request.Context(), owner, c.Param("user"), c.Param("id"),
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
