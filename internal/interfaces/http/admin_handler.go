package httpinterface

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Solation-Finance/solation/internal/core/application"
	"github.com/Solation-Finance/solation/internal/core/domain"
)

type initGlobalStateRequest struct {
	Authority      string `json:"authority" binding:"required"`
	Treasury       string `json:"treasury" binding:"required"`
	ProtocolFeeBps uint16 `json:"protocol_fee_bps"`
}

func (s *Server) initGlobalState(c *gin.Context) {
	var req initGlobalStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.opts.AdminService.InitGlobalState(
		c.Request.Context(), application.InitGlobalStateArgs{
			Authority:      req.Authority,
			Treasury:       req.Treasury,
			ProtocolFeeBps: req.ProtocolFeeBps,
		},
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (s *Server) getGlobalState(c *gin.Context) {
	state, err := s.opts.AdminService.GetGlobalState(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type updateGlobalStateRequest struct {
	Authority      *string `json:"authority"`
	Treasury       *string `json:"treasury"`
	ProtocolFeeBps *uint16 `json:"protocol_fee_bps"`
	Paused         *bool   `json:"paused"`
}

func (s *Server) updateGlobalState(c *gin.Context) {
	caller, ok := s.identity(c)
	if !ok {
		return
	}

	var req updateGlobalStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.opts.AdminService.UpdateGlobalState(
		c.Request.Context(), caller, domain.GlobalStateUpdate{
			Authority:      req.Authority,
			Treasury:       req.Treasury,
			ProtocolFeeBps: req.ProtocolFeeBps,
			Paused:         req.Paused,
		},
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type setPausedRequest struct {
	Paused *bool `json:"paused" binding:"required"`
}

func (s *Server) setPaused(c *gin.Context) {
	caller, ok := s.identity(c)
	if !ok {
		return
	}

	var req setPausedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.opts.AdminService.SetPaused(
		c.Request.Context(), caller, *req.Paused,
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addAssetRequest struct {
	AssetID             string `json:"asset_id" binding:"required"`
	QuoteAssetID        string `json:"quote_asset_id" binding:"required"`
	OracleFeedID        string `json:"oracle_feed_id" binding:"required"`
	Enabled             bool   `json:"enabled"`
	MinStrikePercentage uint16 `json:"min_strike_percentage"`
	MaxStrikePercentage uint16 `json:"max_strike_percentage"`
	MinExpirySeconds    int64  `json:"min_expiry_seconds"`
	MaxExpirySeconds    int64  `json:"max_expiry_seconds"`
	Decimals            uint8  `json:"decimals"`
	QuoteDecimals       uint8  `json:"quote_decimals"`
}

func (s *Server) addAsset(c *gin.Context) {
	caller, ok := s.identity(c)
	if !ok {
		return
	}

	var req addAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.opts.AdminService.AddAsset(
		c.Request.Context(), caller, domain.AssetConfig{
			AssetID:             req.AssetID,
			QuoteAssetID:        req.QuoteAssetID,
			OracleFeedID:        req.OracleFeedID,
			Enabled:             req.Enabled,
			MinStrikePercentage: req.MinStrikePercentage,
			MaxStrikePercentage: req.MaxStrikePercentage,
			MinExpirySeconds:    req.MinExpirySeconds,
			MaxExpirySeconds:    req.MaxExpirySeconds,
			Decimals:            req.Decimals,
			QuoteDecimals:       req.QuoteDecimals,
		},
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

type updateAssetRequest struct {
	Enabled             *bool   `json:"enabled"`
	MinStrikePercentage *uint16 `json:"min_strike_percentage"`
	MaxStrikePercentage *uint16 `json:"max_strike_percentage"`
	MinExpirySeconds    *int64  `json:"min_expiry_seconds"`
	MaxExpirySeconds    *int64  `json:"max_expiry_seconds"`
}

func (s *Server) updateAsset(c *gin.Context) {
	caller, ok := s.identity(c)
	if !ok {
		return
	}

	var req updateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.opts.AdminService.UpdateAsset(
		c.Request.Context(), caller, c.Param("asset"), domain.AssetConfigUpdate{
			Enabled:             req.Enabled,
			MinStrikePercentage: req.MinStrikePercentage,
			MaxStrikePercentage: req.MaxStrikePercentage,
			MinExpirySeconds:    req.MinExpirySeconds,
			MaxExpirySeconds:    req.MaxExpirySeconds,
		},
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type setAssetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (s *Server) setAssetEnabled(c *gin.Context) {
	caller, ok := s.identity(c)
	if !ok {
		return
	}

	var req setAssetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.opts.AdminService.SetAssetEnabled(
		c.Request.Context(), caller, c.Param("asset"), *req.Enabled,
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listAssets(c *gin.Context) {
	assets, err := s.opts.AdminService.ListAssets(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}
