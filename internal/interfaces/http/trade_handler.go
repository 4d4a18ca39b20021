package httpinterface

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Solation-Finance/solation/internal/core/application"
	"github.com/Solation-Finance/solation/internal/core/domain"
)

type requestPositionRequest struct {
	MakerID         string `json:"maker_id" binding:"required"`
	AssetID         string `json:"asset_id" binding:"required"`
	Strategy        string `json:"strategy" binding:"required"`
	ExpiryTimestamp int64  `json:"expiry_timestamp" binding:"required"`
	StrikePrice     uint64 `json:"strike_price" binding:"required"`
	ContractSize    uint64 `json:"contract_size" binding:"required"`
}

func (r requestPositionRequest) toArgs() (application.RequestPositionArgs, error) {
	strategy, err := domain.ParseStrategyType(r.Strategy)
	if err != nil {
		return application.RequestPositionArgs{}, err
	}
	return application.RequestPositionArgs{
		MakerID:         r.MakerID,
		AssetID:         r.AssetID,
		Strategy:        strategy,
		ExpiryTimestamp: r.ExpiryTimestamp,
		StrikePrice:     r.StrikePrice,
		ContractSize:    r.ContractSize,
	}, nil
}

func (s *Server) requestPosition(c *gin.Context) {
	userID, ok := s.identity(c)
	if !ok {
		return
	}

	var req requestPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	args, err := req.toArgs()
	if err != nil {
		abortWithError(c, err)
		return
	}

	info, err := s.opts.TradeService.RequestPosition(c.Request.Context(), userID, args)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

// cancelExpiredRequest is permissionless: the request is identified by
// its owner and id in the path, so any keeper can reclaim a request whose
// confirmation window has lapsed.
func (s *Server) cancelExpiredRequest(c *gin.Context) {
	if err := s.opts.TradeService.CancelExpiredRequest(
		c.Request.Context(), c.Param("user"), c.Param("id"),
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createPosition(c *gin.Context) {
	userID, ok := s.identity(c)
	if !ok {
		return
	}

	var req requestPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	args, err := req.toArgs()
	if err != nil {
		abortWithError(c, err)
		return
	}

	position, err := s.opts.TradeService.CreatePosition(c.Request.Context(), userID, args)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, position)
}

func (s *Server) getQuote(c *gin.Context) {
	quote, err := s.opts.TradeService.GetQuote(c.Request.Context(), c.Param("key"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (s *Server) getPosition(c *gin.Context) {
	userID, ok := s.identity(c)
	if !ok {
		return
	}

	position, err := s.opts.TradeService.GetPosition(
		c.Request.Context(), userID, c.Param("id"),
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, position)
}

func (s *Server) listPositions(c *gin.Context) {
	userID, ok := s.identity(c)
	if !ok {
		return
	}

	positions, err := s.opts.TradeService.ListPositions(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, positions)
}

// settlePosition is permissionless: the position is identified by its
// owner and id in the path, the caller can be anyone.
func (s *Server) settlePosition(c *gin.Context) {
	info, err := s.opts.SettlementService.SettlePosition(
		c.Request.Context(), c.Param("user"), c.Param("id"),
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
