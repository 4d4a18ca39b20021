package httpinterface

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Solation-Finance/solation/internal/core/domain"
)

// abortWithError maps a domain error onto the closest HTTP status. Unknown
// errors become opaque 500s; the detail stays in the server log.
func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}

func statusFromError(err error) int {
	switch {
	case isAny(err,
		domain.ErrMarketMakerNotFound,
		domain.ErrVaultNotFound,
		domain.ErrQuoteNotFound,
		domain.ErrRequestNotFound,
		domain.ErrPositionNotFound,
		domain.ErrAssetNotFound,
		domain.ErrGlobalStateNotInitialized,
		domain.ErrStrikePriceNotFound,
	):
		return http.StatusNotFound
	case isAny(err,
		domain.ErrUnauthorized,
		domain.ErrUnauthorizedConfirmation,
	):
		return http.StatusForbidden
	case isAny(err,
		domain.ErrInvalidStrategy,
		domain.ErrInvalidQuoteParameters,
		domain.ErrTooManyStrikes,
		domain.ErrContractSizeTooSmall,
		domain.ErrContractSizeTooLarge,
		domain.ErrMathOverflow,
	):
		return http.StatusBadRequest
	case isAny(err,
		domain.ErrMarketMakerAlreadyRegistered,
		domain.ErrVaultAlreadyInitialized,
		domain.ErrGlobalStateAlreadyInitialized,
		domain.ErrMarketMakerNotActive,
		domain.ErrAssetNotEnabled,
		domain.ErrInsufficientLiquidity,
		domain.ErrQuoteExpired,
		domain.ErrQuoteNotActive,
		domain.ErrRequestExpired,
		domain.ErrRequestNotPending,
		domain.ErrRequestNotExpired,
		domain.ErrPositionNotActive,
		domain.ErrPositionNotExpired,
		domain.ErrPriceTooStale,
		domain.ErrOracleFeedMismatch,
	):
		return http.StatusConflict
	case errors.Is(err, domain.ErrProtocolPaused):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
