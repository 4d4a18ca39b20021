package domain

import "errors"

var (
	// ErrProtocolPaused is thrown when the protocol pause flag is set.
	ErrProtocolPaused = errors.New("the protocol is currently paused")
	// ErrAssetNotEnabled is thrown when trading an asset that is not enabled.
	ErrAssetNotEnabled = errors.New("this asset is not enabled for trading")
	// ErrInsufficientLiquidity is thrown when a vault's available balance
	// cannot cover a withdrawal, a collateral lock or a premium payment.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity available in market maker vault")
	// ErrQuoteExpired ...
	ErrQuoteExpired = errors.New("quote has expired")
	// ErrQuoteNotActive ...
	ErrQuoteNotActive = errors.New("quote is not active")
	// ErrStrikePriceNotFound is thrown when the requested strike price has no
	// exact match in the quote's strike list.
	ErrStrikePriceNotFound = errors.New("strike price not found in quote")
	// ErrContractSizeTooSmall ...
	ErrContractSizeTooSmall = errors.New("contract size below minimum")
	// ErrContractSizeTooLarge ...
	ErrContractSizeTooLarge = errors.New("contract size above maximum")
	// ErrPositionNotExpired is thrown when settling a position before its
	// expiry timestamp.
	ErrPositionNotExpired = errors.New("position has not expired yet")
	// ErrPositionNotActive is thrown when settling a position that already
	// reached a terminal status.
	ErrPositionNotActive = errors.New("position is not active")
	// ErrPriceTooStale is thrown when the oracle update's publish time falls
	// outside the staleness bound.
	ErrPriceTooStale = errors.New("oracle price is too stale")
	// ErrOracleFeedMismatch is thrown when the oracle update does not belong
	// to the asset's configured price feed.
	ErrOracleFeedMismatch = errors.New("oracle feed id mismatch")
	// ErrMathOverflow is thrown by any accounting operation whose checked
	// arithmetic overflows.
	ErrMathOverflow = errors.New("math overflow")
	// ErrUnauthorized ...
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMarketMakerNotActive ...
	ErrMarketMakerNotActive = errors.New("market maker is not active")
	// ErrTooManyStrikes ...
	ErrTooManyStrikes = errors.New("too many strikes in quote")
	// ErrInvalidQuoteParameters is thrown when a quote's size range is not
	// minSize > 0 && maxSize >= minSize.
	ErrInvalidQuoteParameters = errors.New("invalid quote parameters")
	// ErrRequestExpired is thrown when confirming a position request whose
	// confirmation window has elapsed.
	ErrRequestExpired = errors.New("position request has expired")
	// ErrRequestNotPending ...
	ErrRequestNotPending = errors.New("position request is not in pending status")
	// ErrRequestNotExpired is thrown when cancelling a request whose
	// confirmation window has not elapsed yet.
	ErrRequestNotExpired = errors.New("position request has not expired yet")
	// ErrUnauthorizedConfirmation ...
	ErrUnauthorizedConfirmation = errors.New("only the market maker can confirm this request")
	// ErrMarketMakerAlreadyRegistered ...
	ErrMarketMakerAlreadyRegistered = errors.New("market maker is already registered")
	// ErrVaultAlreadyInitialized ...
	ErrVaultAlreadyInitialized = errors.New("vault is already initialized for this asset")
	// ErrInvalidStrategy ...
	ErrInvalidStrategy = errors.New("unknown strategy type")

	// Not-found errors shared by every repository implementation.
	ErrMarketMakerNotFound = errors.New("market maker not found")
	ErrVaultNotFound       = errors.New("vault not found")
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrRequestNotFound     = errors.New("position request not found")
	ErrPositionNotFound    = errors.New("position not found")
	ErrAssetNotFound       = errors.New("asset is not registered")
	// ErrGlobalStateNotInitialized is thrown by any operation running before
	// the admin initialized the protocol.
	ErrGlobalStateNotInitialized = errors.New("global state is not initialized")
	// ErrGlobalStateAlreadyInitialized ...
	ErrGlobalStateAlreadyInitialized = errors.New("global state is already initialized")
)
