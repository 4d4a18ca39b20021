package domain

import (
	"github.com/Solation-Finance/solation/pkg/mathutil"
)

// StrategyType is the closed set of payoff rules supported by the protocol.
// Dispatch over it is exhaustive: adding a member requires touching every
// switch below.
type StrategyType uint8

const (
	// StrategyCoveredCall sells upside on an underlying the user deposits.
	StrategyCoveredCall StrategyType = iota
	// StrategyCashSecuredPut sells downside against quote-currency cash the
	// user deposits.
	StrategyCashSecuredPut
)

func (s StrategyType) String() string {
	switch s {
	case StrategyCoveredCall:
		return "covered_call"
	case StrategyCashSecuredPut:
		return "cash_secured_put"
	default:
		return "unknown"
	}
}

// ParseStrategyType maps the wire representation to a StrategyType.
func ParseStrategyType(s string) (StrategyType, error) {
	switch s {
	case "covered_call":
		return StrategyCoveredCall, nil
	case "cash_secured_put":
		return StrategyCashSecuredPut, nil
	default:
		return 0, ErrInvalidStrategy
	}
}

// Validate returns ErrInvalidStrategy for values outside the closed set.
func (s StrategyType) Validate() error {
	switch s {
	case StrategyCoveredCall, StrategyCashSecuredPut:
		return nil
	default:
		return ErrInvalidStrategy
	}
}

// CollateralSide tells which currency a collateral leg is denominated in.
type CollateralSide uint8

const (
	// SideUnderlying is the traded asset itself.
	SideUnderlying CollateralSide = iota
	// SideQuoteCurrency is the quote (premium) currency.
	SideQuoteCurrency
)

// CollateralLegs describes what each counterparty must post into escrow at
// position open. Amounts are in the smallest unit of the leg's currency.
type CollateralLegs struct {
	UserAmount  uint64
	UserSide    CollateralSide
	MakerAmount uint64
	MakerSide   CollateralSide
}

// Notional computes floor(strikePrice * contractSize / 10^assetDecimals),
// the quote-currency value of a strike for the traded size. Truncation,
// never rounding.
func Notional(strikePrice, contractSize uint64, assetDecimals uint8) (uint64, error) {
	unit, err := mathutil.Pow10(assetDecimals)
	if err != nil {
		return 0, ErrMathOverflow
	}
	n, err := mathutil.MulDiv(strikePrice, contractSize, unit)
	if err != nil {
		return 0, ErrMathOverflow
	}
	return n, nil
}

// OpenLegs returns the collateral each party posts at open.
//
// Covered call: the user escrows contractSize of the underlying, the maker
// escrows the notional in quote currency. Cash-secured put: the user escrows
// the notional in quote currency, the maker escrows contractSize of the
// underlying.
func (s StrategyType) OpenLegs(
	strikePrice, contractSize uint64, assetDecimals uint8,
) (CollateralLegs, error) {
	notional, err := Notional(strikePrice, contractSize, assetDecimals)
	if err != nil {
		return CollateralLegs{}, err
	}

	switch s {
	case StrategyCoveredCall:
		return CollateralLegs{
			UserAmount:  contractSize,
			UserSide:    SideUnderlying,
			MakerAmount: notional,
			MakerSide:   SideQuoteCurrency,
		}, nil
	case StrategyCashSecuredPut:
		return CollateralLegs{
			UserAmount:  notional,
			UserSide:    SideQuoteCurrency,
			MakerAmount: contractSize,
			MakerSide:   SideUnderlying,
		}, nil
	default:
		return CollateralLegs{}, ErrInvalidStrategy
	}
}

// InTheMoney is the exercise test at settlement. Equality resolves to
// out-of-the-money for both strategies.
func (s StrategyType) InTheMoney(settlementPrice, strikePrice uint64) bool {
	switch s {
	case StrategyCoveredCall:
		return settlementPrice > strikePrice
	case StrategyCashSecuredPut:
		return settlementPrice < strikePrice
	default:
		return false
	}
}
