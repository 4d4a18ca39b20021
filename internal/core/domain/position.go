package domain

// PositionStatus is the lifecycle state of a confirmed position.
type PositionStatus uint8

const (
	PositionStatusActive PositionStatus = iota
	// PositionStatusSettledITM: exercise favored the option holder.
	PositionStatusSettledITM
	// PositionStatusSettledOTM: the option expired worthless; escrowed
	// collateral returns to its depositors. Also the resolution when the
	// settlement price equals the strike.
	PositionStatusSettledOTM
	// PositionStatusSettledATM is reserved and never produced: the equality
	// tie-break resolves to SettledOTM.
	PositionStatusSettledATM
)

func (s PositionStatus) String() string {
	switch s {
	case PositionStatusActive:
		return "active"
	case PositionStatusSettledITM:
		return "settled_itm"
	case PositionStatusSettledOTM:
		return "settled_otm"
	case PositionStatusSettledATM:
		return "settled_atm"
	default:
		return "unknown"
	}
}

// Position is the confirmed, escrow-backed contract. It exclusively owns
// its two escrow accounts for its active lifetime; settlement drains their
// combined balance to the two counterparties and finalizes the record
// without deleting it.
type Position struct {
	ID           string
	UserID       string
	MakerID      string
	Strategy     StrategyType
	AssetID      string
	QuoteAssetID string
	StrikePrice  uint64
	PremiumPaid  uint64
	ContractSize uint64
	CreatedAt    int64
	// ExpiryTimestamp is copied from the quote at confirmation and not
	// re-validated against registry bounds.
	ExpiryTimestamp int64
	// SettlementPrice is nil until settlement.
	SettlementPrice *uint64
	Status          PositionStatus

	// Escrow account references in the token ledger.
	UserEscrow  string
	MakerEscrow string
	// EscrowAuthority is the capability under which both escrow accounts
	// were opened; only logic acting for this position holds it.
	EscrowAuthority string

	// CollateralLocked is the amount locked in the maker's vault at open,
	// released by exactly that amount at settlement.
	CollateralLocked uint64
}

// CollateralAssetID is the asset of the vault the maker's collateral was
// locked in: quote currency for a covered call, the underlying for a
// cash-secured put.
func (p *Position) CollateralAssetID() string {
	if p.Strategy == StrategyCoveredCall {
		return p.QuoteAssetID
	}
	return p.AssetID
}

// UserCollateralAssetID is the asset held in the user escrow: the
// underlying for a covered call, quote currency for a cash-secured put.
func (p *Position) UserCollateralAssetID() string {
	if p.Strategy == StrategyCoveredCall {
		return p.AssetID
	}
	return p.QuoteAssetID
}

// PositionKey is the (user, position id) storage key.
func PositionKey(userID, positionID string) string {
	return userID + ":" + positionID
}

// Key returns the position's storage key.
func (p *Position) Key() string {
	return PositionKey(p.UserID, p.ID)
}

// IsActive returns whether the position has not reached a terminal status.
func (p *Position) IsActive() bool {
	return p.Status == PositionStatusActive
}

// Settle classifies a matured position against the settlement price and
// transitions it to its terminal status. The first call transitions; any
// repeat call fails fast with ErrPositionNotActive and mutates nothing.
func (p *Position) Settle(settlementPrice uint64, now int64) (PositionStatus, error) {
	if !p.IsActive() {
		return p.Status, ErrPositionNotActive
	}
	if now < p.ExpiryTimestamp {
		return p.Status, ErrPositionNotExpired
	}

	price := settlementPrice
	p.SettlementPrice = &price
	if p.Strategy.InTheMoney(settlementPrice, p.StrikePrice) {
		p.Status = PositionStatusSettledITM
	} else {
		p.Status = PositionStatusSettledOTM
	}
	return p.Status, nil
}
