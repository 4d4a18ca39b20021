package domain

const (
	// ConfirmationWindow is the number of seconds a market maker has to
	// confirm a pending position request before any caller may reclaim it.
	ConfirmationWindow int64 = 30

	// PriceStalenessThreshold is the max age in seconds of an oracle price
	// update accepted at settlement.
	PriceStalenessThreshold int64 = 60

	// MaxStrikesPerQuote bounds the strike list of a single quote.
	MaxStrikesPerQuote = 10

	// BasisPointsDivisor converts basis points to a ratio (10000 = 100%).
	BasisPointsDivisor uint64 = 10000

	// InitialReputationScore is assigned to every newly registered maker.
	InitialReputationScore uint16 = 100
)
