package domain

// AssetConfig is the registry entry of a tradable asset. The strike
// percentage and expiry range fields are hints recorded by the admin; they
// are not consulted when validating quotes or requests.
type AssetConfig struct {
	AssetID             string
	QuoteAssetID        string
	OracleFeedID        string
	Enabled             bool
	MinStrikePercentage uint16
	MaxStrikePercentage uint16
	MinExpirySeconds    int64
	MaxExpirySeconds    int64
	// Decimals is the precision of the underlying asset; it scales the
	// notional computation.
	Decimals uint8
	// QuoteDecimals is the precision of the quote currency; oracle prices
	// are rescaled to it before comparison with strikes.
	QuoteDecimals uint8
}

// AssetConfigUpdate patches the mutable registry fields. Nil fields are
// left untouched; asset and oracle identifiers are fixed at registration.
type AssetConfigUpdate struct {
	Enabled             *bool
	MinStrikePercentage *uint16
	MaxStrikePercentage *uint16
	MinExpirySeconds    *int64
	MaxExpirySeconds    *int64
}

func (a *AssetConfig) Update(u AssetConfigUpdate) {
	if u.Enabled != nil {
		a.Enabled = *u.Enabled
	}
	if u.MinStrikePercentage != nil {
		a.MinStrikePercentage = *u.MinStrikePercentage
	}
	if u.MaxStrikePercentage != nil {
		a.MaxStrikePercentage = *u.MaxStrikePercentage
	}
	if u.MinExpirySeconds != nil {
		a.MinExpirySeconds = *u.MinExpirySeconds
	}
	if u.MaxExpirySeconds != nil {
		a.MaxExpirySeconds = *u.MaxExpirySeconds
	}
}
