package domain

import "github.com/Solation-Finance/solation/pkg/mathutil"

// GlobalState is the protocol-wide configuration and aggregate counters.
// The counters are not free-standing shared state: each increment commits
// inside the same atomic unit as the operation that causes it.
type GlobalState struct {
	Authority      string
	Treasury       string
	ProtocolFeeBps uint16
	Paused         bool
	TotalVolume    uint64
	TotalPositions uint64
}

// GlobalStateUpdate patches the configuration half of the global state.
// Nil fields are left untouched. A non-nil Authority hands the protocol
// over to the new identity.
type GlobalStateUpdate struct {
	Authority      *string
	Treasury       *string
	ProtocolFeeBps *uint16
	Paused         *bool
}

func (g *GlobalState) Update(u GlobalStateUpdate) {
	if u.Authority != nil {
		g.Authority = *u.Authority
	}
	if u.Treasury != nil {
		g.Treasury = *u.Treasury
	}
	if u.ProtocolFeeBps != nil {
		g.ProtocolFeeBps = *u.ProtocolFeeBps
	}
	if u.Paused != nil {
		g.Paused = *u.Paused
	}
}

// RecordPosition adds a newly opened position to the aggregate counters.
func (g *GlobalState) RecordPosition(contractSize uint64) error {
	positions, err := mathutil.CheckedAdd(g.TotalPositions, 1)
	if err != nil {
		return ErrMathOverflow
	}
	volume, err := mathutil.CheckedAdd(g.TotalVolume, contractSize)
	if err != nil {
		return ErrMathOverflow
	}
	g.TotalPositions = positions
	g.TotalVolume = volume
	return nil
}
