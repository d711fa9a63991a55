package bridge

import (
	"nhbridge/chainregistry"
	"nhbridge/committee"
	"nhbridge/limiter"
)

// Snapshot is a pure, side-effect-free read view over the orchestrator's
// state, meant for the observability layer and for tests. It never mutates
// anything and is not part of the state machine (supplemented feature, not a
// spec operation).
type Snapshot struct {
	ChainID    chainregistry.ChainID
	Paused     bool
	Members    []committee.CommitteeMember
	Epoch      uint64
	RouteLimit map[chainregistry.Route]limiter.TransferRecord
}

// Snapshot builds a Snapshot of the current in-memory state.
func (b *Bridge) Snapshot(routes []chainregistry.Route) Snapshot {
	routeLimits := make(map[chainregistry.Route]limiter.TransferRecord, len(routes))
	for _, route := range routes {
		if rec, ok := b.lim.Record(route); ok {
			routeLimits[route] = rec
		}
	}
	return Snapshot{
		ChainID:    b.ChainID,
		Paused:     b.paused,
		Members:    b.comm.Members(),
		Epoch:      b.comm.Epoch(),
		RouteLimit: routeLimits,
	}
}
