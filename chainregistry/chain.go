// Package chainregistry enumerates the chain ids known to the bridge and the
// fixed, asymmetric set of directed routes between them (spec C1).
package chainregistry

import (
	"fmt"

	"nhbridge/bridgeerr"
)

// ChainID is the 8-bit tag identifying a chain participating in the bridge.
type ChainID uint8

// Home-chain variants and the foreign EVM chains this bridge has ever shipped
// routes for. Values are part of the wire protocol and must never change.
const (
	StarcoinMainnet ChainID = 0
	StarcoinTestnet ChainID = 1
	StarcoinDevnet  ChainID = 2
	StarcoinLocal   ChainID = 3

	EthMainnet ChainID = 10
	EthSepolia ChainID = 11
	EthCustom  ChainID = 12
)

var validChainIDs = map[ChainID]struct{}{
	StarcoinMainnet: {},
	StarcoinTestnet: {},
	StarcoinDevnet:  {},
	StarcoinLocal:   {},
	EthMainnet:      {},
	EthSepolia:      {},
	EthCustom:       {},
}

// Route is a directed, ordered pair of chain ids.
type Route struct {
	Source      ChainID
	Destination ChainID
}

// String renders the route as "source->destination" for metric labels and logs.
func (r Route) String() string {
	return fmt.Sprintf("%d->%d", r.Source, r.Destination)
}

// defaultRoutes is the compile-time allow-list. It is intentionally
// asymmetric: not every inbound route has a matching outbound route.
var defaultRoutes = []Route{
	{Source: StarcoinMainnet, Destination: EthMainnet},
	{Source: EthMainnet, Destination: StarcoinMainnet},
	{Source: StarcoinTestnet, Destination: EthSepolia},
	{Source: EthSepolia, Destination: StarcoinTestnet},
	{Source: StarcoinDevnet, Destination: EthSepolia},
	{Source: EthSepolia, Destination: StarcoinDevnet},
	{Source: StarcoinDevnet, Destination: EthCustom},
	{Source: EthCustom, Destination: StarcoinDevnet},
	{Source: StarcoinLocal, Destination: EthCustom},
}

// Registry holds the set of legal chain ids and the directed route allow-list.
// The zero value is not usable; construct one with New or NewDefault.
type Registry struct {
	chainIDs map[ChainID]struct{}
	routes   map[Route]struct{}
}

// NewDefault returns a registry seeded with the compile-time chain ids and
// routes shipped with this revision of the bridge.
func NewDefault() *Registry {
	r := &Registry{
		chainIDs: make(map[ChainID]struct{}, len(validChainIDs)),
		routes:   make(map[Route]struct{}, len(defaultRoutes)),
	}
	for id := range validChainIDs {
		r.chainIDs[id] = struct{}{}
	}
	for _, route := range defaultRoutes {
		r.routes[route] = struct{}{}
	}
	return r
}

// New builds a registry from an explicit chain-id set and route list, for
// deployments that seed the allow-list from config rather than the
// compile-time defaults.
func New(chainIDs []ChainID, routes []Route) *Registry {
	r := &Registry{
		chainIDs: make(map[ChainID]struct{}, len(chainIDs)),
		routes:   make(map[Route]struct{}, len(routes)),
	}
	for _, id := range chainIDs {
		r.chainIDs[id] = struct{}{}
	}
	for _, route := range routes {
		r.routes[route] = struct{}{}
	}
	return r
}

// AssertValidChainID returns ErrInvalidChainID if id is not in the legal set.
func (r *Registry) AssertValidChainID(id ChainID) error {
	if _, ok := r.chainIDs[id]; !ok {
		return bridgeerr.ErrInvalidChainID
	}
	return nil
}

// IsValidRoute reports whether (source, destination) is an installed route.
func (r *Registry) IsValidRoute(source, destination ChainID) bool {
	_, ok := r.routes[Route{Source: source, Destination: destination}]
	return ok
}

// GetRoute returns the route for (source, destination) or
// ErrInvalidBridgeRoute if it is not in the allow-list.
func (r *Registry) GetRoute(source, destination ChainID) (Route, error) {
	route := Route{Source: source, Destination: destination}
	if _, ok := r.routes[route]; !ok {
		return Route{}, bridgeerr.ErrInvalidBridgeRoute
	}
	return route, nil
}

// Routes returns a snapshot of every installed route, in no particular order.
func (r *Registry) Routes() []Route {
	out := make([]Route, 0, len(r.routes))
	for route := range r.routes {
		out = append(out, route)
	}
	return out
}
