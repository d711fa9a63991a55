package chainregistry

import "testing"

func TestAssertValidChainID(t *testing.T) {
	r := NewDefault()
	if err := r.AssertValidChainID(StarcoinDevnet); err != nil {
		t.Fatalf("expected devnet to be valid: %v", err)
	}
	if err := r.AssertValidChainID(ChainID(99)); err == nil {
		t.Fatalf("expected invalid chain id to error")
	}
}

func TestRouteAllowListIsAsymmetric(t *testing.T) {
	r := NewDefault()
	if !r.IsValidRoute(StarcoinDevnet, EthSepolia) {
		t.Fatalf("expected devnet->sepolia to be a valid route")
	}
	// StarcoinLocal -> EthCustom is installed, but the reverse
	// EthCustom -> StarcoinLocal is not; the allow-list is asymmetric.
	if r.IsValidRoute(EthCustom, StarcoinLocal) {
		t.Fatalf("expected eth custom -> local to be invalid")
	}
	if _, err := r.GetRoute(EthCustom, StarcoinLocal); err == nil {
		t.Fatalf("expected GetRoute to fail for unlisted route")
	}
}

func TestCustomRegistry(t *testing.T) {
	ids := []ChainID{1, 2}
	routes := []Route{{Source: 1, Destination: 2}}
	r := New(ids, routes)
	if err := r.AssertValidChainID(ChainID(1)); err != nil {
		t.Fatalf("expected 1 to be valid: %v", err)
	}
	if r.IsValidRoute(2, 1) {
		t.Fatalf("did not expect reverse route to be installed")
	}
}
