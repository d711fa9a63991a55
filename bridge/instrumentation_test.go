package bridge

import (
	"context"
	"testing"
)

func TestInstrumentedSendTokenDelegates(t *testing.T) {
	f := newFixture(t)
	instrumented := Instrument(f.bridge, nil)

	token, err := f.treas.Mint("USDT", 10)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	target := make([]byte, 20)
	sender := make([]byte, 32)

	msg, err := instrumented.SendToken(context.Background(), sender, foreignChain, target, token)
	if err != nil {
		t.Fatalf("instrumented send token: %v", err)
	}
	if msg.SeqNum != 0 {
		t.Fatalf("expected seq_num 0, got %d", msg.SeqNum)
	}
	if _, ok := instrumented.Record(msg.Key()); !ok {
		t.Fatalf("expected record to exist via embedded Bridge")
	}
}

func TestInstrumentedFormNextCommitteeIsNoopOnceActive(t *testing.T) {
	f := newFixture(t)
	instrumented := Instrument(f.bridge, nil)

	// The fixture already forms a committee during setup, so pending
	// registrations are empty and a second attempt must be a no-op.
	if instrumented.FormNextCommittee(context.Background(), 1) {
		t.Fatalf("expected no-op with no pending registrations")
	}
	if instrumented.CommitteeEpoch() != 1 {
		t.Fatalf("expected committee epoch to remain at 1, got %d", instrumented.CommitteeEpoch())
	}
}
